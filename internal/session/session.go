package session

import (
	"context"
	"errors"
	"sync"

	"github.com/RoyceAzure/lab/virtualart/internal/api/dto"
	"github.com/RoyceAzure/lab/virtualart/internal/client"
	"github.com/RoyceAzure/lab/virtualart/internal/constants"
	"github.com/RoyceAzure/lab/virtualart/internal/event"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/storage"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/rs/zerolog"
)

type Status int

const (
	StatusLoading Status = iota
	StatusResolved
)

func (s Status) String() string {
	if s == StatusResolved {
		return "resolved"
	}
	return "loading"
}

// Snapshot Profile 為 nil 代表未登入
type Snapshot struct {
	Status  Status
	Profile *model.Profile
}

func (s Snapshot) Role() (model.Role, bool) {
	if s.Profile == nil {
		return "", false
	}
	return s.Profile.Role(), true
}

// API session 需要的後端呼叫, *client.Client 實作
type API interface {
	SetToken(token string)
	Me(ctx context.Context) (*model.Profile, error)
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
}

/*
Store 持有登入身分與角色資料
生命週期: Init 讀取持久化 token -> Refresh 取得 profile -> Logout 清除
每次 load/refresh 完成後通知 Watch 的訂閱者
*/
type Store struct {
	api     API
	storage storage.Store
	bus     *event.Bus
	logger  *zerolog.Logger

	mu       sync.RWMutex
	snap     Snapshot
	nextID   int
	watchers map[int]func(Snapshot)
}

func NewStore(api API, st storage.Store, bus *event.Bus, logger *zerolog.Logger) *Store {
	if api == nil || st == nil || bus == nil {
		panic("session store dependencies cannot be nil")
	}
	return &Store{
		api:      api,
		storage:  st,
		bus:      bus,
		logger:   logger,
		watchers: make(map[int]func(Snapshot)),
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Watch 回傳取消函式
func (s *Store) Watch(fn func(Snapshot)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.watchers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// Init app 啟動時呼叫, 沒有 token 直接 resolve 成未登入
func (s *Store) Init(ctx context.Context) error {
	tok, err := s.storage.Get(ctx, constants.StorageTokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().Err(err).Msg("read persisted token")
		}
		s.resolve(nil)
		return nil
	}
	s.api.SetToken(tok)
	return s.Refresh(ctx)
}

// Refresh 重新取得 /auth/me, 401 或停權 (403) 時丟棄 token
func (s *Store) Refresh(ctx context.Context) error {
	profile, err := s.api.Me(ctx)
	if err != nil {
		if client.IsAborted(err) {
			return err
		}
		if client.IsUnauthenticated(err) || client.IsForbidden(err) {
			s.logger.Info().Err(err).Msg("token rejected, clearing session")
			s.dropToken(ctx)
			s.resolve(nil)
			return nil
		}
		s.logger.Error().Err(err).Msg("refresh profile")
		s.resolve(s.Snapshot().Profile)
		return err
	}
	// 角色來自網路, 不認得的角色視同無效 session
	if profile != nil && !profile.Role().Valid() {
		s.logger.Warn().Str("user_type", string(profile.Role())).Msg("unknown role in profile, clearing session")
		s.dropToken(ctx)
		s.resolve(nil)
		return &client.BusinessError{Message: unknownRoleMessage}
	}
	s.resolve(profile)
	return nil
}

const unknownRoleMessage = "Your account role is not supported, please sign in again"

// Login 先持久化 token 再 refresh
func (s *Store) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return client.NewValidationError("email", "Email and password are required")
	}
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, constants.StorageTokenKey, resp.Token); err != nil {
		return err
	}
	s.api.SetToken(resp.Token)
	s.bus.Publish(event.StorageChanged{Key: constants.StorageTokenKey})
	return s.Refresh(ctx)
}

func (s *Store) Logout(ctx context.Context) {
	s.dropToken(ctx)
	s.resolve(nil)
}

func (s *Store) dropToken(ctx context.Context) {
	if err := s.storage.Delete(ctx, constants.StorageTokenKey); err != nil {
		s.logger.Warn().Err(err).Msg("delete persisted token")
	}
	s.api.SetToken("")
	s.bus.Publish(event.StorageChanged{Key: constants.StorageTokenKey})
}

func (s *Store) resolve(profile *model.Profile) {
	s.mu.Lock()
	s.snap = Snapshot{Status: StatusResolved, Profile: profile}
	snap := s.snap
	fns := make([]func(Snapshot), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
