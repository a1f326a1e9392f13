package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/client"
	"github.com/RoyceAzure/lab/virtualart/internal/constants"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/RoyceAzure/lab/virtualart/internal/session"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=poller.go -destination=mock/mock_datasource.go -package=mock_dashboard

// DataSource admin API, *client.Client 實作
type DataSource interface {
	AdminUsers(ctx context.Context) ([]model.User, error)
	AdminArtworks(ctx context.Context) ([]model.Artwork, error)
	AdminOrders(ctx context.Context) ([]model.Order, error)
	AdminReviews(ctx context.Context) ([]model.Review, error)
	UpdateArtworkStatus(ctx context.Context, id string, status model.ArtworkStatus) (*model.Artwork, error)
}

// SessionWatcher *session.Store 實作
type SessionWatcher interface {
	Snapshot() session.Snapshot
	Watch(fn func(session.Snapshot)) func()
}

var ErrNotAdmin = errors.New("dashboard: viewer is not an admin")

/*
Poller admin dashboard 定時重抓四個 collection
  - 只在角色為 admin 時執行, 角色改變自動 Stop
  - tick 不去重, 慢的回應不會擋下一次 tick
  - Stop 之後才回來的結果直接丟棄
*/
type Poller struct {
	src      DataSource
	sess     SessionWatcher
	interval time.Duration
	logger   *zerolog.Logger
	onUpdate func(Metrics)
	now      func() time.Time

	mu      sync.Mutex
	gen     uint64
	running bool
	cancel  context.CancelFunc
	unwatch func()
	metrics *Metrics
	lastErr error
}

type Option func(*Poller)

// WithOnUpdate 每次 metrics 更新後呼叫
func WithOnUpdate(fn func(Metrics)) Option {
	return func(p *Poller) {
		p.onUpdate = fn
	}
}

func NewPoller(src DataSource, sess SessionWatcher, interval time.Duration, logger *zerolog.Logger, opts ...Option) *Poller {
	if interval <= 0 {
		interval = constants.DefaultAdminPollInterval
	}
	p := &Poller{
		src:      src,
		sess:     sess,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func isAdmin(snap session.Snapshot) bool {
	role, ok := snap.Role()
	return ok && role == model.RoleAdmin
}

// Start 重複呼叫不會啟動第二個 loop
func (p *Poller) Start(ctx context.Context) error {
	if !isAdmin(p.sess.Snapshot()) {
		return ErrNotAdmin
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	p.gen++
	gen := p.gen
	p.running = true
	p.cancel = cancel
	p.mu.Unlock()

	unwatch := p.sess.Watch(func(snap session.Snapshot) {
		if !isAdmin(snap) {
			p.logger.Info().Msg("viewer is no longer admin, stopping dashboard poller")
			p.Stop()
		}
	})
	p.mu.Lock()
	if p.gen == gen {
		p.unwatch = unwatch
	} else {
		defer unwatch()
	}
	p.mu.Unlock()

	go p.loop(ctx, gen)
	return nil
}

func (p *Poller) loop(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	go p.fetch(ctx, gen)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.fetch(ctx, gen)
		}
	}
}

func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.gen++
	p.cancel()
	unwatch := p.unwatch
	p.unwatch = nil
	p.mu.Unlock()

	if unwatch != nil {
		unwatch()
	}
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) Metrics() (Metrics, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.metrics == nil {
		return Metrics{}, false
	}
	return *p.metrics, true
}

func (p *Poller) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Load 同時抓四個 collection, 任一失敗即取消其他
func (p *Poller) Load(ctx context.Context) (Data, error) {
	var d Data
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Users, err = p.src.AdminUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Artworks, err = p.src.AdminArtworks(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Orders, err = p.src.AdminOrders(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Reviews, err = p.src.AdminReviews(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Data{}, err
	}
	return d, nil
}

func (p *Poller) fetch(ctx context.Context, gen uint64) {
	d, err := p.Load(ctx)
	if err != nil {
		if client.IsAborted(err) {
			return
		}
		p.logger.Warn().Err(err).Msg("poll admin collections")
		p.mu.Lock()
		if p.gen == gen {
			p.lastErr = err
		}
		p.mu.Unlock()
		return
	}
	p.apply(gen, d)
}

func (p *Poller) apply(gen uint64, d Data) bool {
	m := Compute(d, p.now())
	p.mu.Lock()
	if p.gen != gen {
		p.mu.Unlock()
		return false
	}
	p.metrics = &m
	p.lastErr = nil
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(m)
	}
	return true
}

// Refresh 立即完整重抓一次
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	gen := p.gen
	p.mu.Unlock()

	d, err := p.Load(ctx)
	if err != nil {
		return err
	}
	p.apply(gen, d)
	return nil
}

func (p *Poller) Approve(ctx context.Context, artworkID string) error {
	return p.setStatus(ctx, artworkID, model.ArtworkPublished)
}

func (p *Poller) Reject(ctx context.Context, artworkID string) error {
	return p.setStatus(ctx, artworkID, model.ArtworkRejected)
}

// setStatus partial update 後重抓四個 collection, 不做本地 patch
func (p *Poller) setStatus(ctx context.Context, artworkID string, status model.ArtworkStatus) error {
	if _, err := p.src.UpdateArtworkStatus(ctx, artworkID, status); err != nil {
		return err
	}
	return p.Refresh(ctx)
}
