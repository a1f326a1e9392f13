package catalog

import (
	"context"
	"sync"

	"github.com/RoyceAzure/lab/virtualart/internal/client"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/rs/zerolog"
)

type ArtworkAPI interface {
	GetArtwork(ctx context.Context, id string) (*model.Artwork, error)
	ListArtworks(ctx context.Context, category string) ([]model.Artwork, error)
}

const maxRelated = 4

type DetailState struct {
	Loading bool
	Artwork *model.Artwork
	Related []model.Artwork
	Error   string
}

/*
DetailView 作品頁
每次 Load 都綁定 view 的生命週期, Close 或下一次 Load 會取消進行中的 request
每個 await 之後先檢查 ctx, 取消後不再改動 state
*/
type DetailView struct {
	api    ArtworkAPI
	logger *zerolog.Logger

	mu     sync.Mutex
	state  DetailState
	cancel context.CancelFunc
	closed bool
}

func NewDetailView(api ArtworkAPI, logger *zerolog.Logger) *DetailView {
	return &DetailView{api: api, logger: logger}
}

func (v *DetailView) State() DetailState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *DetailView) begin(parent context.Context) (context.Context, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, false
	}
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	v.cancel = cancel
	v.state = DetailState{Loading: true}
	return ctx, true
}

// apply ctx 已取消時丟棄結果
func (v *DetailView) apply(ctx context.Context, fn func(*DetailState)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	fn(&v.state)
	return true
}

func (v *DetailView) Load(parent context.Context, id string) error {
	ctx, ok := v.begin(parent)
	if !ok {
		return context.Canceled
	}

	art, err := v.api.GetArtwork(ctx, id)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		v.logger.Warn().Err(err).Str("artwork_id", id).Msg("load artwork")
		v.apply(ctx, func(s *DetailState) {
			s.Loading = false
			s.Error = client.UserMessage(err)
		})
		return err
	}
	if !v.apply(ctx, func(s *DetailState) { s.Artwork = art }) {
		return nil
	}

	related, err := v.api.ListArtworks(ctx, art.Category)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		// 相關作品失敗不影響主畫面
		v.logger.Warn().Err(err).Str("category", art.Category).Msg("load related artworks")
		related = nil
	}
	v.apply(ctx, func(s *DetailState) {
		s.Loading = false
		s.Related = pickRelated(art.ID.String(), related)
	})
	return nil
}

func (v *DetailView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.cancel != nil {
		v.cancel()
	}
}

func pickRelated(selfID string, all []model.Artwork) []model.Artwork {
	out := make([]model.Artwork, 0, maxRelated)
	for _, a := range all {
		if a.ID.String() == selfID {
			continue
		}
		out = append(out, a)
		if len(out) == maxRelated {
			break
		}
	}
	return out
}
