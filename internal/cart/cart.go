package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/virtualart/internal/client"
	"github.com/RoyceAzure/lab/virtualart/internal/constants"
	"github.com/RoyceAzure/lab/virtualart/internal/event"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/storage"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const EmptyMessage = "Your cart is empty. Browse artworks to find something you love."

// CatalogSource *client.Client 實作
type CatalogSource interface {
	ListArtworks(ctx context.Context, category string) ([]model.Artwork, error)
}

type Line struct {
	Artwork  model.Artwork   `json:"artwork"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type View struct {
	Lines        []Line       `json:"lines"`
	Totals       model.Totals `json:"totals"`
	Empty        bool         `json:"empty"`
	EmptyMessage string       `json:"empty_message,omitempty"`
}

/*
Cart 以 storage 的 cartItems 為準, 記憶體內只是快取
寫入一律先寫 storage 再通知 cartUpdated
*/
type Cart struct {
	store   storage.Store
	bus     *event.Bus
	catalog CatalogSource
	logger  *zerolog.Logger

	mu      sync.Mutex
	entries model.CartEntries
}

func New(store storage.Store, bus *event.Bus, catalog CatalogSource, logger *zerolog.Logger) *Cart {
	if store == nil || bus == nil || catalog == nil {
		panic("cart dependencies cannot be nil")
	}
	return &Cart{
		store:   store,
		bus:     bus,
		catalog: catalog,
		logger:  logger,
		entries: model.CartEntries{},
	}
}

// Sanitize 只保留 1..99 的整數數量, total 為原始 entry 數
func Sanitize(raw string) (entries model.CartEntries, total int, err error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var parsed map[string]any
	if err := dec.Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("cart: malformed blob: %w", err)
	}
	if parsed == nil {
		return nil, 0, errors.New("cart: blob is not an object")
	}
	entries = model.CartEntries{}
	for id, v := range parsed {
		num, ok := v.(json.Number)
		if !ok {
			continue
		}
		// 2.0 或 1e1 也是合法的整數數量
		f, err := num.Float64()
		if err != nil || f != math.Trunc(f) || f < model.MinCartQty || f > model.MaxCartQty {
			continue
		}
		entries[id] = int(f)
	}
	return entries, len(parsed), nil
}

// Load 讀取並清理 cartItems
// 有 entry 被丟棄時改寫 blob, 全部無效時刪除 key, 格式錯誤時記錄 log 後清除
func (c *Cart) Load(ctx context.Context) (model.CartEntries, error) {
	raw, err := c.store.Get(ctx, constants.StorageCartKey)
	if errors.Is(err, storage.ErrNotFound) {
		return c.replace(model.CartEntries{}), nil
	}
	if err != nil {
		return nil, err
	}

	entries, total, err := Sanitize(raw)
	if err != nil {
		c.logger.Warn().Err(err).Str("blob", raw).Msg("wiping corrupt cart")
		if err := c.store.Delete(ctx, constants.StorageCartKey); err != nil {
			return nil, err
		}
		return c.replace(model.CartEntries{}), nil
	}

	switch {
	case total > 0 && len(entries) == 0:
		if err := c.store.Delete(ctx, constants.StorageCartKey); err != nil {
			return nil, err
		}
	case len(entries) != total:
		if err := c.persist(ctx, entries); err != nil {
			return nil, err
		}
	}
	return c.replace(entries), nil
}

func (c *Cart) replace(entries model.CartEntries) model.CartEntries {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	return copyEntries(entries)
}

func (c *Cart) Entries() model.CartEntries {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyEntries(c.entries)
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Count()
}

// SetQuantity 上限 99 在寫入時同樣檢查
func (c *Cart) SetQuantity(ctx context.Context, id string, qty int) error {
	if id == "" {
		return client.NewValidationError("product", "Artwork is required")
	}
	if !model.ValidCartQty(qty) {
		return client.NewValidationError("quantity", fmt.Sprintf("Quantity must be between %d and %d", model.MinCartQty, model.MaxCartQty))
	}
	return c.mutate(ctx, func(e model.CartEntries) { e[id] = qty })
}

// Add 在現有數量上累加
func (c *Cart) Add(ctx context.Context, id string, qty int) error {
	return c.SetQuantity(ctx, id, c.Entries()[id]+qty)
}

func (c *Cart) Remove(ctx context.Context, id string) error {
	return c.mutate(ctx, func(e model.CartEntries) { delete(e, id) })
}

func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	if err := c.store.Delete(ctx, constants.StorageCartKey); err != nil {
		c.mu.Unlock()
		return err
	}
	c.entries = model.CartEntries{}
	c.mu.Unlock()

	c.bus.Publish(event.CartChanged{Count: 0})
	return nil
}

func (c *Cart) mutate(ctx context.Context, fn func(model.CartEntries)) error {
	c.mu.Lock()
	next := copyEntries(c.entries)
	fn(next)
	if err := c.persist(ctx, next); err != nil {
		c.mu.Unlock()
		return err
	}
	c.entries = next
	count := next.Count()
	c.mu.Unlock()

	c.bus.Publish(event.CartChanged{Count: count})
	return nil
}

func (c *Cart) persist(ctx context.Context, entries model.CartEntries) error {
	if len(entries) == 0 {
		return c.store.Delete(ctx, constants.StorageCartKey)
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, constants.StorageCartKey, string(b))
}

// Reconcile catalog 找不到的 id 不顯示, 但不從 storage 移除
func Reconcile(entries model.CartEntries, catalog []model.Artwork) []Line {
	byID := make(map[string]model.Artwork, len(catalog))
	for _, a := range catalog {
		byID[a.ID.String()] = a
	}
	lines := make([]Line, 0, len(entries))
	for id, qty := range entries {
		art, ok := byID[id]
		if !ok {
			continue
		}
		lines = append(lines, Line{
			Artwork:  art,
			Quantity: qty,
			Subtotal: art.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Artwork.ID.String() < lines[j].Artwork.ID.String()
	})
	return lines
}

func Totals(lines []Line) model.Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
	}
	return model.ComputeTotals(subtotal)
}

// View load storage 與 catalog 後組出畫面資料, 空車回傳 browse artworks 提示
func (c *Cart) View(ctx context.Context) (*View, error) {
	entries, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return emptyView(), nil
	}
	catalog, err := c.catalog.ListArtworks(ctx, "")
	if err != nil {
		if !client.IsAborted(err) {
			c.logger.Error().Err(err).Msg("fetch catalog for cart")
		}
		return nil, err
	}
	lines := Reconcile(entries, catalog)
	if len(lines) == 0 {
		return emptyView(), nil
	}
	return &View{Lines: lines, Totals: Totals(lines)}, nil
}

func emptyView() *View {
	return &View{
		Lines:        []Line{},
		Totals:       model.ComputeTotals(decimal.Zero),
		Empty:        true,
		EmptyMessage: EmptyMessage,
	}
}

func copyEntries(e model.CartEntries) model.CartEntries {
	out := make(model.CartEntries, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
