package event

import "sync"

type Name string

const (
	Storage         Name = "storage"
	CartUpdated     Name = "cartUpdated"
	AddressAdded    Name = "addressAdded"
	ArtworkUploaded Name = "artworkUploaded"
	WishlistUpdated Name = "wishlistUpdated"
	Navigate        Name = "navigate"
)

// Event 每個 Name 對應一個固定的 payload 型別
type Event interface {
	Name() Name
}

// StorageChanged 持久化 key 被改動 (token 清除等)
type StorageChanged struct {
	Key string
}

type CartChanged struct {
	Count int
}

type AddressCreated struct {
	AddressID string
}

type ArtworkCreated struct {
	ArtworkID string
}

type WishlistChanged struct {
	ArtworkID  string
	InWishlist bool
}

// NavigateTo External 為 true 時代表整頁導向外部 URL (付款頁)
type NavigateTo struct {
	Path     string
	External bool
}

func (StorageChanged) Name() Name  { return Storage }
func (CartChanged) Name() Name     { return CartUpdated }
func (AddressCreated) Name() Name  { return AddressAdded }
func (ArtworkCreated) Name() Name  { return ArtworkUploaded }
func (WishlistChanged) Name() Name { return WishlistUpdated }
func (NavigateTo) Name() Name      { return Navigate }

type Handler func(Event)

type subscription struct {
	id uint64
	fn Handler
}

// Bus 同步派送, 依訂閱順序呼叫
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Name][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Name][]subscription)}
}

// Subscribe 回傳取消訂閱函式, 可重複呼叫
func (b *Bus) Subscribe(name Name, fn Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[name]
			for i, s := range list {
				if s.id == id {
					b.subs[name] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish handler 內可再 Publish 或 Subscribe
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	list := append([]subscription(nil), b.subs[evt.Name()]...)
	b.mu.RUnlock()
	for _, s := range list {
		s.fn(evt)
	}
}

// Recorder 收集事件, 測試與除錯使用
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Attach 訂閱所有事件名稱
func (r *Recorder) Attach(b *Bus) func() {
	var unsubs []func()
	for _, n := range []Name{Storage, CartUpdated, AddressAdded, ArtworkUploaded, WishlistUpdated, Navigate} {
		unsubs = append(unsubs, b.Subscribe(n, r.record))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *Recorder) Named(n Name) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Name() == n {
			out = append(out, e)
		}
	}
	return out
}
