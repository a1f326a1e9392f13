package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type bucket struct {
	current  atomic.Int64
	lastSeen atomic.Int64
}

/*
TokenBucket 每個 key 一個 bucket, 背景 goroutine 定時補充
請使用 defer 呼叫 Stop()
*/
type TokenBucket struct {
	cfg          Config
	buckets      sync.Map // key -> *bucket
	lastRefilled atomic.Int64
	idleTTL      time.Duration
	now          func() time.Time
	cancel       chan struct{}
	once         sync.Once
}

func NewTokenBucket(cfg Config) *TokenBucket {
	t := &TokenBucket{
		cfg:     cfg.normalize(),
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		cancel:  make(chan struct{}),
	}
	t.lastRefilled.Store(t.now().UnixNano())
	go t.background()
	return t
}

var _ Limiter = (*TokenBucket)(nil)

func (t *TokenBucket) load(key string) *bucket {
	if b, ok := t.buckets.Load(key); ok {
		return b.(*bucket)
	}
	nb := &bucket{}
	nb.current.Store(int64(t.cfg.Capacity))
	b, _ := t.buckets.LoadOrStore(key, nb)
	return b.(*bucket)
}

func (t *TokenBucket) Allow(_ context.Context, key string) bool {
	b := t.load(key)
	b.lastSeen.Store(t.now().UnixNano())
	for {
		current := b.current.Load()
		if current <= 0 {
			return false
		}
		if b.current.CompareAndSwap(current, current-1) {
			return true
		}
	}
}

func (t *TokenBucket) countNewTokens(current int64, elapsed time.Duration) int64 {
	newTokens := current + int64(elapsed.Seconds()*t.cfg.RatePS)
	if newTokens > int64(t.cfg.Capacity) {
		newTokens = int64(t.cfg.Capacity)
	}
	return newTokens
}

// refill 補充所有 bucket, 閒置過久且已滿的 bucket 移除
func (t *TokenBucket) refill() {
	now := t.now().UnixNano()
	elapsed := time.Duration(now - t.lastRefilled.Load())
	if int64(elapsed.Seconds()*t.cfg.RatePS) == 0 {
		return
	}
	t.lastRefilled.Store(now)
	t.buckets.Range(func(k, v any) bool {
		b := v.(*bucket)
		for {
			current := b.current.Load()
			if b.current.CompareAndSwap(current, t.countNewTokens(current, elapsed)) {
				break
			}
		}
		if b.current.Load() == int64(t.cfg.Capacity) && time.Duration(now-b.lastSeen.Load()) > t.idleTTL {
			t.buckets.Delete(k)
		}
		return true
	})
}

func (t *TokenBucket) background() {
	ticker := time.NewTicker(t.cfg.RefillRate)
	defer ticker.Stop()

	for {
		select {
		case <-t.cancel:
			return
		case <-ticker.C:
			t.refill()
		}
	}
}

func (t *TokenBucket) Stop() {
	t.once.Do(func() {
		close(t.cancel)
	})
}
