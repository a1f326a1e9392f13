package storage

import (
	"context"
	"errors"
)

// ErrNotFound key 不存在
var ErrNotFound = errors.New("storage: key not found")

// Store 是 client 端的持久化 key/value 儲存 (token, cartItems)
// 沒有跨 client 的鎖, 後寫者覆蓋先寫者
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
