package db

import (
	"context"

	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

func (d *DbDao) ctx(ctx context.Context) *gorm.DB {
	return d.WithContext(ctx)
}
