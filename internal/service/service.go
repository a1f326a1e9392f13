package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/virtualart/internal/infra/producer"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/rs/zerolog"
)

// dbErr 將 repository 錯誤轉成 AnaError, not found 以外一律 500
func dbErr(err error, notFoundMsg string) error {
	if errors.Is(err, db.ErrRecordNotFound) {
		return er.New(er.NotFoundCode, notFoundMsg)
	}
	return er.New(er.InternalErrorCode, err.Error())
}

// publish 事件失敗只記 log, 不影響已 commit 的資料
func publish(ctx context.Context, p producer.EventProducer, logger *zerolog.Logger, eventType producer.EventType, aggregateID string, payload any) {
	evt, err := producer.NewDomainEvent(eventType, aggregateID, payload)
	if err == nil {
		err = p.Publish(ctx, evt)
	}
	if err != nil {
		logger.Error().Err(err).Str("event_type", string(eventType)).Str("aggregate_id", aggregateID).Msg("failed to publish domain event")
	}
}
