package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var (
	ErrProducerClosed = errors.New("producer is closed")
)

// KafkaError 代表 Kafka 操作錯誤
type KafkaError struct {
	Operation string
	Topic     string
	Err       error
}

func (e *KafkaError) Error() string {
	return fmt.Sprintf("kafka operation %s on topic %s failed: %v", e.Operation, e.Topic, e.Err)
}

func (e *KafkaError) Unwrap() error {
	return e.Err
}

func NewKafkaError(operation, topic string, err error) error {
	return &KafkaError{
		Operation: operation,
		Topic:     topic,
		Err:       err,
	}
}

// EventProducer 發送 domain event, 失敗不影響主流程 (由呼叫端決定是否忽略)
type EventProducer interface {
	Publish(ctx context.Context, evt *DomainEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer messageWriter
	topic  string
	closed atomic.Bool
}

func NewKafkaProducer(brokers []string, topic string, logger *zerolog.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		Transport: &kafka.Transport{
			Dial: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error().Msgf("kafka producer error: "+msg, args...)
		}),
	}
	return newKafkaProducer(writer, topic)
}

func newKafkaProducer(writer messageWriter, topic string) *KafkaProducer {
	return &KafkaProducer{writer: writer, topic: topic}
}

var _ EventProducer = (*KafkaProducer)(nil)

// Publish 同步寫入, 以 AggregateID 當 key 確保同一實體事件有序
func (p *KafkaProducer) Publish(ctx context.Context, evt *DomainEvent) error {
	if p.closed.Load() {
		return NewKafkaError("Publish", p.topic, ErrProducerClosed)
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return NewKafkaError("Publish", p.topic, err)
	}
	msg := kafka.Message{
		Key:   []byte(evt.AggregateID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
		},
		Time: evt.CreatedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return NewKafkaError("Publish", p.topic, err)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

// NoopProducer 未設定 KAFKA_BROKERS 時使用
type NoopProducer struct {
	logger *zerolog.Logger
}

func NewNoopProducer(logger *zerolog.Logger) *NoopProducer {
	return &NoopProducer{logger: logger}
}

func (n *NoopProducer) Publish(_ context.Context, evt *DomainEvent) error {
	n.logger.Debug().Str("event_type", string(evt.EventType)).Str("aggregate_id", evt.AggregateID).Msg("event dropped, no kafka brokers")
	return nil
}

func (n *NoopProducer) Close() error { return nil }
