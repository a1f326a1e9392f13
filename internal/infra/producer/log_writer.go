package producer

import (
	"context"
	"encoding/binary"
	"errors"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaLogWriter 當作 zerolog 的 io.Writer, 每行 log 一則 kafka message
type KafkaLogWriter struct {
	w      messageWriter
	logID  atomic.Uint64
	closed atomic.Bool
}

// NewKafkaLogWriter async writer, log 不會因為 broker 變慢而阻塞 request
func NewKafkaLogWriter(brokers []string, topic string) *KafkaLogWriter {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		MaxAttempts:  3,
		Async:        true,
	}
	return newKafkaLogWriter(w)
}

func newKafkaLogWriter(w messageWriter) *KafkaLogWriter {
	return &KafkaLogWriter{w: w}
}

func (kw *KafkaLogWriter) Write(p []byte) (int, error) {
	if kw.closed.Load() {
		return 0, ErrProducerClosed
	}
	// key 用遞增序號, 平均分到各 partition
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, kw.logID.Add(1))
	// zerolog 會重用 p
	value := make([]byte, len(p))
	copy(value, p)

	if err := kw.w.WriteMessages(context.Background(), kafka.Message{Key: key, Value: value}); err != nil {
		return 0, errors.Join(ErrLogWrite, err)
	}
	return len(p), nil
}

var ErrLogWrite = errors.New("kafka log write failed")

func (kw *KafkaLogWriter) Close() error {
	if !kw.closed.CompareAndSwap(false, true) {
		return nil
	}
	return kw.w.Close()
}
