package kafka

import (
	"Quill/internal/api/config"
	"Quill/internal/pkg/logger"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// StalePublisher 把视图失效事件异步写入 Kafka，队列满时丢弃
type StalePublisher struct {
	topic  string
	input  chan<- *sarama.ProducerMessage
	closer interface{ Close() error }

	mu     sync.RWMutex
	closed bool
}

func NewStalePublisher(kafkaCfg config.KafkaConfig, topic string) (*StalePublisher, error) {
	producer, err := sarama.NewAsyncProducer(kafkaCfg.Brokers, newSaramaConfig(kafkaCfg))
	if err != nil {
		return nil, err
	}

	go func() {
		for pErr := range producer.Errors() {
			log.Warn("stale event publish failed", "topic", topic, "err", pErr.Err)
		}
	}()

	return &StalePublisher{
		topic:  topic,
		input:  producer.Input(),
		closer: producer,
	}, nil
}

// NotifyStale 不阻塞调用方，投递失败只记录日志
func (s *StalePublisher) NotifyStale(ctx context.Context, scope string) {
	raw, err := json.Marshal(&StaleEvent{
		Scope:   scope,
		TraceID: logger.TraceID(ctx),
		At:      time.Now(),
	})
	if err != nil {
		log.WarnContext(ctx, "stale event encode failed", "scope", scope, "err", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(scope),
		Value: sarama.ByteEncoder(raw),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.input <- msg:
	default:
		log.WarnContext(ctx, "stale event dropped, producer busy", "scope", scope)
	}
}

// Close 刷出缓冲中的消息并关闭
func (s *StalePublisher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
