package kafka

import (
	"Quill/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	staleTopic    string
	staleConsumer sarama.ConsumerGroup
	staleHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, evictor ScopeEvictor) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	staleConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaStale.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		staleTopic:    cfg.KafkaStale.Topic,
		staleConsumer: staleConsumer,
		staleHandler:  NewStaleHandler(evictor),
	}, nil
}

// Start 启动所有消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		log.Info("Stale consumer started", "topic", m.staleTopic)
		for {
			if err := m.staleConsumer.Consume(ctx, []string{m.staleTopic}, m.staleHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range m.staleConsumer.Errors() {
			log.Warn("stale consumer error", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.staleConsumer.Close(); err != nil {
		log.Error("Failed to close stale consumer", "err", err)
	}
	return nil
}
