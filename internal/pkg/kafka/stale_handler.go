package kafka

import (
	"Quill/internal/pkg/logger"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ScopeEvictor 淘汰某个 scope 的本地视图
type ScopeEvictor interface {
	Evict(ctx context.Context, scope string) error
}

// StaleHandler 消费视图失效事件，淘汰对应缓存
type StaleHandler struct {
	evictor ScopeEvictor
}

func NewStaleHandler(evictor ScopeEvictor) *StaleHandler {
	return &StaleHandler{evictor: evictor}
}

func (s *StaleHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("stale consumer setup")
	return nil
}

func (s *StaleHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("stale consumer cleanup")
	return nil
}

func (s *StaleHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	if err := pullMessageBatch(session, claim, s.logic); err != nil {
		log.Error("stale consumer process batch error", "err", err)
		return err
	}
	return nil
}

func (s *StaleHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := decodeStaleEvent(msg.Value)
	if err != nil {
		// 格式错误的消息重试也不会成功，直接跳过
		log.WarnContext(ctx, "skip malformed stale event", "offset", msg.Offset, "err", err)
		return nil
	}

	if event.TraceID != "" {
		ctx = logger.WithTraceID(ctx, event.TraceID)
	}
	if err = s.evictor.Evict(ctx, event.Scope); err != nil {
		return err
	}
	log.DebugContext(ctx, "view evicted", "scope", event.Scope)
	return nil
}
