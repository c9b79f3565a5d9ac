package kafka

import (
	"Quill/internal/pkg/util"
	"time"

	"github.com/goccy/go-json"
)

// StaleEvent 视图失效事件
type StaleEvent struct {
	Scope   string    `json:"scope" validate:"required"`
	TraceID string    `json:"trace_id,omitempty"`
	At      time.Time `json:"at"`
}

// decodeStaleEvent 解析并校验消息体
func decodeStaleEvent(raw []byte) (*StaleEvent, error) {
	var event StaleEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, err
	}
	if err := util.ValidateDTO(&event); err != nil {
		return nil, err
	}
	return &event, nil
}
