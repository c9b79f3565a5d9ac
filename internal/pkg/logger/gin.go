package logger

import (
	"Quill/internal/api/config"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id"`
	LogToken    string `json:"log_token,omitempty"`
	TargetIndex string `json:"target_index,omitempty"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	Latency     string `json:"latency"`
	ClientIP    string `json:"client_ip"`
}

// SetupGin 挂载 JSON 访问日志与 Recovery
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		Formatter: formatAccess,
	}))

	r.Use(gin.Recovery())
}

func formatAccess(p gin.LogFormatterParams) string {
	var traceID string
	if p.Keys != nil {
		traceID, _ = p.Keys[TraceIDKey].(string)
	}
	if traceID == "" && p.Request != nil {
		traceID = TraceID(p.Request.Context())
	}

	line := accessLine{
		Time:     p.TimeStamp.Format(time.RFC3339),
		Level:    "INFO",
		Msg:      "GIN_ACCESS",
		TraceID:  traceID,
		Method:   p.Method,
		Path:     p.Path,
		Status:   p.StatusCode,
		Latency:  p.Latency.String(),
		ClientIP: p.ClientIP,
	}
	if config.Cfg != nil {
		line.LogToken = config.Cfg.Logstash.Token
		line.TargetIndex = config.Cfg.Logstash.Index
	}

	b, err := json.Marshal(line)
	if err != nil {
		return ""
	}
	return string(b) + "\n"
}
