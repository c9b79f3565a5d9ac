package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"strings"
	"testing"
)

func TestContextHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	l.InfoContext(WithTraceID(context.Background(), "abc-123"), "hello")
	if !strings.Contains(buf.String(), `"trace_id":"abc-123"`) {
		t.Fatalf("trace id missing: %s", buf.String())
	}

	buf.Reset()
	l.With("k", "v").InfoContext(context.Background(), "hello")
	if strings.Contains(buf.String(), "trace_id") {
		t.Fatalf("unexpected trace id: %s", buf.String())
	}
}

func TestTeeHandlerRemoteFilter(t *testing.T) {
	var local, remote bytes.Buffer
	h := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&local, nil),
		&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	l := log.New(&ContextHandler{h})

	l.Info("boot")
	l.InfoContext(WithTraceID(context.Background(), "t1"), "request")

	if strings.Count(local.String(), "\n") != 2 {
		t.Fatalf("local should receive every line: %s", local.String())
	}
	if strings.Contains(remote.String(), "boot") || !strings.Contains(remote.String(), "request") {
		t.Fatalf("remote should only receive traced lines: %s", remote.String())
	}
}
