package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_NoLogger(t *testing.T) {
	l := FromContext(context.Background())
	assert.NotNil(t, l)
}

func TestWithRequestAndSessionID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, _ := WithRequestID(context.Background(), base, "req-1")
	ctx, l := WithSessionID(ctx, FromContext(ctx), "sess-9")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "sess-9", GetSessionID(ctx))

	l.Info("cart updated")
	entry := recorded.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "sess-9", fields["session_id"])

	FromContext(ctx).Info("again")
	assert.Equal(t, 2, recorded.Len())
}

func TestL_Fallback(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	fallback := zap.New(core)

	L(context.Background(), fallback).Info("fallback used")
	assert.Equal(t, 1, recorded.Len())
	assert.NotNil(t, L(context.Background(), nil))
}
