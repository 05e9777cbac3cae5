package telemetry_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pupuk/storefront/internal/infrastructure/telemetry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// installTracer enables tracing into an in-memory exporter and restores the
// previous global provider afterwards.
func installTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	prev := otel.GetTracerProvider()
	exp := tracetest.NewInMemoryExporter()
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:       true,
		ServiceName:   "storefront-test",
		SamplingRatio: 1,
	}, zaptest.NewLogger(t), telemetry.WithSpanExporter(exp))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exp
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{ServiceName: "x"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestStartSpan(t *testing.T) {
	exp := installTracer(t)

	ctx, span := telemetry.StartSpan(context.Background(), "checkout", "submit",
		telemetry.SpanAttrItemCount, 2,
		telemetry.SpanAttrOutcome, "success",
	)
	assert.NotEmpty(t, telemetry.TraceID(ctx))
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderTotal, 150000.0)
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "checkout.submit", spans[0].Name)
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "2", attrs[telemetry.SpanAttrItemCount])
	assert.Equal(t, "success", attrs[telemetry.SpanAttrOutcome])
	assert.Equal(t, "150000", attrs[telemetry.SpanAttrOrderTotal])
}

func TestRecordError(t *testing.T) {
	exp := installTracer(t)

	_, span := telemetry.StartClientSpan(context.Background(), "regionapi", "fetch")
	telemetry.RecordError(span, errors.New("upstream timeout"))
	telemetry.RecordError(span, nil)
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "upstream timeout", spans[0].Status.Description)
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, telemetry.TraceID(context.Background()))
}

func TestGinMiddleware_SkipsHealth(t *testing.T) {
	exp := installTracer(t)

	r := gin.New()
	r.Use(telemetry.GinMiddleware("storefront-test", "/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/cart", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/health", "/api/v1/cart"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name, "/api/v1/cart")
}

func TestInstrumentGorm(t *testing.T) {
	exp := installTracer(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, telemetry.InstrumentGorm(db, "storefront"))

	var n int
	require.NoError(t, db.WithContext(context.Background()).Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
	assert.NotEmpty(t, exp.GetSpans())
}

type recordingLogExporter struct {
	mu      sync.Mutex
	records []string
}

func (e *recordingLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Body().AsString())
	}
	return nil
}

func (e *recordingLogExporter) Shutdown(context.Context) error   { return nil }
func (e *recordingLogExporter) ForceFlush(context.Context) error { return nil }

func (e *recordingLogExporter) messages() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.records...)
}

func TestLoggerProvider_Bridge(t *testing.T) {
	exp := &recordingLogExporter{}
	lp, err := telemetry.NewLoggerProvider(context.Background(), telemetry.Config{
		Enabled:     true,
		LogsEnabled: true,
		ServiceName: "storefront-test",
	}, zap.NewNop(), telemetry.WithLogExporter(exp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })
	require.True(t, lp.IsEnabled())

	log := lp.Bridge(zap.NewNop(), zapcore.InfoLevel)
	log.Debug("dropped")
	log.Info("order placed", zap.String("order_id", "abc"))

	assert.Equal(t, []string{"order placed"}, exp.messages())
}

func TestLoggerProvider_DisabledKeepsLogger(t *testing.T) {
	lp, err := telemetry.NewLoggerProvider(context.Background(), telemetry.Config{Enabled: true}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())

	base := zap.NewNop()
	assert.Same(t, base, lp.Bridge(base, zapcore.InfoLevel))
	assert.NoError(t, lp.Shutdown(context.Background()))
}
