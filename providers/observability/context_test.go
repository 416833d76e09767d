package observability

import (
	"context"
	"sync"
	"testing"
)

type mockSpan struct {
	name string
}

func (m *mockSpan) End()                                          {}
func (m *mockSpan) SetAttributes(attrs ...Attribute)              {}
func (m *mockSpan) SetStatus(code StatusCode, description string) {}
func (m *mockSpan) RecordError(err error)                         {}
func (m *mockSpan) AddEvent(name string, attrs ...Attribute)      {}

type mockProvider struct {
	label string
}

func (m *mockProvider) StartSpan(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, nil
}
func (m *mockProvider) Counter(_ string) Counter                          { return nil }
func (m *mockProvider) Histogram(_ string) Histogram                      { return nil }
func (m *mockProvider) Trace(_ context.Context, _ string, _ ...Attribute) {}
func (m *mockProvider) Debug(_ context.Context, _ string, _ ...Attribute) {}
func (m *mockProvider) Info(_ context.Context, _ string, _ ...Attribute)  {}
func (m *mockProvider) Warn(_ context.Context, _ string, _ ...Attribute)  {}
func (m *mockProvider) Error(_ context.Context, _ string, _ ...Attribute) {}

func TestSpanFromContext_Empty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("expected nil span, got %v", span)
	}
	//nolint:staticcheck // nil context is tolerated
	if span := SpanFromContext(nil); span != nil {
		t.Errorf("expected nil span from nil context, got %v", span)
	}
}

func TestContextWithSpan_RoundTripAndOverwrite(t *testing.T) {
	first := &mockSpan{name: "sarvam.chat"}
	second := &mockSpan{name: "sarvam.speech"}

	ctx := ContextWithSpan(context.Background(), first)
	if SpanFromContext(ctx) != first {
		t.Fatal("expected stored span")
	}

	ctx = ContextWithSpan(ctx, second)
	if SpanFromContext(ctx) != second {
		t.Error("expected inner span to shadow outer")
	}
}

func TestSpanFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), spanContextKey, "not a span")
	if span := SpanFromContext(ctx); span != nil {
		t.Errorf("expected nil for non-Span value, got %v", span)
	}
}

func TestContextWithObserver_RoundTrip(t *testing.T) {
	observer := &mockProvider{label: "cli"}
	ctx := ContextWithObserver(context.Background(), observer)

	retrieved := ObserverFromContext(ctx)
	if retrieved != observer {
		t.Fatalf("expected the same observer, got %v", retrieved)
	}

	// Span and observer keys must not collide
	if SpanFromContext(ctx) != nil {
		t.Error("observer must not be visible as a span")
	}
}

func TestObserverFromContext_Missing(t *testing.T) {
	if observer := ObserverFromContext(context.Background()); observer != nil {
		t.Errorf("expected nil, got %v", observer)
	}
	//nolint:staticcheck // nil context is tolerated
	if observer := ObserverFromContext(nil); observer != nil {
		t.Errorf("expected nil from nil context, got %v", observer)
	}
}

func TestContextWithSpan_Concurrent(t *testing.T) {
	span := &mockSpan{name: "concurrent"}
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if SpanFromContext(ContextWithSpan(context.Background(), span)) != span {
				t.Error("concurrent access failed")
			}
		}()
	}
	wg.Wait()
}
