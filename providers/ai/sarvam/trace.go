package sarvam

import (
	"context"
	"time"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

// callScope carries the span, observer and timing of a single provider call.
// All methods are safe on a scope without observer or span.
type callScope struct {
	ctx       context.Context
	name      string
	observer  observability.Provider
	span      observability.Span
	ownsSpan  bool
	startTime time.Time
}

// beginCall starts a span when an observer is available, otherwise it enriches
// the span already present in ctx.
func (p *SarvamProvider) beginCall(ctx context.Context, name, endpoint, model string, attrs ...observability.Attribute) *callScope {
	scope := &callScope{
		ctx:       ctx,
		name:      name,
		observer:  p.observerFor(ctx),
		startTime: time.Now(),
	}

	baseAttrs := []observability.Attribute{
		observability.String(observability.AttrLLMProvider, providerName),
		observability.String(observability.AttrLLMEndpoint, p.baseURL+endpoint),
		observability.String(observability.AttrLLMModel, model),
	}
	baseAttrs = append(baseAttrs, attrs...)

	if scope.observer != nil {
		scope.ctx, scope.span = scope.observer.StartSpan(ctx, name, baseAttrs...)
		scope.ownsSpan = scope.span != nil
		scope.observer.Counter(observability.MetricRequestCount).Add(ctx, 1, observability.String("operation", name))
		scope.observer.Debug(ctx, "Sarvam request prepared", baseAttrs...)
	} else {
		scope.span = observability.SpanFromContext(ctx)
		if scope.span != nil {
			scope.span.SetAttributes(baseAttrs...)
		}
	}

	if scope.span != nil {
		scope.span.AddEvent(observability.EventLLMRequestStart)
	}
	return scope
}

func (scope *callScope) event(name string, attrs ...observability.Attribute) {
	if scope.span != nil {
		scope.span.AddEvent(name, attrs...)
	}
	if scope.observer != nil {
		scope.observer.Debug(scope.ctx, name, attrs...)
	}
}

// trace logs payloads at trace level; they can be large.
func (scope *callScope) trace(msg string, attrs ...observability.Attribute) {
	if scope.observer != nil {
		scope.observer.Trace(scope.ctx, msg, attrs...)
	}
}

func (scope *callScope) warnings(warnings []ai.CallWarning) {
	if len(warnings) == 0 {
		return
	}
	settings := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		switch {
		case warning.Setting != "":
			settings = append(settings, warning.Setting)
		case warning.Tool != "":
			settings = append(settings, warning.Tool)
		default:
			settings = append(settings, warning.Message)
		}
	}
	if scope.span != nil {
		scope.span.SetAttributes(observability.StringSlice(observability.AttrLLMWarnings, settings))
	}
	if scope.observer != nil {
		scope.observer.Warn(scope.ctx, "Sarvam call warnings", observability.StringSlice(observability.AttrLLMWarnings, settings))
	}
}

func (scope *callScope) usage(usage *ai.Usage) {
	if usage == nil {
		return
	}
	attrs := []observability.Attribute{
		observability.Int(observability.AttrLLMTokensPrompt, usage.PromptTokens),
		observability.Int(observability.AttrLLMTokensCompletion, usage.CompletionTokens),
		observability.Int(observability.AttrLLMTokensTotal, usage.TotalTokens),
	}
	if scope.span != nil {
		scope.span.AddEvent(observability.EventTokensReceived, attrs...)
		scope.span.SetAttributes(attrs...)
	}
	if scope.observer != nil {
		scope.observer.Counter(observability.MetricTokensPrompt).Add(scope.ctx, int64(usage.PromptTokens))
		scope.observer.Counter(observability.MetricTokensCompletion).Add(scope.ctx, int64(usage.CompletionTokens))
		scope.observer.Counter(observability.MetricTokensTotal).Add(scope.ctx, int64(usage.TotalTokens))
	}
}

// end closes the call. A nil err marks the span OK.
func (scope *callScope) end(err error, attrs ...observability.Attribute) {
	duration := time.Since(scope.startTime)
	attrs = append(attrs, observability.Duration(observability.AttrDuration, duration))

	if scope.span != nil {
		scope.span.AddEvent(observability.EventLLMRequestEnd, attrs...)
		if err != nil {
			scope.span.RecordError(err)
			scope.span.SetStatus(observability.StatusError, err.Error())
		} else {
			scope.span.SetStatus(observability.StatusOK, "")
		}
		if scope.ownsSpan {
			scope.span.End()
		}
	}

	if scope.observer != nil {
		scope.observer.Histogram(observability.MetricRequestDuration).Record(scope.ctx, float64(duration.Milliseconds()),
			observability.String("operation", scope.name))
		if err != nil {
			scope.observer.Counter(observability.MetricRequestErrors).Add(scope.ctx, 1, observability.String("operation", scope.name))
			scope.observer.Error(scope.ctx, "Sarvam request failed", append(attrs, observability.Error(err))...)
		} else {
			scope.observer.Debug(scope.ctx, "Sarvam request completed", attrs...)
		}
	}
}
