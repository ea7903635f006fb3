/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package engine

import (
	"context"
	"fmt"
	"sync"

	"chainguard.dev/strfmt/format"
	"github.com/chainguard-dev/clog"
	"github.com/golang/groupcache/lru"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMeterName is the instrumentation scope used for metrics and spans.
const DefaultMeterName = "chainguard.strfmt.engine"

// Engine formats templates through a cache of compiled programs and
// reports what it does through OpenTelemetry and clog. It is safe for
// concurrent use.
type Engine struct {
	cfg     Config
	metrics *metrics
	tracer  trace.Tracer

	mu    sync.Mutex
	cache *lru.Cache // nil when caching is disabled
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	meterName      string
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	enricher       AttributeEnricher
}

// WithMeterName sets the instrumentation scope name.
func WithMeterName(name string) Option {
	return func(o *options) { o.meterName = name }
}

// WithMeterProvider records metrics through mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithTracerProvider starts spans through tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithAttributeEnricher sets a hook that adds attributes to every metric.
func WithAttributeEnricher(enricher AttributeEnricher) Option {
	return func(o *options) { o.enricher = enricher }
}

// New returns an engine for cfg.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	o := options{
		meterName:      DefaultMeterName,
		meterProvider:  otel.GetMeterProvider(),
		tracerProvider: otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := newMetrics(o.meterProvider.Meter(o.meterName, metric.WithInstrumentationVersion("1.0.0")), o.meterName)
	m.attrEnricher = o.enricher

	e := &Engine{
		cfg:     cfg,
		metrics: m,
		tracer:  o.tracerProvider.Tracer(o.meterName, trace.WithInstrumentationVersion("1.0.0")),
	}
	if cfg.CacheSize > 0 {
		e.cache = lru.New(cfg.CacheSize)
	}
	return e, nil
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() Config { return e.cfg }

// Compile returns the program for template, compiling it on a cache miss.
// Programs that failed to compile are cached as well, so the returned
// program is never nil and its error is returned alongside it.
func (e *Engine) Compile(ctx context.Context, template string) (*format.Program, error) {
	p, hit := e.lookup(template)
	e.metrics.recordLookup(ctx, hit)
	trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("strfmt.cache.hit", hit))
	if !hit {
		p, _ = format.Compile(template, format.WithMaxInstructions(e.cfg.MaxInstructions))
		e.metrics.recordCompile(ctx)
		e.store(template, p)
	}
	return p, p.Err()
}

// Format compiles template through the cache and evaluates it against args.
// Like format.Format it accepts at most format.MaxArgs slots and ignores
// trailing None arguments. Unless the engine is strict, a call left without
// arguments returns template unchanged.
func (e *Engine) Format(ctx context.Context, template string, args ...format.Arg) (string, error) {
	ctx, span := e.tracer.Start(ctx, "strfmt.format", trace.WithAttributes(
		attribute.Int("strfmt.template.length", len(template)),
		attribute.Int("strfmt.args", len(args)),
	))
	defer span.End()

	s, err := e.format(ctx, template, args)
	if err != nil {
		reason := failureReason(err)
		span.SetAttributes(attribute.String("strfmt.failure", reason))
		span.SetStatus(codes.Error, err.Error())
		e.metrics.recordFailure(ctx, reason)
		clog.FromContext(ctx).With("template", template, "reason", reason).
			Warn("Format failed", "error", err)
		return "", err
	}
	return s, nil
}

func (e *Engine) format(ctx context.Context, template string, args []format.Arg) (string, error) {
	args, err := format.TrimSlots(args)
	if err != nil {
		return "", err
	}
	if len(args) == 0 && !e.cfg.Strict {
		return template, nil
	}
	p, err := e.Compile(ctx, template)
	if err != nil {
		return "", err
	}
	e.metrics.recordEval(ctx)
	return p.Eval(args...)
}

// Len returns the number of cached programs.
func (e *Engine) Len() int {
	if e.cache == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache.Len()
}

// Purge drops every cached program.
func (e *Engine) Purge() {
	if e.cache == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.Clear()
}

func (e *Engine) lookup(template string) (*format.Program, bool) {
	if e.cache == nil {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.cache.Get(template)
	if !ok {
		return nil, false
	}
	return v.(*format.Program), true
}

func (e *Engine) store(template string, p *format.Program) {
	if e.cache == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.Add(template, p)
}
