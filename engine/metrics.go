/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package engine

import (
	"context"
	"errors"
	"log/slog"

	"chainguard.dev/strfmt/format"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// AttributeEnricher adds caller context to the attributes recorded with
// every engine metric.
type AttributeEnricher func(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue

// metrics holds the engine counters. A counter that cannot be created is
// replaced by a no-op counter and a warning is logged.
type metrics struct {
	compiles     metric.Int64Counter
	evals        metric.Int64Counter
	hits         metric.Int64Counter
	misses       metric.Int64Counter
	failures     metric.Int64Counter
	attrEnricher AttributeEnricher
}

func newMetrics(meter metric.Meter, meterName string) *metrics {
	counter := func(name, desc, unit string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			slog.Warn("Failed to create counter, metric will be disabled", "error", err, "meter", meterName, "counter", name)
			return noop.Int64Counter{}
		}
		return c
	}
	return &metrics{
		compiles: counter("strfmt.compile", "The number of templates compiled", "{templates}"),
		evals:    counter("strfmt.eval", "The number of program evaluations", "{evaluations}"),
		hits:     counter("strfmt.cache.hit", "The number of compiled programs served from the cache", "{lookups}"),
		misses:   counter("strfmt.cache.miss", "The number of cache lookups that compiled a template", "{lookups}"),
		failures: counter("strfmt.failures", "The number of failed format calls", "{calls}"),
	}
}

func (m *metrics) attrs(ctx context.Context, extra ...attribute.KeyValue) metric.AddOption {
	var base []attribute.KeyValue
	if m.attrEnricher != nil {
		base = m.attrEnricher(ctx, base)
	}
	return metric.WithAttributes(append(base, extra...)...)
}

func (m *metrics) recordCompile(ctx context.Context) { m.compiles.Add(ctx, 1, m.attrs(ctx)) }

func (m *metrics) recordEval(ctx context.Context) { m.evals.Add(ctx, 1, m.attrs(ctx)) }

func (m *metrics) recordLookup(ctx context.Context, hit bool) {
	if hit {
		m.hits.Add(ctx, 1, m.attrs(ctx))
		return
	}
	m.misses.Add(ctx, 1, m.attrs(ctx))
}

func (m *metrics) recordFailure(ctx context.Context, reason string) {
	m.failures.Add(ctx, 1, m.attrs(ctx, attribute.String("reason", reason)))
}

// failureReason maps an error to a bounded label value.
func failureReason(err error) string {
	switch {
	case errors.Is(err, format.ErrSyntax):
		return "syntax"
	case errors.Is(err, format.ErrCoverage):
		return "coverage"
	case errors.Is(err, format.ErrLimitExceeded):
		return "limit"
	case errors.Is(err, format.ErrArgRange):
		return "arg_range"
	case errors.Is(err, format.ErrArgType):
		return "arg_type"
	case errors.Is(err, format.ErrTooManyArgs):
		return "too_many_args"
	}
	return "other"
}
