// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fallback decides what content a page renders when the content
// store is unreachable or has nothing to offer. Every content type goes
// through the same policy; only the default value differs per call site.
package fallback

import (
	"context"
	"log/slog"
	"reflect"

	"flawless/internal/content"
	"flawless/internal/metrics"
)

// defaulter is implemented by content types whose missing fields can be
// filled one by one from a default value.
type defaulter[T any] interface {
	WithDefaults(fb T) T
}

// Resolve returns the value to render for kind:
//
//  1. a failed fetch yields fb, and the failure is logged;
//  2. a missing singleton or an empty collection yields fb;
//  3. otherwise the fetched value, with missing fields filled from fb when
//     the type supports field-level defaults.
//
// Resolve never returns the fetch error; pages always render.
func Resolve[T any](ctx context.Context, kind string, o content.Outcome[T], fb T) T {
	if o.Err != nil {
		slog.WarnContext(ctx, "content fetch failed, using fallback",
			"kind", kind,
			"error", o.Err,
		)
		metrics.ContentResolutions.WithLabelValues(kind, metrics.OutcomeError).Inc()
		return fb
	}

	if isEmpty(o.Value) {
		slog.DebugContext(ctx, "content empty, using fallback", "kind", kind)
		metrics.ContentResolutions.WithLabelValues(kind, metrics.OutcomeEmpty).Inc()
		return fb
	}

	metrics.ContentResolutions.WithLabelValues(kind, metrics.OutcomeOK).Inc()
	if d, ok := any(o.Value).(defaulter[T]); ok {
		return d.WithDefaults(fb)
	}
	return o.Value
}

// isEmpty reports whether v is a nil pointer, a nil or zero-length slice or
// map, or a nil interface.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}
