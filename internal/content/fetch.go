// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Outcome is the result of one typed fetch. Err is set when the fetch failed;
// otherwise Value holds the decoded result, which may be empty (nil pointer
// for a missing singleton, empty slice for an empty collection).
type Outcome[T any] struct {
	Value T
	Err   error
}

// Failed reports whether the fetch failed.
func (o Outcome[T]) Failed() bool {
	return o.Err != nil
}

// Fetch runs query and decodes the result into T. A decode failure is a
// failed fetch, the same as a transport failure.
func Fetch[T any](ctx context.Context, q Querier, mode Mode, query string, params map[string]any) Outcome[T] {
	var out Outcome[T]

	raw, err := q.Query(ctx, mode, query, params)
	if err != nil {
		out.Err = err
		return out
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out
	}

	if err := json.Unmarshal(raw, &out.Value); err != nil {
		var zero T
		out.Value = zero
		out.Err = fmt.Errorf("content decode %T: %w", zero, err)
	}
	return out
}
