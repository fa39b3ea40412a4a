// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"cmp"
	"slices"
	"time"
)

// SortByOrder sorts items by their display order ascending. Items without an
// order go last. Ties are broken by document ID so the result never depends
// on the order the store returned.
func SortByOrder[T any](items []T, order func(T) *float64, id func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		oa, ob := order(a), order(b)
		switch {
		case oa == nil && ob != nil:
			return 1
		case oa != nil && ob == nil:
			return -1
		case oa != nil && ob != nil:
			if c := cmp.Compare(*oa, *ob); c != 0 {
				return c
			}
		}
		return cmp.Compare(id(a), id(b))
	})
}

// SortByNewest sorts items by timestamp descending, ties by document ID.
// Items with a zero timestamp go last.
func SortByNewest[T any](items []T, at func(T) time.Time, id func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		ta, tb := at(a), at(b)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})
}
