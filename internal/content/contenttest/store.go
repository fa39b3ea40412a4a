// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contenttest provides an in-memory content.Querier for tests.
package contenttest

import (
	"context"
	"encoding/json"
	"sync"

	"flawless/internal/content"
)

// Store answers queries from fixed results keyed by the GROQ query text.
// Queries with neither a result nor an error answer "null", which reads as
// an absent singleton or an empty collection.
type Store struct {
	mu      sync.Mutex
	results map[string]string
	errs    map[string]error
	calls   map[string]int
	modes   []content.Mode
	holds   map[string]*hold
}

// hold parks runs of a query until its gate closes.
type hold struct {
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
}

// New creates an empty store.
func New() *Store {
	return &Store{
		results: make(map[string]string),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
		holds:   make(map[string]*hold),
	}
}

// Set makes query return the raw JSON result.
func (s *Store) Set(query, raw string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[query] = raw
	delete(s.errs, query)
	return s
}

// Fail makes query return err.
func (s *Store) Fail(query string, err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[query] = err
	return s
}

// FailAll makes every known query fail with err.
func (s *Store) FailAll(err error) *Store {
	for _, q := range content.AllQueries() {
		s.Fail(q, err)
	}
	return s
}

// Hold parks every run of query after it has read its result, until release
// is called. The result is the one stored when the run started, like a read
// that began before a publish. entered receives once per parked run.
func (s *Store) Hold(query string) (entered <-chan struct{}, release func()) {
	h := &hold{entered: make(chan struct{}, 16), gate: make(chan struct{})}
	s.mu.Lock()
	s.holds[query] = h
	s.mu.Unlock()
	return h.entered, func() {
		h.once.Do(func() {
			s.mu.Lock()
			if s.holds[query] == h {
				delete(s.holds, query)
			}
			s.mu.Unlock()
			close(h.gate)
		})
	}
}

// Calls returns how many times query was run.
func (s *Store) Calls(query string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[query]
}

// TotalCalls returns the number of queries run.
func (s *Store) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// Modes returns the modes of every query run, in call order.
func (s *Store) Modes() []content.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]content.Mode(nil), s.modes...)
}

// Query implements content.Querier.
func (s *Store) Query(ctx context.Context, mode content.Mode, query string, _ map[string]any) (json.RawMessage, error) {
	s.mu.Lock()
	s.calls[query]++
	s.modes = append(s.modes, mode)
	raw, found := s.results[query]
	qerr, failed := s.errs[query]
	h := s.holds[query]
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h != nil {
		select {
		case h.entered <- struct{}{}:
		default:
		}
		select {
		case <-h.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if failed {
		return nil, qerr
	}
	if found {
		return json.RawMessage(raw), nil
	}
	return json.RawMessage("null"), nil
}
