package pool

import (
	"context"
	"slices"
)

// Extractor pulls the values of one named field out of a record of type E.
// It returns false when the record does not carry the field; such records
// are skipped by Chain and counted in List.Skipped.
//
// Callers write one extractor per record shape instead of relying on runtime
// introspection. Key, Field and Fields cover the common shapes.
type Extractor[E any, T any] func(record E) ([]T, bool)

// Key extracts key from map records. A value of type T is taken as is; a
// []T or []any value is spliced element by element. Records without the key,
// or whose value (or any of its elements) is not a T, are skipped.
//
// Example:
//
//	records := []map[string]any{{"a": 1}, {"a": []any{2, 3}}, {"b": 4}}
//	Chain(records, Key[int]("a")).Items() // [1 2 3], Skipped() == 1
func Key[T any](key string) Extractor[map[string]any, T] {
	return func(record map[string]any) ([]T, bool) {
		v, ok := record[key]
		if !ok {
			return nil, false
		}
		return spread[T](v)
	}
}

// Field extracts a single value from every record.
func Field[E any, T any](get func(E) T) Extractor[E, T] {
	return func(record E) ([]T, bool) {
		return []T{get(record)}, true
	}
}

// Fields extracts a sequence from every record; its elements are spliced.
func Fields[E any, T any](get func(E) []T) Extractor[E, T] {
	return func(record E) ([]T, bool) {
		return get(record), true
	}
}

// spread normalises a dynamically typed value into a slice of T.
// Sequence cases come first so that T = any still splices []any values.
func spread[T any](v any) ([]T, bool) {
	switch vv := v.(type) {
	case []T:
		return vv, true
	case []any:
		out := make([]T, 0, len(vv))
		for _, e := range vv {
			t, ok := e.(T)
			if !ok {
				return nil, false
			}
			out = append(out, t)
		}
		return out, true
	case T:
		return []T{vv}, true
	}
	return nil, false
}

// List is a flat collection of inputs, usually produced by Chain, ready to be
// handed to a WorkerPool.
type List[T any] struct {
	items   []T
	skipped int
}

// NewList wraps items in a List.
func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Chain flattens the field selected by extract out of every record of
// collection into a single List, in collection order.
func Chain[E any, T any](collection []E, extract Extractor[E, T]) *List[T] {
	l := &List[T]{items: make([]T, 0, len(collection))}
	for _, record := range collection {
		values, ok := extract(record)
		if !ok {
			l.skipped++
			continue
		}
		l.items = append(l.items, values...)
	}
	return l
}

// ChainList is Chain over the items of an existing List, for nested records.
func ChainList[E any, T any](l *List[E], extract Extractor[E, T]) *List[T] {
	return Chain(l.items, extract)
}

// Items returns a copy of the list's items.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Skipped returns how many records Chain skipped because the extractor did
// not find the field.
func (l *List[T]) Skipped() int {
	return l.skipped
}

// RunList runs the list's items through Run.
func (wp *WorkerPool[T, R]) RunList(ctx context.Context, l *List[T], processFn ProcessFunc[T, R]) (*BatchResult[T, R], error) {
	return wp.Run(ctx, l.items, processFn)
}

// RunListWithRetry runs the list's items through RunWithRetry.
func (wp *WorkerPool[T, R]) RunListWithRetry(ctx context.Context, l *List[T], processFn ProcessFunc[T, R]) (*BatchResult[T, R], error) {
	return wp.RunWithRetry(ctx, l.items, processFn)
}
