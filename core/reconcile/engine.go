package reconcile

import (
	"sort"
)

// Adapter defines the model-specific part of a reconciliation.
type Adapter[T any] interface {
	// Name returns the display name of an item.
	Name(item T) string

	// CompareFields compares two items with the same key and returns a list of mismatch
	// descriptions. Each string should include the field label and both values
	// (e.g., "year: built=1981 stored=1982").
	CompareFields(built, stored T) []string
}

// Reconcile builds the union of keys from both indices and returns a result for each key
// indicating presence and mismatches, sorted by key.
func Reconcile[T any](built, stored map[string]T, adapter Adapter[T]) []Result {
	unionKeys := buildUnion(built, stored)

	results := make([]Result, 0, len(unionKeys))
	for key := range unionKeys {
		results = append(results, buildResult(key, built, stored, adapter))
	}

	// Sort results by key for deterministic output
	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})

	return results
}

// buildUnion creates a union of all keys from both sides.
func buildUnion[T any](built, stored map[string]T) map[string]struct{} {
	union := make(map[string]struct{}, len(built))
	for key := range built {
		union[key] = struct{}{}
	}
	for key := range stored {
		union[key] = struct{}{}
	}
	return union
}

// buildResult creates a Result for a single key.
func buildResult[T any](key string, built, stored map[string]T, adapter Adapter[T]) Result {
	builtItem, builtPresent := built[key]
	storedItem, storedPresent := stored[key]

	result := Result{
		Key:      key,
		Built:    builtPresent,
		Stored:   storedPresent,
		Mismatch: []string{},
	}

	if builtPresent {
		result.Name = adapter.Name(builtItem)
	} else {
		result.Name = adapter.Name(storedItem)
	}

	// Compare fields if both present
	if builtPresent && storedPresent {
		result.Mismatch = adapter.CompareFields(builtItem, storedItem)
	}

	return result
}
