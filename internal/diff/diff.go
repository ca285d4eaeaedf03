// Package diff computes the update plan between a freshly extracted corpus
// and the translations already present in a persisted artifact. It is a
// pure set comparison: no network, no disk.
package diff

import (
	"github.com/valko/pereklad/internal/corpus"
)

// Plan describes what a run must do. Computed once per run, never mutated.
type Plan struct {
	// ToTranslate maps keys present in the source but absent from the
	// existing artifact to their source text.
	ToTranslate map[string]string
	// ToRemove holds keys present in the existing artifact but gone from
	// the source.
	ToRemove map[string]struct{}
	// Unchanged counts keys present in both.
	Unchanged int
}

// Compute diffs source against existing. Keys present in both are left
// alone even if their source text changed; re-translating those requires
// Forced.
func Compute(source *corpus.Corpus, existing map[string]string) Plan {
	plan := Plan{
		ToTranslate: make(map[string]string),
		ToRemove:    make(map[string]struct{}),
	}

	for _, k := range source.Keys() {
		if _, ok := existing[k]; ok {
			plan.Unchanged++
			continue
		}
		v, _ := source.Get(k)
		plan.ToTranslate[k] = v
	}

	for k := range existing {
		if !source.Has(k) {
			plan.ToRemove[k] = struct{}{}
		}
	}

	return plan
}

// Forced bypasses diffing: the whole source corpus is scheduled for
// translation. Keys that vanished from the source are still marked for
// removal so a forced run never resurrects stale entries.
func Forced(source *corpus.Corpus, existing map[string]string) Plan {
	plan := Plan{
		ToTranslate: source.Map(),
		ToRemove:    make(map[string]struct{}),
	}
	for k := range existing {
		if !source.Has(k) {
			plan.ToRemove[k] = struct{}{}
		}
	}
	return plan
}
