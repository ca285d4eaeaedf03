package diff

import (
	"testing"

	"github.com/valko/pereklad/internal/corpus"
)

func buildCorpus(pairs ...string) *corpus.Corpus {
	c := corpus.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		c.Set(pairs[i], pairs[i+1])
	}
	return c
}

func TestCompute_AddedKey(t *testing.T) {
	source := buildCorpus("a", "Hello", "b", "Bye")
	existing := map[string]string{"a": "Hola"}

	plan := Compute(source, existing)

	if len(plan.ToTranslate) != 1 || plan.ToTranslate["b"] != "Bye" {
		t.Errorf("expected toTranslate={b:Bye}, got %v", plan.ToTranslate)
	}
	if len(plan.ToRemove) != 0 {
		t.Errorf("expected empty toRemove, got %v", plan.ToRemove)
	}
	if plan.Unchanged != 1 {
		t.Errorf("expected 1 unchanged, got %d", plan.Unchanged)
	}
}

func TestCompute_RemovedKey(t *testing.T) {
	source := buildCorpus("a", "Hello")
	existing := map[string]string{"a": "Hola", "b": "Adiós"}

	plan := Compute(source, existing)

	if len(plan.ToTranslate) != 0 {
		t.Errorf("expected empty toTranslate, got %v", plan.ToTranslate)
	}
	if _, ok := plan.ToRemove["b"]; !ok || len(plan.ToRemove) != 1 {
		t.Errorf("expected toRemove={b}, got %v", plan.ToRemove)
	}
	if plan.Unchanged != 1 {
		t.Errorf("expected 1 unchanged, got %d", plan.Unchanged)
	}
}

func TestCompute_DisjointSets(t *testing.T) {
	source := buildCorpus("x", "X", "y", "Y")
	existing := map[string]string{"z": "Z"}

	plan := Compute(source, existing)

	if len(plan.ToTranslate) != 2 {
		t.Errorf("expected 2 keys to translate, got %d", len(plan.ToTranslate))
	}
	if len(plan.ToRemove) != 1 {
		t.Errorf("expected 1 key to remove, got %d", len(plan.ToRemove))
	}
	if plan.Unchanged != 0 {
		t.Errorf("expected 0 unchanged, got %d", plan.Unchanged)
	}
}

func TestCompute_TranslateAndRemoveDisjoint(t *testing.T) {
	source := buildCorpus("a", "A", "b", "B", "c", "C")
	existing := map[string]string{"b": "b-translated", "d": "stale"}

	plan := Compute(source, existing)

	for k := range plan.ToTranslate {
		if _, ok := plan.ToRemove[k]; ok {
			t.Errorf("key %q appears in both toTranslate and toRemove", k)
		}
	}
}

func TestCompute_ChangedSourceTextIsNotRetranslated(t *testing.T) {
	// The diff detects additions and removals only; a persisting key whose
	// source text changed stays untouched.
	source := buildCorpus("a", "Hello there")
	existing := map[string]string{"a": "Hola"}

	plan := Compute(source, existing)

	if len(plan.ToTranslate) != 0 {
		t.Errorf("expected no retranslation of persisting key, got %v", plan.ToTranslate)
	}
	if plan.Unchanged != 1 {
		t.Errorf("expected 1 unchanged, got %d", plan.Unchanged)
	}
}

func TestCompute_EmptyExisting(t *testing.T) {
	source := buildCorpus("a", "A", "b", "B")

	plan := Compute(source, map[string]string{})

	if len(plan.ToTranslate) != 2 {
		t.Errorf("expected full corpus in toTranslate, got %v", plan.ToTranslate)
	}
	if len(plan.ToRemove) != 0 || plan.Unchanged != 0 {
		t.Errorf("expected no removals or unchanged, got %v / %d", plan.ToRemove, plan.Unchanged)
	}
}

func TestForced_WholeCorpusScheduled(t *testing.T) {
	source := buildCorpus("a", "A", "b", "B")
	existing := map[string]string{"a": "translated", "gone": "stale"}

	plan := Forced(source, existing)

	if len(plan.ToTranslate) != 2 {
		t.Errorf("expected whole corpus scheduled, got %v", plan.ToTranslate)
	}
	if _, ok := plan.ToRemove["gone"]; !ok {
		t.Errorf("expected stale key removal in forced mode, got %v", plan.ToRemove)
	}
	if plan.Unchanged != 0 {
		t.Errorf("expected 0 unchanged in forced mode, got %d", plan.Unchanged)
	}
}
