package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valko/pereklad/internal/corpus"
	"github.com/valko/pereklad/internal/langcat"
	"github.com/valko/pereklad/internal/provider"
)

var ukrainian = langcat.Descriptor{Code: "uk", Name: "Ukrainian", NativeName: "Українська"}

func TestLoad_Missing(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "uk.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}

func TestLoad_ExcludesMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uk.json")
	content := `{"@@locale":"uk","@@language":"Ukrainian","greeting":"Привіт"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got["greeting"] != "Привіт" {
		t.Errorf("got %v", got)
	}
}

func TestMerge(t *testing.T) {
	existing := map[string]string{"a": "старе", "b": "б"}
	outcomes := map[string]provider.Outcome{
		"a": {Key: "a", ResultText: "нове", Succeeded: true},
		"c": {Key: "c", ResultText: "ц", Succeeded: true},
		"d": {Key: "d", ResultText: "d source", Succeeded: false},
	}

	merged := Merge(existing, outcomes)

	if merged["a"] != "нове" {
		t.Errorf("a = %q, want overwrite", merged["a"])
	}
	if merged["b"] != "б" {
		t.Errorf("b = %q, want untouched", merged["b"])
	}
	if merged["c"] != "ц" {
		t.Errorf("c = %q, want inserted", merged["c"])
	}
	// Failed outcomes never land in the artifact.
	if _, ok := merged["d"]; ok {
		t.Error("failed outcome leaked into merge")
	}
}

func TestReorder(t *testing.T) {
	source := corpus.New()
	source.Set("first", "1")
	source.Set("second", "2")
	source.Set("third", "3")

	merged := map[string]string{
		"third":    "три",
		"first":    "один",
		"obsolete": "геть",
	}

	body := Reorder(merged, source)

	if got := body.Keys(); len(got) != 2 || got[0] != "first" || got[1] != "third" {
		t.Errorf("keys = %v, want [first third]", got)
	}
	if body.Has("obsolete") {
		t.Error("obsolete key survived reorder")
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir, "uk")

	body := corpus.New()
	body.Set("greeting", "Привіт")
	body.Set("farewell", "До побачення")

	if err := Write(path, ukrainian, body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	// Metadata header precedes the body, body keeps corpus order.
	if !strings.Contains(text, `"@@locale": "uk"`) {
		t.Error("missing @@locale")
	}
	if !strings.Contains(text, `"@@native": "Українська"`) {
		t.Error("missing @@native")
	}
	if strings.Index(text, `"greeting"`) > strings.Index(text, `"farewell"`) {
		t.Error("body keys out of order")
	}
	if strings.Index(text, `"@@notice"`) > strings.Index(text, `"greeting"`) {
		t.Error("metadata not before body")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got["greeting"] != "Привіт" || got["farewell"] != "До побачення" {
		t.Errorf("reload got %v", got)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("stray temp file %s", e.Name())
		}
	}
}

func TestWrite_EmptyBody(t *testing.T) {
	path := Path(t.TempDir(), "uk")
	if err := Write(path, ukrainian, corpus.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty body", got)
	}
}

func TestPath(t *testing.T) {
	if got := Path("out", "pt_BR"); got != filepath.Join("out", "pt-br.json") {
		t.Errorf("Path = %q", got)
	}
}

func TestSummary(t *testing.T) {
	s := NewSummary("Ukrainian", "uk")
	if s.RunID == "" {
		t.Error("expected run ID")
	}

	s.Record(map[string]provider.Outcome{
		"a": {Key: "a", ResultText: "А", Succeeded: true},
		"b": {Key: "b", ResultText: "b", Succeeded: false, ErrorDetail: "rate limited"},
	})

	if s.Attempted != 2 || s.Succeeded != 1 || s.Failed != 1 {
		t.Errorf("counters = %d/%d/%d", s.Attempted, s.Succeeded, s.Failed)
	}
	if got := s.SuccessRatio(); got != 0.5 {
		t.Errorf("SuccessRatio = %v, want 0.5", got)
	}
	if len(s.Failures) != 1 || s.Failures[0].Key != "b" {
		t.Errorf("Failures = %v", s.Failures)
	}

	dir := t.TempDir()
	if err := WriteSummary(dir, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "uk.summary.txt"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "Succeeded:  1") || !strings.Contains(text, "rate limited") {
		t.Errorf("summary text:\n%s", text)
	}
}

func TestSummary_IdleRunIsPerfect(t *testing.T) {
	s := NewSummary("Ukrainian", "uk")
	if got := s.SuccessRatio(); got != 1.0 {
		t.Errorf("SuccessRatio = %v, want 1.0", got)
	}
}
