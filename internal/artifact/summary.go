package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/valko/pereklad/internal/provider"
)

// maxSampleSuccesses bounds the example translations quoted in a summary.
const maxSampleSuccesses = 5

// Failure records one key that never produced a usable translation.
type Failure struct {
	Key    string
	Detail string
}

// Sample is a successful translation quoted in the summary.
type Sample struct {
	Key  string
	Text string
}

// Summary describes a single per-language run for humans reading the output
// directory. Every run writes one, even when nothing changed.
type Summary struct {
	RunID      string
	Language   string
	Code       string
	StartedAt  time.Time
	FinishedAt time.Time

	Attempted int
	Succeeded int
	Failed    int
	Unchanged int
	Removed   int

	Samples  []Sample
	Failures []Failure
}

// NewSummary starts a summary with a fresh run ID.
func NewSummary(language, code string) *Summary {
	return &Summary{
		RunID:     uuid.NewString(),
		Language:  language,
		Code:      code,
		StartedAt: time.Now(),
	}
}

// Record folds the batch outcomes into the summary counters, keeping a few
// successes as samples and every failure with its detail.
func (s *Summary) Record(outcomes map[string]provider.Outcome) {
	keys := make([]string, 0, len(outcomes))
	for k := range outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		out := outcomes[k]
		s.Attempted++
		if out.Succeeded {
			s.Succeeded++
			if len(s.Samples) < maxSampleSuccesses {
				s.Samples = append(s.Samples, Sample{Key: k, Text: out.ResultText})
			}
		} else {
			s.Failed++
			s.Failures = append(s.Failures, Failure{Key: k, Detail: out.ErrorDetail})
		}
	}
}

// SuccessRatio reports succeeded/attempted; an idle run counts as perfect.
func (s *Summary) SuccessRatio() float64 {
	if s.Attempted == 0 {
		return 1.0
	}
	return float64(s.Succeeded) / float64(s.Attempted)
}

// WriteSummary renders the summary as plain text next to the artifact, at
// <dir>/<code>.summary.txt.
func WriteSummary(dir string, s *Summary) error {
	if s.FinishedAt.IsZero() {
		s.FinishedAt = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", s.RunID)
	fmt.Fprintf(&b, "Language:   %s (%s)\n", s.Language, s.Code)
	fmt.Fprintf(&b, "Started:    %s\n", s.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Finished:   %s\n", s.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Attempted:  %d\n", s.Attempted)
	fmt.Fprintf(&b, "Succeeded:  %d\n", s.Succeeded)
	fmt.Fprintf(&b, "Failed:     %d\n", s.Failed)
	fmt.Fprintf(&b, "Unchanged:  %d\n", s.Unchanged)
	fmt.Fprintf(&b, "Removed:    %d\n", s.Removed)

	if len(s.Samples) > 0 {
		b.WriteString("\nSample translations:\n")
		for _, sm := range s.Samples {
			fmt.Fprintf(&b, "  %s = %s\n", sm.Key, sm.Text)
		}
	}

	if len(s.Failures) > 0 {
		b.WriteString("\nFailures:\n")
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "  %s: %s\n", f.Key, f.Detail)
		}
	}

	name := strings.ToLower(strings.ReplaceAll(s.Code, "_", "-"))
	path := filepath.Join(dir, name+".summary.txt")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
