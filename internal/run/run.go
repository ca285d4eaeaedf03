package run

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/valko/pereklad/internal/artifact"
	"github.com/valko/pereklad/internal/batch"
	"github.com/valko/pereklad/internal/config"
	"github.com/valko/pereklad/internal/corpus"
	"github.com/valko/pereklad/internal/diff"
	"github.com/valko/pereklad/internal/extract"
	"github.com/valko/pereklad/internal/langcat"
	"github.com/valko/pereklad/internal/provider"
	"github.com/valko/pereklad/internal/source"
)

// MinSuccessRatio is the per-language acceptance gate: a batch whose success
// ratio is not above it marks the language run failed. Successful outcomes
// are still merged and persisted; the gate only decides the run's verdict.
const MinSuccessRatio = 0.8

// Policy decides what a failed language does to the rest of the run.
type Policy int

const (
	ContinueOnError Policy = iota
	AbortOnError
)

// LanguageResult reports one language's outcome within a run.
type LanguageResult struct {
	Code     string
	Language string
	Summary  *artifact.Summary
	Written  bool // artifact file was (re)written
	Err      error
}

// Runner drives a full translation run: fetch the source corpus once, then
// for each target language diff, translate, merge and write.
type Runner struct {
	cfg        config.Config
	fetcher    *source.Fetcher
	translator batch.Translator
	out        io.Writer
}

func NewRunner(cfg config.Config, fetcher *source.Fetcher, translator batch.Translator, out io.Writer) *Runner {
	cfg.Normalize()
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		cfg:        cfg,
		fetcher:    fetcher,
		translator: translator,
		out:        out,
	}
}

// LoadCorpus fetches and parses the source document. Failures here are fatal
// for the whole run: without a corpus there is nothing to diff against.
func (r *Runner) LoadCorpus(ctx context.Context) (*corpus.Corpus, error) {
	raw, err := r.fetcher.Fetch(ctx, r.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("fetching source: %w", err)
	}

	src, err := extract.Parse(string(raw), extract.DetectFormat(r.cfg.Source), r.cfg.BlockBegin, r.cfg.BlockEnd)
	if err != nil {
		return nil, fmt.Errorf("extracting corpus: %w", err)
	}
	if src.Len() == 0 {
		return nil, fmt.Errorf("source corpus is empty")
	}
	return src, nil
}

// RunLanguage translates one language against the given corpus. The merged
// artifact and the summary are persisted even when the batch misses
// MinSuccessRatio; the gate only decides whether the language counts as
// failed.
func (r *Runner) RunLanguage(ctx context.Context, src *corpus.Corpus, code string) LanguageResult {
	desc, ok := langcat.Lookup(code)
	if !ok {
		return LanguageResult{Code: code, Err: fmt.Errorf("unknown language code %q", code)}
	}
	res := LanguageResult{Code: desc.Code, Language: desc.Name}

	path := artifact.Path(r.cfg.OutputDir, desc.Code)
	existing, err := artifact.Load(path)
	if err != nil {
		res.Err = err
		return res
	}

	var plan diff.Plan
	if r.cfg.Force {
		plan = diff.Forced(src, existing)
	} else {
		plan = diff.Compute(src, existing)
	}

	summary := artifact.NewSummary(desc.Name, desc.Code)
	summary.Unchanged = plan.Unchanged
	summary.Removed = len(plan.ToRemove)
	res.Summary = summary

	entries := make([]provider.Entry, 0, len(plan.ToTranslate))
	for _, key := range src.Keys() {
		text, ok := plan.ToTranslate[key]
		if !ok {
			continue
		}
		entries = append(entries, provider.Entry{
			Key:            key,
			SourceText:     text,
			TargetLanguage: desc.Name,
			TargetCode:     desc.Code,
			Context:        r.cfg.ContextHint,
		})
	}

	fmt.Fprintf(r.out, "%s (%s): %d to translate, %d unchanged, %d to remove\n",
		desc.Name, desc.Code, len(entries), plan.Unchanged, len(plan.ToRemove))

	scheduler := batch.NewScheduler(r.translator, r.cfg.ChunkSize, r.cfg.Concurrency, r.cfg.SlotPause, r.cfg.ChunkPause)
	scheduler.OnProgress = func(done, total int) {
		fmt.Fprintf(r.out, "  %s: %d/%d\n", desc.Code, done, total)
	}

	outcomes := scheduler.Run(ctx, entries)
	summary.Record(outcomes)
	summary.FinishedAt = time.Now()

	// Merge drops failed outcomes, so persisting is always safe: successes
	// are kept even when the run as a whole is judged a failure below.
	merged := artifact.Merge(existing, outcomes)
	body := artifact.Reorder(merged, src)
	if err := artifact.Write(path, desc, body); err != nil {
		res.Err = err
	} else {
		res.Written = true
	}

	if res.Err == nil && summary.SuccessRatio() <= MinSuccessRatio {
		res.Err = fmt.Errorf("success ratio %.0f%% below threshold", summary.SuccessRatio()*100)
	}

	if err := artifact.WriteSummary(r.cfg.OutputDir, summary); err != nil && res.Err == nil {
		res.Err = err
	}
	return res
}

// RunAll processes every configured language sequentially, pausing between
// batches. Under AbortOnError the first failed language stops the run;
// languages already completed keep their artifacts.
func (r *Runner) RunAll(ctx context.Context, policy Policy) ([]LanguageResult, error) {
	src, err := r.LoadCorpus(ctx)
	if err != nil {
		return nil, err
	}

	var results []LanguageResult
	for i, code := range r.cfg.Languages {
		if i > 0 && r.cfg.InterBatchDelay > 0 {
			select {
			case <-time.After(r.cfg.InterBatchDelay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}

		res := r.RunLanguage(ctx, src, code)
		results = append(results, res)

		if res.Err != nil {
			fmt.Fprintf(r.out, "%s: %v\n", res.Code, res.Err)
			if policy == AbortOnError {
				return results, fmt.Errorf("language %s failed: %w", res.Code, res.Err)
			}
		}
	}
	return results, nil
}
