package batch

import (
	"context"
	"sync"
	"time"

	"github.com/valko/pereklad/internal/provider"
)

// Translator resolves one entry to its final outcome, retries included.
// *provider.Client satisfies it.
type Translator interface {
	Translate(ctx context.Context, entry provider.Entry) provider.Outcome
}

// Scheduler fans entries out to a Translator in fixed-size chunks. Within a
// chunk at most `concurrency` translations run at once; a finished dispatch
// holds its slot for slotPause before the slot is reused, and consecutive
// chunks are separated by chunkPause. The pacing keeps free-tier rate
// limiters happy.
type Scheduler struct {
	translator  Translator
	chunkSize   int
	concurrency int
	slotPause   time.Duration
	chunkPause  time.Duration

	// OnProgress, when set, is called after every completed entry with the
	// running done count and the total.
	OnProgress func(done, total int)
}

func NewScheduler(translator Translator, chunkSize, concurrency int, slotPause, chunkPause time.Duration) *Scheduler {
	if chunkSize <= 0 {
		chunkSize = 50
	}
	if concurrency <= 0 {
		concurrency = 2
	}
	return &Scheduler{
		translator:  translator,
		chunkSize:   chunkSize,
		concurrency: concurrency,
		slotPause:   slotPause,
		chunkPause:  chunkPause,
	}
}

// Run translates every entry and returns the outcomes keyed by entry key.
// Entries remaining when ctx is cancelled are reported as failed outcomes
// carrying their source text.
func (s *Scheduler) Run(ctx context.Context, entries []provider.Entry) map[string]provider.Outcome {
	outcomes := make(map[string]provider.Outcome, len(entries))
	if len(entries) == 0 {
		return outcomes
	}

	var mu sync.Mutex
	done := 0
	record := func(out provider.Outcome) {
		mu.Lock()
		outcomes[out.Key] = out
		done++
		n := done
		mu.Unlock()
		if s.OnProgress != nil {
			s.OnProgress(n, len(entries))
		}
	}

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for start := 0; start < len(entries); start += s.chunkSize {
		if start > 0 && s.chunkPause > 0 {
			select {
			case <-time.After(s.chunkPause):
			case <-ctx.Done():
			}
		}

		end := start + s.chunkSize
		if end > len(entries) {
			end = len(entries)
		}

		for _, entry := range entries[start:end] {
			if ctx.Err() != nil {
				record(cancelledOutcome(entry, ctx.Err()))
				continue
			}

			sem <- struct{}{}
			wg.Add(1)
			go func(entry provider.Entry) {
				defer wg.Done()
				record(s.translator.Translate(ctx, entry))
				// The slot stays held for slotPause after the dispatch
				// completes, success or failure, so the provider sees
				// paced traffic.
				if s.slotPause > 0 {
					select {
					case <-time.After(s.slotPause):
					case <-ctx.Done():
					}
				}
				<-sem
			}(entry)
		}

		// A chunk finishes completely before the next one starts.
		wg.Wait()
	}

	return outcomes
}

func cancelledOutcome(entry provider.Entry, err error) provider.Outcome {
	detail := "cancelled"
	if err != nil {
		detail = err.Error()
	}
	return provider.Outcome{
		Key:         entry.Key,
		ResultText:  entry.SourceText,
		Succeeded:   false,
		ErrorDetail: detail,
	}
}
