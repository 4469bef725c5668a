package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/shopinsight"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of stores processed at once by a Batch.
const DefaultConcurrency = 4

// Batch runs the insights query for many stores in parallel. Each store is
// an independent pipeline; one store failing never stops the others.
type Batch struct {
	Service shopinsight.InsightService

	// Writer receives every successful result. Optional.
	Writer shopinsight.ResultWriter

	// RateLimiter throttles stores sharing a host. Optional.
	RateLimiter shopinsight.DomainLimiter

	// Seen drops repeated store URLs from the input. Optional.
	Seen shopinsight.URLSet

	Concurrency int

	// RetryDelays are the waits between attempts for unreachable stores.
	// nil means DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// BatchItem is the outcome for one input URL.
type BatchItem struct {
	Position  int
	URL       string
	Result    *shopinsight.InsightResult
	Err       error
	Duplicate bool
}

// BatchResult holds the outcome of a batch, items in input order.
type BatchResult struct {
	Items     []BatchItem
	Succeeded int
	Failed    int
	Skipped   int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
// It is never called concurrently.
type ProgressFunc func(event ProgressEvent)

// Run processes every URL and reports progress through the optional
// callback. It returns an error only when ctx is canceled.
func (b *Batch) Run(ctx context.Context, urls []string, progress ProgressFunc) (*BatchResult, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	items := make([]BatchItem, len(urls))
	var work []int
	// Seen may report false positives; a hit is only a duplicate once the
	// exact set confirms it.
	added := make(map[string]struct{})
	for i, u := range urls {
		items[i] = BatchItem{Position: i, URL: u}
		if b.Seen != nil {
			k := shopinsight.StoreKey(u)
			if b.Seen.Test(u) {
				if _, ok := added[k]; ok {
					items[i].Duplicate = true
					continue
				}
			}
			b.Seen.Add(u)
			added[k] = struct{}{}
		}
		work = append(work, i)
	}

	total := len(urls)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	done := make(chan int, len(work))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, i := range work {
			g.Go(func() error {
				items[i].Result, items[i].Err = b.process(gctx, items[i].URL)
				done <- i
				return nil
			})
		}
		_ = g.Wait()
		close(done)
	}()

	result := &BatchResult{}
	completed := 0
	for i := range items {
		if items[i].Duplicate {
			result.Skipped++
			completed++
			progress(ProgressEvent{
				Type:      ProgressSkipped,
				Completed: completed,
				Total:     total,
				URL:       urls[i],
			})
		}
	}
	for i := range done {
		completed++
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       items[i].URL,
		}
		if err := items[i].Err; err != nil {
			result.Failed++
			event.Type = ProgressFailed
			event.Error = err
		} else {
			result.Succeeded++
		}
		progress(event)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	result.Items = items
	return result, ctx.Err()
}

// process runs one store through the rate limiter, the service with retry
// and the writer.
func (b *Batch) process(ctx context.Context, storeURL string) (*shopinsight.InsightResult, error) {
	normalized, err := shopinsight.NormalizeStoreURL(storeURL)
	if err != nil {
		return nil, err
	}

	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	attempt := func(ctx context.Context) (*shopinsight.InsightResult, error) {
		if b.RateLimiter != nil {
			if err := b.RateLimiter.Wait(ctx, shopinsight.StoreHost(normalized)); err != nil {
				return nil, err
			}
		}
		return b.Service.Insights(ctx, normalized)
	}
	onRetry := func(n int, err error) {
		b.logger().Debug("retrying store", "url", normalized, "attempt", n, "error", err)
	}

	result, err := withRetry(ctx, delays, attempt, onRetry)
	if err != nil {
		return nil, err
	}

	if b.Writer != nil {
		if err := b.Writer.WriteResult(ctx, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (b *Batch) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.DiscardHandler)
}
