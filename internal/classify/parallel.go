// internal/classify/parallel.go
package classify

import (
	"context"
	"errors"
	"io"
	"sync"

	"vseek/internal/fasta"
	"vseek/internal/runutil"
)

// parallel fans reads out to Threads workers. Each worker decides reads
// independently against the shared catalog; the collector (this goroutine)
// re-sequences outcomes by read index and applies them in source order.
// At most window reads are in flight, which bounds the reorder buffer.
func (r *run) parallel(parent context.Context, src Source) error {
	threads := r.c.cfg.Threads
	window := runutil.WindowFor(threads)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	type job struct {
		idx int
		rec fasta.ReadRecord
	}
	jobs := make(chan job, threads*2)
	results := make(chan Outcome, threads*2)
	slots := make(chan struct{}, window)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					o := ClassifyRead(j.rec, r.c.cat, r.c.cfg.Threshold)
					o.Index = j.idx
					select {
					case results <- o:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Feed work
	var feedErr error
	feedDone := make(chan struct{})
	go func() {
		defer close(feedDone)
		defer close(jobs)
		for idx := 0; ; idx++ {
			rec, err := r.next(src)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				feedErr = err
				return
			}
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return
			}
			select {
			case jobs <- job{idx: idx, rec: rec}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collector + re-sequencer
	var (
		applyErr error
		next     int
		pending  = make(map[int]Outcome, window)
	)
	for o := range results {
		if applyErr != nil {
			continue
		}
		pending[o.Index] = o
		for {
			p, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			<-slots
			if err := r.apply(ctx, p); err != nil {
				applyErr = err
				cancel()
				break
			}
		}
	}
	<-feedDone

	switch {
	case applyErr != nil:
		return applyErr
	case parent.Err() != nil:
		return parent.Err()
	}
	return feedErr
}
