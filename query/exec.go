// exec.go runs the result pipeline.
//
// Matching is split into batches. The sequential path checks for
// cancellation between batches; an Executor with more than one worker
// submits the batches to an ants goroutine pool and waits for all of them.
// Either way, sorting only starts once every document has been matched, and
// a cancelled or failed run returns no documents.

package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// DefaultBatchSize is the number of documents matched between cancellation
// checks.
const DefaultBatchSize = 512

// ErrExecutorClosed is returned by Exec after Release.
var ErrExecutorClosed = errors.New("query executor closed")

// Executor runs queries over document slices.
type Executor struct {
	pool  *ants.Pool
	batch int
}

// NewExecutor returns an executor matching batches of batch documents on up
// to workers goroutines. workers <= 1 matches on the calling goroutine.
func NewExecutor(workers, batch int) (*Executor, error) {
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	e := &Executor{batch: batch}
	if workers > 1 {
		pool, err := ants.NewPool(workers)
		if err != nil {
			return nil, fmt.Errorf("create match pool: %w", err)
		}
		e.pool = pool
	}
	return e, nil
}

// Release stops the worker pool, waiting briefly for running batches.
func (e *Executor) Release() {
	if e == nil || e.pool == nil {
		return
	}
	_ = e.pool.ReleaseTimeout(3 * time.Second)
}

// Exec runs filter, sort, limit and select with a sequential executor.
func Exec(ctx context.Context, q Query, docs []Document, opts Options) ([]Document, error) {
	return (&Executor{batch: DefaultBatchSize}).Exec(ctx, q, docs, opts)
}

// Filter returns the documents matching q in their original order.
func Filter(ctx context.Context, q Query, docs []Document) ([]Document, error) {
	return (&Executor{batch: DefaultBatchSize}).Filter(ctx, q, docs)
}

// Exec runs filter, sort, limit and select, in that order.
func (e *Executor) Exec(ctx context.Context, q Query, docs []Document, opts Options) ([]Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	matched, err := e.Filter(ctx, q, docs)
	if err != nil {
		return nil, err
	}
	sorted, err := Sort(matched, opts.SortOn, opts.Schema)
	if err != nil {
		return nil, err
	}
	return Select(Limit(sorted, opts.Limit), opts.SelectList), nil
}

// Filter returns the documents matching q in their original order.
func (e *Executor) Filter(ctx context.Context, q Query, docs []Document) ([]Document, error) {
	keep := make([]bool, len(docs))
	var err error
	if e.pool == nil || len(docs) <= e.batch {
		err = e.filterSequential(ctx, q, docs, keep)
	} else {
		err = e.filterParallel(ctx, q, docs, keep)
	}
	if err != nil {
		return nil, err
	}

	out := make([]Document, 0, len(docs))
	for i, doc := range docs {
		if keep[i] {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (e *Executor) filterSequential(ctx context.Context, q Query, docs []Document, keep []bool) error {
	for start := 0; start < len(docs); start += e.batch {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := matchBatch(q, docs, keep, start, min(start+e.batch, len(docs))); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) filterParallel(ctx context.Context, q Query, docs []Document, keep []bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for start := 0; start < len(docs); start += e.batch {
		if ctx.Err() != nil {
			break
		}
		start, end := start, min(start+e.batch, len(docs))
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("%w: panic while matching: %v", ErrMatch, r))
				}
			}()
			if ctx.Err() != nil {
				return
			}
			if err := matchBatch(q, docs, keep, start, end); err != nil {
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			if errors.Is(err, ants.ErrPoolClosed) {
				err = ErrExecutorClosed
			}
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

func matchBatch(q Query, docs []Document, keep []bool, start, end int) error {
	for i := start; i < end; i++ {
		ok, err := Match(q, docs[i])
		if err != nil {
			return err
		}
		keep[i] = ok
	}
	return nil
}
