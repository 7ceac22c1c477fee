package seed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aryannaik/advocate-directory/internal/advocate"
)

// DefaultBatchSize bounds the number of records in a single insert.
const DefaultBatchSize = 100

// ErrInvalidBatchSize is returned when the loader is configured with a batch
// size below one.
var ErrInvalidBatchSize = errors.New("batch size must be at least 1")

// Inserter stores one batch and returns the records as the store confirmed
// them. Implementations must tolerate concurrent calls.
type Inserter interface {
	Insert(ctx context.Context, batch []advocate.NewAdvocate) ([]advocate.Advocate, error)
}

// BatchError reports which batch failed during a load.
type BatchError struct {
	Index int
	Size  int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("insert batch %d (%d records): %v", e.Index, e.Size, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Loader inserts a record list in fixed-size batches.
type Loader struct {
	store     Inserter
	batchSize int
	logger    *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithBatchSize overrides DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(l *Loader) { l.batchSize = n }
}

// WithLogger sets the logger used for batch progress.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

func NewLoader(store Inserter, opts ...Option) *Loader {
	l := &Loader{
		store:     store,
		batchSize: DefaultBatchSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// BatchSize returns the configured batch size.
func (l *Loader) BatchSize() int {
	return l.batchSize
}

// Load submits every batch concurrently and waits for all of them. On success
// the inserted records are returned in batch order, whatever order the inserts
// finished in. If any batch fails the first failure is returned and no records
// are; batches that succeeded stay committed.
func (l *Loader) Load(ctx context.Context, records []advocate.NewAdvocate) ([]advocate.Advocate, error) {
	if l.batchSize < 1 {
		return nil, ErrInvalidBatchSize
	}

	batches := Batches(records, l.batchSize)
	results := make([][]advocate.Advocate, len(batches))

	// A plain group: a failing batch must not cancel its siblings.
	var g errgroup.Group
	for i, batch := range batches {
		g.Go(func() error {
			inserted, err := l.store.Insert(ctx, batch)
			if err != nil {
				l.logger.Warn("Batch insert failed",
					zap.Int("batch", i),
					zap.Int("size", len(batch)),
					zap.Error(err))
				return &BatchError{Index: i, Size: len(batch), Err: err}
			}
			results[i] = inserted
			l.logger.Debug("Batch inserted",
				zap.Int("batch", i),
				zap.Int("inserted", len(inserted)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]advocate.Advocate, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}

	l.logger.Info("Seed load complete",
		zap.Int("batches", len(batches)),
		zap.Int("records", len(all)))
	return all, nil
}

// Batches splits records into consecutive slices of at most size records.
// The last slice holds the remainder. size must be positive.
func Batches(records []advocate.NewAdvocate, size int) [][]advocate.NewAdvocate {
	if size < 1 {
		return nil
	}
	batches := make([][]advocate.NewAdvocate, 0, (len(records)+size-1)/size)
	for i := 0; i < len(records); i += size {
		end := min(i+size, len(records))
		batches = append(batches, records[i:end:end])
	}
	return batches
}
