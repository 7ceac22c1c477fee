package seed

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryannaik/advocate-directory/internal/advocate"
)

type fakeStore struct {
	mu     sync.Mutex
	sizes  []int
	nextID atomic.Int64
	insert func(ctx context.Context, batch []advocate.NewAdvocate) error
}

func (f *fakeStore) Insert(ctx context.Context, batch []advocate.NewAdvocate) ([]advocate.Advocate, error) {
	f.mu.Lock()
	f.sizes = append(f.sizes, len(batch))
	f.mu.Unlock()

	if f.insert != nil {
		if err := f.insert(ctx, batch); err != nil {
			return nil, err
		}
	}

	out := make([]advocate.Advocate, len(batch))
	for i, n := range batch {
		out[i] = n.WithID(strconv.FormatInt(f.nextID.Add(1), 10), time.Time{})
	}
	return out, nil
}

func makeRecords(n int) []advocate.NewAdvocate {
	records := make([]advocate.NewAdvocate, n)
	for i := range records {
		records[i] = advocate.NewAdvocate{FirstName: fmt.Sprintf("r%d", i+1)}
	}
	return records
}

func TestBatches(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{name: "empty", n: 0, size: 100, sizes: []int{}},
		{name: "single partial", n: 7, size: 100, sizes: []int{7}},
		{name: "exact", n: 200, size: 100, sizes: []int{100, 100}},
		{name: "remainder", n: 250, size: 100, sizes: []int{100, 100, 50}},
		{name: "size one", n: 3, size: 1, sizes: []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := Batches(makeRecords(tt.n), tt.size)
			sizes := make([]int, 0, len(batches))
			for _, b := range batches {
				sizes = append(sizes, len(b))
			}
			assert.Equal(t, tt.sizes, sizes)
		})
	}
}

func TestBatchesPreserveOrder(t *testing.T) {
	records := makeRecords(23)
	for _, size := range []int{1, 2, 5, 10, 23, 50} {
		var flat []advocate.NewAdvocate
		for _, b := range Batches(records, size) {
			assert.LessOrEqual(t, len(b), size)
			flat = append(flat, b...)
		}
		assert.Equal(t, records, flat, "size %d", size)
	}
}

func TestBatchesRejectsNonPositiveSize(t *testing.T) {
	assert.Nil(t, Batches(makeRecords(3), 0))
}

func TestLoadConcatenatesInBatchOrder(t *testing.T) {
	lastDone := make(chan struct{})
	store := &fakeStore{
		insert: func(ctx context.Context, batch []advocate.NewAdvocate) error {
			if len(batch) == 50 {
				close(lastDone)
				return nil
			}
			// Full batches only finish after the final batch has.
			select {
			case <-lastDone:
				return nil
			case <-time.After(5 * time.Second):
				return errors.New("batches were not issued concurrently")
			}
		},
	}

	records := makeRecords(250)
	got, err := NewLoader(store).Load(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, got, 250)

	for i, a := range got {
		assert.Equal(t, records[i].FirstName, a.FirstName)
	}
	assert.ElementsMatch(t, []int{100, 100, 50}, store.sizes)

	seen := make(map[string]bool, len(got))
	for _, a := range got {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}
}

func TestLoadEmpty(t *testing.T) {
	store := &fakeStore{}
	got, err := NewLoader(store).Load(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, store.sizes)
}

func TestLoadFailsWhenAnyBatchFails(t *testing.T) {
	boom := errors.New("connection reset")
	store := &fakeStore{
		insert: func(ctx context.Context, batch []advocate.NewAdvocate) error {
			if batch[0].FirstName == "r11" {
				return boom
			}
			return nil
		},
	}

	got, err := NewLoader(store, WithBatchSize(10)).Load(context.Background(), makeRecords(35))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.Index)
	assert.Equal(t, 10, batchErr.Size)

	// Every batch was still submitted.
	assert.Len(t, store.sizes, 4)
}

func TestLoadDoesNotCancelSiblings(t *testing.T) {
	var completed atomic.Int32
	store := &fakeStore{
		insert: func(ctx context.Context, batch []advocate.NewAdvocate) error {
			if batch[0].FirstName == "r1" {
				return errors.New("first batch failed")
			}
			time.Sleep(20 * time.Millisecond)
			if ctx.Err() == nil {
				completed.Add(1)
			}
			return nil
		},
	}

	_, err := NewLoader(store, WithBatchSize(1)).Load(context.Background(), makeRecords(4))
	require.Error(t, err)
	assert.Equal(t, int32(3), completed.Load())
}

func TestLoadInvalidBatchSize(t *testing.T) {
	_, err := NewLoader(&fakeStore{}, WithBatchSize(0)).Load(context.Background(), makeRecords(3))
	assert.ErrorIs(t, err, ErrInvalidBatchSize)
}

func TestAdvocatesDataset(t *testing.T) {
	rows := Advocates()
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.NotEmpty(t, r.FirstName)
		assert.NotEmpty(t, r.Specialties)
		assert.GreaterOrEqual(t, r.YearsOfExperience, 0)
		assert.Len(t, strconv.FormatInt(r.PhoneNumber, 10), 10)
	}
}
