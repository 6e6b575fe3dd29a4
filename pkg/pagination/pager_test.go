package pagination

import (
	"context"
	"errors"
	"testing"
)

// batchFetcher returns a FetchPage that serves the given batch sizes in
// order and records the number of calls.
func batchFetcher(t *testing.T, sizes []int, calls *int) FetchPage[int] {
	t.Helper()
	return func(ctx context.Context, start, limit int) ([]int, error) {
		if *calls >= len(sizes) {
			t.Fatalf("unexpected call %d at offset %d", *calls+1, start)
		}
		size := sizes[*calls]
		*calls++

		batch := make([]int, size)
		for i := range batch {
			batch[i] = start + i
		}
		return batch, nil
	}
}

func TestCollect_StopsOnShortPage(t *testing.T) {
	calls := 0
	items, err := Collect(context.Background(), 100, batchFetcher(t, []int{100, 100, 37}, &calls))

	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(items) != 237 {
		t.Errorf("len(items) = %d, want 237", len(items))
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestCollect_StopsOnEmptyPage(t *testing.T) {
	calls := 0
	items, err := Collect(context.Background(), 100, batchFetcher(t, []int{100, 0}, &calls))

	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(items) != 100 {
		t.Errorf("len(items) = %d, want 100", len(items))
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestCollect_EmptyFirstPage(t *testing.T) {
	calls := 0
	items, err := Collect(context.Background(), 100, batchFetcher(t, []int{0}, &calls))

	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestCollect_OffsetsIncrease(t *testing.T) {
	var offsets []int
	fetch := func(ctx context.Context, start, limit int) ([]int, error) {
		offsets = append(offsets, start)
		if start >= 50 {
			return nil, nil
		}
		return make([]int, limit), nil
	}

	if _, err := Collect(context.Background(), 25, fetch); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	expected := []int{0, 25, 50}
	if len(offsets) != len(expected) {
		t.Fatalf("offsets = %v, want %v", offsets, expected)
	}
	for i, off := range expected {
		if offsets[i] != off {
			t.Errorf("offsets[%d] = %d, want %d", i, offsets[i], off)
		}
	}
}

func TestCollect_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	fetch := func(ctx context.Context, start, limit int) ([]int, error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return make([]int, limit), nil
	}

	_, err := Collect(context.Background(), 10, fetch)
	if !errors.Is(err, boom) {
		t.Errorf("Collect() error = %v, want wrapped boom", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestCollect_DefaultPageSize(t *testing.T) {
	var gotLimit int
	fetch := func(ctx context.Context, start, limit int) ([]int, error) {
		gotLimit = limit
		return nil, nil
	}

	if _, err := Collect(context.Background(), 0, fetch); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if gotLimit != DefaultPageSize {
		t.Errorf("limit = %d, want DefaultPageSize %d", gotLimit, DefaultPageSize)
	}
}
