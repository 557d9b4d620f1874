package reportdoc

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestNewConverterPool_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{4, 4},
	}

	for _, tt := range tests {
		if got := NewConverterPool(tt.n).Size(); got != tt.want {
			t.Errorf("NewConverterPool(%d).Size() = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{output: []byte("pdf")}
	pool := NewConverterPool(2, withPDFConverter(pdf))

	ctx := context.Background()
	first, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	second, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if first == second {
		t.Error("Acquire() returned the same converter twice while both are in use")
	}

	// Pool exhausted: a short deadline must release the caller.
	shortCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(shortCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() on exhausted pool error = %v, want DeadlineExceeded", err)
	}

	pool.Release(first)
	again, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if again != first {
		t.Error("Acquire() did not reuse the released converter")
	}
	pool.Release(again)
	pool.Release(second)

	if err := pool.Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}
	if pdf.closed != 2 {
		t.Errorf("backend closed %d times, want 2", pdf.closed)
	}
}

func TestConverterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{output: []byte("pdf")}
	pool := NewConverterPool(3, withPDFConverter(pdf))
	defer pool.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 12)
	for range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := pool.Acquire(context.Background())
			if err != nil {
				errs <- err
				return
			}
			defer pool.Release(conv)
			if _, err := conv.Convert(context.Background(), Input{Text: "# Title\nbody"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent conversion failed: %v", err)
	}
	if pdf.calls != 12 {
		t.Errorf("backend calls = %d, want 12", pdf.calls)
	}
	if pool.created > pool.Size() {
		t.Errorf("created %d converters, capacity %d", pool.created, pool.Size())
	}
}

func TestConverterPool_Closed(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, withPDFConverter(&mockPDFConverter{}))
	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}

	pool.Release(conv) // no-op after close
	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_CreateError(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithStyle("no-such-style"), withPDFConverter(&mockPDFConverter{}))
	defer pool.Close()

	for range 2 {
		if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("Acquire() error = %v, want ErrStyleNotFound", err)
		}
	}
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := ResolvePoolSize(5); got != 5 {
		t.Errorf("ResolvePoolSize(5) = %d, want 5", got)
	}

	want := runtime.GOMAXPROCS(0) / cpuDivisor
	want = max(MinPoolSize, min(want, MaxPoolSize))
	if got := ResolvePoolSize(0); got != want {
		t.Errorf("ResolvePoolSize(0) = %d, want %d", got, want)
	}
}
