package swr

import (
	"testing"
)

func TestCreateContextSingleThreadedDestroy(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	if ctx.pool == nil {
		t.Fatal("expected a worker pool to be created")
	}
}

func TestCreateContextDestroyIsIdempotent(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	ctx.Destroy()
	ctx.Destroy() // must not panic or block
}

func TestCreateContextCloseAliasesDestroy(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close returned %v, want nil", err)
	}
}

func TestResolveWorkerCountExplicitOverride(t *testing.T) {
	if got := resolveWorkerCount(4); got != 4 {
		t.Errorf("resolveWorkerCount(4) = %d, want 4", got)
	}
}

func TestResolveWorkerCountClampsToMax(t *testing.T) {
	if got := resolveWorkerCount(MaxNumThreads + 50); got != MaxNumThreads {
		t.Errorf("resolveWorkerCount overshoot = %d, want %d", got, MaxNumThreads)
	}
}

func TestClampWorkerCountClampsBelowMin(t *testing.T) {
	if got := clampWorkerCount(0); got != MinWorkThreads {
		t.Errorf("clampWorkerCount(0) = %d, want %d", got, MinWorkThreads)
	}
	if got := clampWorkerCount(-5); got != MinWorkThreads {
		t.Errorf("clampWorkerCount(-5) = %d, want %d", got, MinWorkThreads)
	}
}

func TestArenaExhaustedHandlerAbortsViaFatalf(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	dc := ctx.ring.Slot(0)
	defer func() {
		if recover() == nil {
			t.Fatal("expected an oversized arena allocation to panic via the installed Fatalf handler")
		}
	}()
	dc.Arena.AllocAligned(1<<31, 32)
}

func TestWaitForIdleReturnsWithNoDraws(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()
	ctx.WaitForIdle() // must return immediately, nothing enqueued
}
