package testutil

import (
	"sync"
	"testing"

	"github.com/yungbote/coursehub-backend/internal/data/aggregates"
)

func TestHooksRecorder_CountsByOpAndStatus(t *testing.T) {
	h := &HooksRecorder{}
	if _, ok := h.Last(); ok {
		t.Fatalf("empty recorder reported a last outcome")
	}
	h.ObserveWrite(aggregates.WriteOutcome{Op: "enroll", Status: "success"})
	h.ObserveWrite(aggregates.WriteOutcome{Op: "enroll", Status: "conflict"})
	h.ObserveWrite(aggregates.WriteOutcome{Op: "progress", Status: "success"})

	if got := h.Count("enroll", "success"); got != 1 {
		t.Fatalf("enroll success: want=1 got=%d", got)
	}
	if got := h.Count("", "success"); got != 2 {
		t.Fatalf("any success: want=2 got=%d", got)
	}
	last, ok := h.Last()
	if !ok || last.Op != "progress" {
		t.Fatalf("last: got=%+v ok=%v", last, ok)
	}
	if !h.Outcomes()[1].Conflict() {
		t.Fatalf("second outcome should be a conflict")
	}
}

func TestHooksRecorder_ConcurrentWrites(t *testing.T) {
	h := &HooksRecorder{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.ObserveWrite(aggregates.WriteOutcome{Op: "enroll", Status: "success"})
		}()
	}
	wg.Wait()
	if got := len(h.Outcomes()); got != 20 {
		t.Fatalf("outcomes: want=20 got=%d", got)
	}
}
