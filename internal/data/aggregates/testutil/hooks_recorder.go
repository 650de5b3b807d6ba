package testutil

import (
	"sync"

	"github.com/yungbote/coursehub-backend/internal/data/aggregates"
)

// HooksRecorder keeps every write outcome an aggregate reports.
type HooksRecorder struct {
	mu       sync.Mutex
	outcomes []aggregates.WriteOutcome
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveWrite(o aggregates.WriteOutcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outcomes = append(h.outcomes, o)
}

// Outcomes returns a copy of the recorded outcomes in report order.
func (h *HooksRecorder) Outcomes() []aggregates.WriteOutcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]aggregates.WriteOutcome(nil), h.outcomes...)
}

// Count returns how many outcomes of op ended with status. An empty op matches any.
func (h *HooksRecorder) Count(op, status string) int {
	n := 0
	for _, o := range h.Outcomes() {
		if (op == "" || o.Op == op) && o.Status == status {
			n++
		}
	}
	return n
}

// Last returns the most recent outcome, or false when nothing was reported.
func (h *HooksRecorder) Last() (aggregates.WriteOutcome, bool) {
	all := h.Outcomes()
	if len(all) == 0 {
		return aggregates.WriteOutcome{}, false
	}
	return all[len(all)-1], true
}
