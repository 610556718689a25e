package llmvalidate

import "sync"

// CallBudget caps the number of LLM calls issued for one (run_id,
// entity_type) stage (§4.3 invariant: llm_call_count <= max_calls...).
type CallBudget struct {
	max int

	mu    sync.Mutex
	spent int
}

// NewCallBudget builds a budget allowing up to max calls.
func NewCallBudget(max int) *CallBudget {
	return &CallBudget{max: max}
}

// Reserve attempts to consume one unit of budget. Returns false when the
// budget is already exhausted.
func (b *CallBudget) Reserve() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.spent >= b.max {
		return false
	}
	b.spent++
	return true
}

// Spent returns the number of calls consumed so far.
func (b *CallBudget) Spent() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spent
}
