package maps

// stableStepsToStop is the end-of-results heuristic: this many consecutive
// scroll steps without a content-height change means no more results will
// load.
const stableStepsToStop = 3

// scrollBudget scales the permitted scroll steps with the requested result
// count (roughly 5-10 results load per step), bounded by the configured
// ceiling so traversal cost stays proportional to demand.
func scrollBudget(maxResults, ceiling int) int {
	budget := maxResults/5 + 10
	if budget > ceiling {
		return ceiling
	}
	return budget
}

// scrollTracker owns the scroll termination decision. Feed it the container
// height after each step; it reports when scrolling should stop.
type scrollTracker struct {
	budget     int
	steps      int
	lastHeight int
	stable     int
}

func newScrollTracker(budget int) *scrollTracker {
	return &scrollTracker{budget: budget, lastHeight: -1}
}

// observe records a completed scroll step and the resulting content height.
// It returns true when scrolling should terminate: height unchanged for
// three consecutive steps, or the step budget is exhausted.
func (t *scrollTracker) observe(height int) bool {
	t.steps++
	if height == t.lastHeight {
		t.stable++
		if t.stable >= stableStepsToStop {
			return true
		}
	} else {
		t.stable = 0
	}
	t.lastHeight = height
	return t.steps >= t.budget
}
