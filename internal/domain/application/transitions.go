package application

// TransitionTable maps a status to the statuses it may move to. It is built
// once and never mutated; accessors hand out copies.
type TransitionTable struct {
	next map[Status][]Status
}

// NewTransitionTable copies m.
func NewTransitionTable(m map[Status][]Status) TransitionTable {
	next := make(map[Status][]Status, len(m))
	for from, to := range m {
		next[from] = append([]Status(nil), to...)
	}
	return TransitionTable{next: next}
}

// DefaultTransitions is the credit application lifecycle.
func DefaultTransitions() TransitionTable {
	return NewTransitionTable(map[Status][]Status{
		StatusDraft:             {StatusApplying, StatusCancelled, StatusNotApplicable},
		StatusApplying:          {StatusSubmitted, StatusCancelled, StatusNotApplicable},
		StatusSubmitted:         {StatusUnderReview, StatusRejected, StatusCancelled},
		StatusUnderReview:       {StatusDocumentsRequired, StatusApproved, StatusRejected, StatusCancelled},
		StatusDocumentsRequired: {StatusUnderReview, StatusApproved, StatusRejected, StatusCancelled},
		StatusApproved:          {StatusDisbursed, StatusCancelled},
	})
}

// Allowed returns the statuses reachable from from, in table order.
func (t TransitionTable) Allowed(from Status) []Status {
	return append([]Status{}, t.next[from]...)
}

func (t TransitionTable) CanTransition(from, to Status) bool {
	for _, s := range t.next[from] {
		if s == to {
			return true
		}
	}
	return false
}
