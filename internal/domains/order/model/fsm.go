package model

// =====================================================
// STATUS TRANSITION TABLE
// =====================================================

// Transition actions. Restaurants drive accept/reject/advance/closeout;
// cancel is the student-side exit while the restaurant has not started
// preparing.
const (
	ActionAccept   = "accept"
	ActionReject   = "reject"
	ActionCancel   = "cancel"
	ActionAdvance  = "advance"
	ActionCloseout = "closeout"
)

// transitions maps action -> current status -> next status. Anything
// absent from the table is an invalid transition; illegal moves are
// rejected here uniformly instead of by scattered conditionals.
var transitions = map[string]map[string]string{
	ActionAccept: {
		StatusPending: StatusConfirmed,
	},
	ActionReject: {
		StatusPending: StatusCancelled,
	},
	ActionCancel: {
		StatusPending:   StatusCancelled,
		StatusConfirmed: StatusCancelled,
	},
	ActionAdvance: {
		StatusConfirmed: StatusPreparing,
		StatusPreparing: StatusReady,
	},
	ActionCloseout: {
		StatusConfirmed: StatusCompleted,
		StatusReady:     StatusCompleted,
	},
}

// NextStatus resolves an action against the current status. Terminal
// states have no outgoing edges, so they fail here like any other
// illegal move.
func NextStatus(current, action string) (string, error) {
	byStatus, ok := transitions[action]
	if !ok {
		return "", NewOrderError(ErrCodeInvalidTransition, "unknown action '"+action+"'", ErrInvalidTransition)
	}

	next, ok := byStatus[current]
	if !ok {
		return "", NewOrderError(ErrCodeInvalidTransition, "cannot "+action+" an order in status '"+current+"'", ErrInvalidTransition)
	}

	return next, nil
}

// RefundsStudent reports whether a transition into next owes the
// student their money back. A full refund of FinalAmount accompanies
// every move into CANCELLED; the charge itself happened at checkout.
func RefundsStudent(next string) bool {
	return next == StatusCancelled
}
