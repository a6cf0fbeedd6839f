package election

// Outcome is the result of a single vote submission attempt.
type Outcome int

const (
	// OutcomeAccepted means the server recorded the vote.
	OutcomeAccepted Outcome = iota + 1
	// OutcomeDuplicate means the session already voted (HTTP 409). Terminal.
	OutcomeDuplicate
	// OutcomeRejected covers any other non-success response. Retryable by the user.
	OutcomeRejected
	// OutcomeNetworkFailure means the request did not complete. Retryable by the user.
	OutcomeNetworkFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNetworkFailure:
		return "network_failure"
	default:
		return "unknown"
	}
}

// Retryable reports whether the user may submit again.
func (o Outcome) Retryable() bool {
	return o == OutcomeRejected || o == OutcomeNetworkFailure
}

// Message is the user-facing text for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeAccepted:
		return "Your vote has been recorded!"
	case OutcomeDuplicate:
		return "You have already voted."
	case OutcomeRejected:
		return "Vote failed; please try again."
	case OutcomeNetworkFailure:
		return "Network error while submitting vote."
	default:
		return "Unknown vote outcome."
	}
}
