package checkout

type Status string

const (
	StatusLoading    Status = "loading"
	StatusReady      Status = "ready"
	StatusSubmitting Status = "submitting"
	StatusConfirming Status = "confirming"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusAbandoned  Status = "abandoned"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
// Failed is not terminal: it transitions back to Ready on user action.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusAbandoned:
		return true
	default:
		return false
	}
}
