package model

// Outcome is the per-workspace result of one broadcast. It is a closed sum type:
// the only implementations are Success and Failure.
type Outcome interface {
	// Workspace returns the display name of the workspace the outcome belongs to.
	Workspace() string
	isOutcome()
}

// Success records that the status was written to a workspace.
type Success struct {
	WorkspaceName string
}

// Failure records that the remote call for a workspace failed.
type Failure struct {
	WorkspaceName string
	Message       string
}

func (s Success) Workspace() string { return s.WorkspaceName }
func (f Failure) Workspace() string { return f.WorkspaceName }

func (Success) isOutcome() {}
func (Failure) isOutcome() {}

// AllSucceeded reports whether every outcome is a Success. It returns true for an
// empty slice.
func AllSucceeded(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if _, ok := o.(Success); !ok {
			return false
		}
	}
	return true
}

// CountFailures returns the number of Failure outcomes.
func CountFailures(outcomes []Outcome) int {
	var n int
	for _, o := range outcomes {
		if _, ok := o.(Failure); ok {
			n++
		}
	}
	return n
}
