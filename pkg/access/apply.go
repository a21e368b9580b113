package access

import (
	"errors"

	"github.com/VishalGhuge111/hirely/pkg/models"
)

// Apply button labels.
const (
	LabelApply          = "Apply For Job"
	LabelAlreadyApplied = "Already Applied"
	LabelClosed         = "Applications Closed"
)

var (
	ErrLoginRequired      = errors.New("sign in to apply")
	ErrAlreadyApplied     = errors.New("you have already applied for this job")
	ErrApplicationsClosed = errors.New("applications are closed for this job")
)

// ApplyState is how the apply action renders on a job page.
type ApplyState struct {
	Label   string
	Enabled bool
	// RequiresLogin is set when activating the action sends the visitor to
	// the login view instead of opening the form.
	RequiresLogin bool
}

// ApplyAction computes the apply action for job. A prior application wins
// over the job being closed for the label; either one disables the action.
func ApplyAction(job models.Job, user *models.User, hasApplied bool) ApplyState {
	switch {
	case hasApplied:
		return ApplyState{Label: LabelAlreadyApplied}
	case !job.IsActive:
		return ApplyState{Label: LabelClosed}
	default:
		return ApplyState{Label: LabelApply, Enabled: true, RequiresLogin: user == nil}
	}
}

// CanApply reports why an application to job may not be submitted, or nil.
func CanApply(job models.Job, user *models.User, hasApplied bool) error {
	switch {
	case user == nil:
		return ErrLoginRequired
	case hasApplied:
		return ErrAlreadyApplied
	case !job.IsActive:
		return ErrApplicationsClosed
	}
	return nil
}
