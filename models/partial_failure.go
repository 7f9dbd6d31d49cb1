package models

import "fmt"

const (
	StepMarkPaid    = "mark_paid"
	StepAttachProof = "attach_proof"
)

// PartialFailureError reports a multi-step operation that stopped after some steps
// had already been applied. Completed steps are not rolled back.
type PartialFailureError struct {
	Completed []string
	Failed    string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%v failed after %v succeeded: %v", e.Failed, e.Completed, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
