package types

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound  = errors.New("project does not exist")
	ErrNoWorkAvailable  = errors.New("project has no volunteer needs defined")
	ErrProfileNotFound  = errors.New("volunteer sign up profile could not be found")
	ErrContactNotFound  = errors.New("contact does not exist")
	ErrOptionNotFound   = errors.New("option value does not exist")
	ErrOutOfSequence    = errors.New("sign up stage called out of sequence")
	ErrInvalidProjectID = errors.New("could not find valid value for vid")
)

type SubmissionStage string

const (
	StageContact  SubmissionStage = "contact"
	StageStatus   SubmissionStage = "status"
	StageActivity SubmissionStage = "activity"
)

// SubmissionError reports a failed write while recording a sign-up.
type SubmissionError struct {
	Stage SubmissionStage
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("sign up submission failed at %s: %v", e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
