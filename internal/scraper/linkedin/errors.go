package linkedin

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication covers bad credentials, an unreachable login page,
	// a browser that cannot start and a login that never lands.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNavigation covers pages or selectors that are not where they
	// should be, including a changed login form.
	ErrNavigation = errors.New("navigation failed")
)

// State is a step of one scrape run.
type State int

const (
	StateIdle State = iota
	StateAuthenticating
	StateNavigating
	StateExtracting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAuthenticating:
		return "authenticating"
	case StateNavigating:
		return "navigating"
	case StateExtracting:
		return "extracting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ScrapeError is returned by Scrape for every failure. Kind is
// ErrAuthentication, ErrNavigation, or nil when the run was cancelled.
type ScrapeError struct {
	Stage State
	Kind  error
	Err   error
}

func (e *ScrapeError) Error() string {
	if e.Kind == nil {
		return fmt.Sprintf("linkedin scrape failed while %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("linkedin scrape failed while %s: %v: %v", e.Stage, e.Kind, e.Err)
}

func (e *ScrapeError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// stepError marks a failure with its kind before the run knows its stage.
type stepError struct {
	kind error
	err  error
}

func (e *stepError) Error() string { return e.kind.Error() + ": " + e.err.Error() }
func (e *stepError) Unwrap() error { return e.err }

func authErr(format string, args ...interface{}) error {
	return &stepError{kind: ErrAuthentication, err: fmt.Errorf(format, args...)}
}

func navErr(format string, args ...interface{}) error {
	return &stepError{kind: ErrNavigation, err: fmt.Errorf(format, args...)}
}
