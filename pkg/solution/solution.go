package solution

import (
	"time"
)

type Status int

const (
	// Means the input has been listed but not run yet.
	Pending Status = iota + 1
	// Means the solver is currently running on the input.
	Running
	// Means the solver exited with status code 0.
	Success
	// Means the solver exited non-zero, timed out or could not be launched.
	Failure
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Success || s == Failure
}

type FailureReason int

const (
	ReasonNone FailureReason = iota
	ReasonNonZeroExit
	ReasonTimeout
	ReasonLaunchFailed
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNonZeroExit:
		return "non-zero exit"
	case ReasonTimeout:
		return "timeout"
	case ReasonLaunchFailed:
		return "launch failed"
	default:
		return "unknown"
	}
}

func (r FailureReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Status maps the reason onto the two terminal buckets.
func (r FailureReason) Status() Status {
	if r == ReasonNone {
		return Success
	}
	return Failure
}

type Result struct {
	FileName string        `json:"file_name" yaml:"file_name"`
	Status   Status        `json:"status" yaml:"status"`
	Reason   FailureReason `json:"reason" yaml:"reason"`
	ExitCode int           `json:"exit_code" yaml:"exit_code"`
	Duration time.Duration `json:"duration_ns" yaml:"duration"`
	Message  string        `json:"message,omitempty" yaml:"message,omitempty"` // error message in case of failure
}

// Succeeded is true only for a run that exited with status code 0.
func (r Result) Succeeded() bool {
	return r.Status == Success
}
