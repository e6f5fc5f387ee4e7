package domain

import "time"

// ExitCodeUnknown is recorded when a process was terminated by a signal
// and the operating system reports no exit status.
const ExitCodeUnknown = -1

// RawOutcome is what a finished task process left behind.
// It is produced once by the process adapter and never mutated.
type RawOutcome struct {
	ExitCode        int
	Stdout          []byte
	Stderr          []byte
	TimedOut        bool
	Cancelled       bool
	StdoutTruncated bool
	StderrTruncated bool
	Duration        time.Duration
}

// Terminated reports whether the process was killed by the runner rather than exiting on its own.
func (o *RawOutcome) Terminated() bool {
	return o.TimedOut || o.Cancelled
}
