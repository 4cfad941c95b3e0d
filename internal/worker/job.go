package worker

import (
	"time"
)

// Job asks the worker for one cleanup pass.
type Job struct {
	Reason string // "schedule", "watch", "poll", "startup"
	At     time.Time
}
