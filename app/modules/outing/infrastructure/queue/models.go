package outingqueue

import (
	"github.com/google/uuid"

	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
)

// OutingStartJob represents a scheduled outing start. At the scheduled time
// the worker flips the outing's groups to ACTIVE and publishes the started
// event.
type OutingStartJob struct {
	OutingID uuid.UUID                     `json:"outing_id"`
	Payload  outingevents.StartedPayloadV1 `json:"payload"`
}

// Kind returns the job type identifier for River.
func (OutingStartJob) Kind() string { return "outing_start" }

// JobInfo represents information about a scheduled job (for debugging and
// monitoring).
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	OutingID    string `json:"outing_id"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
