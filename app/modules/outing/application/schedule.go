package outingservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"

	outingevents "github.com/fairway-social/outing-engine/app/modules/outing/events"
	"github.com/fairway-social/outing-engine/internal/results"
)

// timezoneAliases maps common US abbreviations onto IANA names. Full IANA
// names pass through untouched.
var timezoneAliases = map[string]string{
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"EST": "America/New_York",
	"EDT": "America/New_York",
}

// ParseStartTime turns natural-language input like "saturday at 9am" into a
// concrete UTC start time in the given timezone.
func ParseStartTime(whenText, timezone string, now time.Time) (time.Time, error) {
	tzName := timezone
	if alias, ok := timezoneAliases[strings.ToUpper(timezone)]; ok {
		tzName = alias
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q", timezone)
	}

	w := when.New(nil)
	w.Add(en.All...)

	r, err := w.Parse(strings.ToLower(whenText), now.In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse start time %q: %w", whenText, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize start time %q", whenText)
	}

	parsed := r.Time.In(loc).Truncate(time.Minute)
	if parsed.Before(now.In(loc).Truncate(time.Minute)) {
		return time.Time{}, fmt.Errorf("start time must be in the future (parsed %s)", parsed.Format(time.RFC3339))
	}

	return parsed.UTC(), nil
}

// ScheduleOutingStart parses the organizer's start-time text, stores it on the
// outing, and queues the start job. Rescheduling cancels any earlier job.
func (s *OutingService) ScheduleOutingStart(ctx context.Context, outingID uuid.UUID, whenText, timezone string) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "schedule_outing_start", outingID, func(ctx context.Context) (results.OperationResult, error) {
		startTime, err := ParseStartTime(whenText, timezone, time.Now())
		if err != nil {
			return results.OperationResult{Failure: &outingevents.StartScheduleFailedPayloadV1{
				OutingID: outingID,
				Reason:   err.Error(),
			}}, nil
		}

		if err := s.repo.SetScheduledStart(ctx, nil, outingID, startTime); err != nil {
			return results.OperationResult{}, err
		}

		if s.scheduler != nil {
			if err := s.scheduler.CancelOutingJobs(ctx, outingID); err != nil {
				return results.OperationResult{}, err
			}
			if err := s.scheduler.ScheduleOutingStart(ctx, outingID, startTime, outingevents.StartedPayloadV1{OutingID: outingID}); err != nil {
				return results.OperationResult{}, err
			}
		}

		return results.OperationResult{Success: &outingevents.StartScheduledPayloadV1{
			OutingID:  outingID,
			StartTime: startTime,
		}}, nil
	})
}
