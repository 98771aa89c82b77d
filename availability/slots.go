package availability

import (
	"context"
	"os"
	"sort"
	"strconv"
	"time"

	"rezerv/models"
)

// DefaultGranularity is the slot size used when a resource does not set
// its own. Overridable with SLOT_GRANULARITY_MIN.
func DefaultGranularity() time.Duration {
	if v := os.Getenv("SLOT_GRANULARITY_MIN"); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m > 0 {
			return time.Duration(m) * time.Minute
		}
	}
	return 30 * time.Minute
}

// GranularityFor resolves the slot size for a resource.
func GranularityFor(res *models.Resource) time.Duration {
	if res != nil && res.SlotMinutes > 0 {
		return time.Duration(res.SlotMinutes) * time.Minute
	}
	return DefaultGranularity()
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ExpandDay derives the bookable slots for one calendar day from the
// weekly templates and the blackout set. Results are sorted by start
// and deduplicated. The expansion is recomputed on every call; slots
// are never cached because blackouts can change between calls.
func ExpandDay(templates []models.AvailabilityTemplate, blackouts []models.BlackoutPeriod, day time.Time, granularity time.Duration) []models.Slot {
	if granularity <= 0 {
		granularity = 30 * time.Minute
	}

	weekday := day.Weekday()
	var slots []models.Slot
	seen := make(map[int64]bool)

	for _, tpl := range templates {
		if !tpl.AppliesTo(weekday) {
			continue
		}
		for _, rng := range tpl.Ranges {
			start, ok1 := timeOfDayOn(day, rng.Start)
			end, ok2 := timeOfDayOn(day, rng.End)
			if !ok1 || !ok2 {
				continue
			}
			// zero-length or inverted ranges are skipped silently
			if !start.Before(end) {
				continue
			}
			for s := start; !s.Add(granularity).After(end); s = s.Add(granularity) {
				e := s.Add(granularity)
				if intersectsBlackout(s, e, blackouts) {
					continue
				}
				if seen[s.Unix()] {
					continue
				}
				seen[s.Unix()] = true
				slots = append(slots, models.Slot{
					ResourceID: tpl.ResourceID,
					Start:      s,
					End:        e,
				})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots
}

func intersectsBlackout(start, end time.Time, blackouts []models.BlackoutPeriod) bool {
	for _, b := range blackouts {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// timeOfDayOn anchors an "HH:MM" clock value onto the given date, in
// the date's location.
func timeOfDayOn(day time.Time, clock string) (time.Time, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), true
}

// GenerateSlots computes the bookable slots for a resource on a date,
// reading templates and blackouts fresh from the store.
func GenerateSlots(ctx context.Context, res *models.Resource, date time.Time) ([]models.Slot, error) {
	templates, err := ListTemplates(ctx, res.ResourceID)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	blackouts, err := ListBlackoutWindow(ctx, res.ResourceID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return ExpandDay(templates, blackouts, dayStart, GranularityFor(res)), nil
}
