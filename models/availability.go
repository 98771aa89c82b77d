package models

import "time"

// DayAll matches every weekday in an availability template.
const DayAll = "All"

// TimeRange is a time-of-day window, "HH:MM" 24-hour clock.
type TimeRange struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// AvailabilityTemplate is a recurring weekly rule for a resource: on
// the given day (or DayAll) the resource can be booked inside Ranges.
// A resource may carry several templates, one per day or one blanket
// rule.
type AvailabilityTemplate struct {
	ID         string      `json:"id" bson:"id"`
	ResourceID string      `json:"resourceId" bson:"resourceId"`
	Day        string      `json:"day" bson:"day"`
	Ranges     []TimeRange `json:"ranges" bson:"ranges"`
	CreatedAt  time.Time   `json:"createdAt" bson:"createdAt"`
}

// AppliesTo reports whether the template covers the given weekday.
func (t AvailabilityTemplate) AppliesTo(day time.Weekday) bool {
	return t.Day == DayAll || t.Day == day.String()
}

// BlackoutPeriod is an explicit interval during which a resource is
// unbookable regardless of its templates.
type BlackoutPeriod struct {
	ID         string    `json:"id" bson:"id"`
	ResourceID string    `json:"resourceId" bson:"resourceId"`
	Start      time.Time `json:"start" bson:"start"`
	End        time.Time `json:"end" bson:"end"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
