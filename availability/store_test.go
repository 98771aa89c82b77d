package availability

import (
	"testing"
	"time"

	"rezerv/apperr"
	"rezerv/models"
)

func TestValidateTemplate(t *testing.T) {
	cases := []struct {
		name     string
		tpl      models.AvailabilityTemplate
		wantKind apperr.Kind
	}{
		{"valid single range", models.AvailabilityTemplate{
			Day: "Monday", Ranges: []models.TimeRange{{Start: "09:00", End: "11:00"}},
		}, ""},
		{"valid wildcard day", models.AvailabilityTemplate{
			Day: models.DayAll, Ranges: []models.TimeRange{{Start: "09:00", End: "11:00"}},
		}, ""},
		{"zero-length range is legal", models.AvailabilityTemplate{
			Day: "Monday", Ranges: []models.TimeRange{{Start: "09:00", End: "09:00"}},
		}, ""},
		{"unknown day", models.AvailabilityTemplate{
			Day: "Mondayday", Ranges: []models.TimeRange{{Start: "09:00", End: "11:00"}},
		}, apperr.KindBadInput},
		{"no ranges", models.AvailabilityTemplate{
			Day: "Monday",
		}, apperr.KindBadInput},
		{"bad clock format", models.AvailabilityTemplate{
			Day: "Monday", Ranges: []models.TimeRange{{Start: "9am", End: "11:00"}},
		}, apperr.KindBadInput},
		{"inverted range", models.AvailabilityTemplate{
			Day: "Monday", Ranges: []models.TimeRange{{Start: "11:00", End: "09:00"}},
		}, apperr.KindInvalidRange},
		{"one bad range among good", models.AvailabilityTemplate{
			Day: "Monday", Ranges: []models.TimeRange{
				{Start: "09:00", End: "11:00"},
				{Start: "15:00", End: "13:00"},
			},
		}, apperr.KindInvalidRange},
	}

	for _, tc := range cases {
		tpl := tc.tpl
		if got := apperr.KindOf(ValidateTemplate(&tpl)); got != tc.wantKind {
			t.Fatalf("%s: got kind %q, want %q", tc.name, got, tc.wantKind)
		}
	}
}

func TestValidateBlackoutRange(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	if err := ValidateBlackoutRange(at(monday, 9, 0), at(monday, 10, 0)); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if got := apperr.KindOf(ValidateBlackoutRange(at(monday, 10, 0), at(monday, 9, 0))); got != apperr.KindInvalidRange {
		t.Fatalf("inverted range: got kind %q", got)
	}
	if got := apperr.KindOf(ValidateBlackoutRange(at(monday, 9, 0), at(monday, 9, 0))); got != apperr.KindInvalidRange {
		t.Fatalf("zero-length range: got kind %q", got)
	}
}

func TestOwnedDelete(t *testing.T) {
	err := ownedDelete(0, "blackout", "b1", "res1")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("zero deletions: got %v", err)
	}

	if err := ownedDelete(1, "blackout", "b1", "res1"); err != nil {
		t.Fatalf("successful deletion: got %v", err)
	}
	if err := ownedDelete(1, "template", "tpl1", "res1"); err != nil {
		t.Fatalf("successful deletion: got %v", err)
	}
}
