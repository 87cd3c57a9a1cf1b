package agenda

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/medecon/internal/model"
)

func TestResolveDailyStillAheadToday(t *testing.T) {
	now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	med := model.Medicine{ID: "med-b", Name: "B", Frequency: model.FrequencyDaily, TimeOfDay: "10:00"}

	at, err := ResolveMedicine(now, med)
	if err != nil {
		t.Fatalf("resolve daily: %v", err)
	}
	want := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Fatalf("got %s want %s", at, want)
	}
}

func TestResolveDailyAdvancesWhenPassedToday(t *testing.T) {
	now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	med := model.Medicine{ID: "med-a", Name: "A", Frequency: model.FrequencyDaily, TimeOfDay: "08:00"}

	at, err := ResolveMedicine(now, med)
	if err != nil {
		t.Fatalf("resolve daily: %v", err)
	}
	want := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Fatalf("got %s want %s", at, want)
	}
}

func TestResolveDailyExactlyNowDoesNotAdvance(t *testing.T) {
	now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	med := model.Medicine{ID: "med-x", Name: "X", Frequency: model.FrequencyDaily, TimeOfDay: "09:00"}

	at, err := ResolveMedicine(now, med)
	if err != nil {
		t.Fatalf("resolve daily: %v", err)
	}
	if !at.Equal(now) {
		t.Fatalf("got %s want %s", at, now)
	}
}

func TestResolveCustomDate(t *testing.T) {
	now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	med := model.Medicine{
		ID:           "med-c",
		Name:         "C",
		Frequency:    model.FrequencyCustomDate,
		TimeOfDay:    "14:30",
		ExplicitDate: "20/06/2025",
	}

	at, err := ResolveMedicine(now, med)
	if err != nil {
		t.Fatalf("resolve custom date: %v", err)
	}
	want := time.Date(2025, 6, 20, 14, 30, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Fatalf("got %s want %s", at, want)
	}
}

func TestResolveCustomDateMissingExplicitDate(t *testing.T) {
	now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	med := model.Medicine{ID: "med-bad", Name: "Bad", Frequency: model.FrequencyCustomDate, TimeOfDay: "10:00"}

	_, err := ResolveMedicine(now, med)
	if !errors.Is(err, model.ErrMissingExplicitDate) {
		t.Fatalf("expected ErrMissingExplicitDate, got: %v", err)
	}
}

func TestResolveIntervalFrequenciesAreOneShot(t *testing.T) {
	// every6hours/every8hours/weekly resolve to today's TimeOfDay with no
	// advancement, even when that instant already passed.
	now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	want := time.Date(2025, 6, 14, 6, 0, 0, 0, time.UTC)

	for _, freq := range []model.Frequency{model.FrequencyEvery6Hours, model.FrequencyEvery8Hours, model.FrequencyWeekly} {
		med := model.Medicine{ID: "med-i", Name: "I", Frequency: freq, TimeOfDay: "06:00"}
		at, err := ResolveMedicine(now, med)
		if err != nil {
			t.Fatalf("%s: resolve: %v", freq, err)
		}
		if !at.Equal(want) {
			t.Fatalf("%s: got %s want %s", freq, at, want)
		}
	}
}

func TestResolveAppointment(t *testing.T) {
	now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)
	appt := model.Appointment{ID: "appt-1", DoctorName: "Dra. Souza", Date: "10/06/2025", TimeOfDay: "09:00"}

	at, err := ResolveAppointment(now, appt)
	if err != nil {
		t.Fatalf("resolve appointment: %v", err)
	}
	want := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Fatalf("got %s want %s", at, want)
	}
}

func TestResolveInvalidInputs(t *testing.T) {
	now := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)

	if _, err := ResolveMedicine(now, model.Medicine{ID: "m", Frequency: model.FrequencyDaily, TimeOfDay: "25:00"}); !errors.Is(err, model.ErrInvalidTimeOfDay) {
		t.Fatalf("expected ErrInvalidTimeOfDay, got: %v", err)
	}
	if _, err := ResolveMedicine(now, model.Medicine{ID: "m", Frequency: model.Frequency("never"), TimeOfDay: "08:00"}); !errors.Is(err, model.ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got: %v", err)
	}
	if _, err := ResolveAppointment(now, model.Appointment{ID: "a", Date: "99/99/2025", TimeOfDay: "08:00"}); !errors.Is(err, model.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got: %v", err)
	}
}
