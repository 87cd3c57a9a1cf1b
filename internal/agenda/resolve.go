package agenda

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/medecon/internal/model"
)

// Resolve computes a record's next relevant occurrence instant relative to
// now, in now's location.
//
// By frequency:
//   - custom_date: the single instant formed from ExplicitDate + TimeOfDay.
//   - daily: today at TimeOfDay; when that instant is strictly before now
//     the occurrence advances to the same time tomorrow.
//   - every6hours, every8hours, weekly: a one-shot occurrence at today's
//     TimeOfDay. True recurrence for these is a known gap; they behave like
//     single occurrences.
//
// Appointments always resolve to Date + TimeOfDay.

// ResolveMedicine returns the medicine's next occurrence instant.
// A custom_date medicine without an explicit date is a data error.
func ResolveMedicine(now time.Time, med model.Medicine) (time.Time, error) {
	hour, minute, err := model.ParseTimeOfDay(med.TimeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("agenda: medicine %s: %w", med.ID, err)
	}

	switch med.Frequency {
	case model.FrequencyCustomDate:
		if med.ExplicitDate == "" {
			return time.Time{}, fmt.Errorf("agenda: medicine %s: %w", med.ID, model.ErrMissingExplicitDate)
		}
		day, month, year, err := model.ParseDate(med.ExplicitDate)
		if err != nil {
			return time.Time{}, fmt.Errorf("agenda: medicine %s: %w", med.ID, err)
		}
		return time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location()), nil
	case model.FrequencyDaily:
		occurrence := atClock(now, hour, minute)
		if occurrence.Before(now) {
			occurrence = occurrence.AddDate(0, 0, 1)
		}
		return occurrence, nil
	case model.FrequencyEvery6Hours, model.FrequencyEvery8Hours, model.FrequencyWeekly:
		return atClock(now, hour, minute), nil
	default:
		return time.Time{}, fmt.Errorf("agenda: medicine %s: %w: %q", med.ID, model.ErrInvalidFrequency, med.Frequency)
	}
}

// ResolveAppointment returns the appointment's single occurrence instant.
func ResolveAppointment(now time.Time, appt model.Appointment) (time.Time, error) {
	hour, minute, err := model.ParseTimeOfDay(appt.TimeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("agenda: appointment %s: %w", appt.ID, err)
	}
	day, month, year, err := model.ParseDate(appt.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("agenda: appointment %s: %w", appt.ID, err)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location()), nil
}

func atClock(day time.Time, hour, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
