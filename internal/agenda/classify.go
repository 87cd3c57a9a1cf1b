package agenda

import (
	"sort"
	"time"

	"github.com/sandeepkv93/medecon/internal/model"
)

type Kind string

const (
	KindMedicine    Kind = "medicine"
	KindAppointment Kind = "appointment"
)

// Entry is a record paired with its resolved occurrence instant. Exactly one
// of Medicine/Appointment is meaningful, selected by Kind.
type Entry struct {
	Kind        Kind
	Medicine    model.Medicine
	Appointment model.Appointment
	At          time.Time
}

func (e Entry) ID() string {
	if e.Kind == KindAppointment {
		return e.Appointment.ID
	}
	return e.Medicine.ID
}

// SkippedRecord reports a record excluded from classification because its
// occurrence could not be resolved.
type SkippedRecord struct {
	ID  string
	Err error
}

// Classification partitions every resolvable record into exactly one bucket:
// Today holds occurrences later today (strictly after now, same calendar
// day), Upcoming holds occurrences on a strictly later calendar day, and
// History holds everything at or before now. Today and Upcoming are sorted
// soonest first, History most recent first.
type Classification struct {
	Today    []Entry
	Upcoming []Entry
	History  []Entry
	Skipped  []SkippedRecord
}

// UpcomingReminders is the dashboard's view of the Upcoming bucket. The
// source app only ever lists custom_date medicines and appointments under
// upcoming: a daily medicine that already passed today simply disappears
// until it reappears in tomorrow's today computation. Recurring medicines
// are therefore filtered out here while the engine's buckets stay complete.
func (c Classification) UpcomingReminders() []Entry {
	out := make([]Entry, 0, len(c.Upcoming))
	for _, e := range c.Upcoming {
		if e.Kind == KindMedicine && e.Medicine.Frequency != model.FrequencyCustomDate {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Classify resolves and buckets every medicine and appointment relative to
// now. Records whose occurrence cannot be resolved are skipped and reported;
// a malformed record never aborts the pass for the rest of the list.
func Classify(now time.Time, meds []model.Medicine, appts []model.Appointment) Classification {
	var c Classification

	for _, med := range meds {
		at, err := ResolveMedicine(now, med)
		if err != nil {
			c.Skipped = append(c.Skipped, SkippedRecord{ID: med.ID, Err: err})
			continue
		}
		c.add(Entry{Kind: KindMedicine, Medicine: med, At: at}, now)
	}
	for _, appt := range appts {
		at, err := ResolveAppointment(now, appt)
		if err != nil {
			c.Skipped = append(c.Skipped, SkippedRecord{ID: appt.ID, Err: err})
			continue
		}
		c.add(Entry{Kind: KindAppointment, Appointment: appt, At: at}, now)
	}

	SortSoonestFirst(c.Today)
	SortSoonestFirst(c.Upcoming)
	SortMostRecentFirst(c.History)
	return c
}

func (c *Classification) add(e Entry, now time.Time) {
	switch {
	case sameDay(e.At, now) && e.At.After(now):
		c.Today = append(c.Today, e)
	case dateOnly(e.At).After(dateOnly(now)):
		c.Upcoming = append(c.Upcoming, e)
	default:
		// At <= now: earlier today or any prior day. An occurrence landing
		// exactly on now belongs here, never in Today.
		c.History = append(c.History, e)
	}
}

// History returns the past entries only: a record belongs to history iff its
// resolved occurrence is at or before now. This is the binary split the
// history view uses, computed with the same resolution rules as Classify.
func History(now time.Time, meds []model.Medicine, appts []model.Appointment) ([]Entry, []SkippedRecord) {
	c := Classify(now, meds, appts)
	return c.History, c.Skipped
}

// SortSoonestFirst orders entries ascending by occurrence instant. Entries
// sharing an instant keep their insertion order.
func SortSoonestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.Before(entries[j].At)
	})
}

// SortMostRecentFirst orders entries descending by occurrence instant.
func SortMostRecentFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[j].At.Before(entries[i].At)
	})
}
