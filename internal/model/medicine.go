package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidFrequency    = errors.New("model: invalid medicine frequency")
	ErrMissingExplicitDate = errors.New("model: explicit date required for custom_date frequency")
)

// Frequency controls how a medicine's reminder occurrences are resolved.
type Frequency string

const (
	FrequencyDaily       Frequency = "daily"
	FrequencyEvery6Hours Frequency = "every6hours"
	FrequencyEvery8Hours Frequency = "every8hours"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyCustomDate  Frequency = "custom_date"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyEvery6Hours, FrequencyEvery8Hours, FrequencyWeekly, FrequencyCustomDate:
		return true
	default:
		return false
	}
}

// Medicine is a medication reminder record. TimeOfDay is wall-clock "HH:MM";
// ExplicitDate is "DD/MM/YYYY" and only meaningful when Frequency is
// custom_date. NotificationHandle is the opaque token returned by the
// notification scheduler, kept only so the reminder can be cancelled later.
type Medicine struct {
	ID                 string
	Name               string
	Quantity           string
	Frequency          Frequency
	TimeOfDay          string
	ExplicitDate       string
	Notes              string
	NotificationHandle string
}

func (m Medicine) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model: medicine id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("model: medicine name is required")
	}
	if !m.Frequency.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, m.Frequency)
	}
	if _, _, err := ParseTimeOfDay(m.TimeOfDay); err != nil {
		return err
	}
	if m.Frequency == FrequencyCustomDate {
		if strings.TrimSpace(m.ExplicitDate) == "" {
			return ErrMissingExplicitDate
		}
		if _, _, _, err := ParseDate(m.ExplicitDate); err != nil {
			return err
		}
	}
	return nil
}

// NewID returns a fresh opaque record identifier.
func NewID() string {
	return uuid.NewString()
}
