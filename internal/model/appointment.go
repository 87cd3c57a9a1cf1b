package model

import (
	"errors"
	"strings"
)

// Appointment is a medical appointment record. Date is "DD/MM/YYYY" and
// TimeOfDay is "HH:MM"; both are required. There is no recurrence concept
// for appointments.
type Appointment struct {
	ID                 string
	DoctorName         string
	Date               string
	TimeOfDay          string
	Notes              string
	NotificationHandle string
}

func (a Appointment) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("model: appointment id is required")
	}
	if strings.TrimSpace(a.DoctorName) == "" {
		return errors.New("model: appointment doctor name is required")
	}
	if _, _, _, err := ParseDate(a.Date); err != nil {
		return err
	}
	if _, _, err := ParseTimeOfDay(a.TimeOfDay); err != nil {
		return err
	}
	return nil
}
