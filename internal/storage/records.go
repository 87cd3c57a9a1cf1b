package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sandeepkv93/medecon/internal/model"
)

// The two list blobs the app persists. The keys and field names match the
// layout the records have always been stored under, so an existing data file
// keeps working.
const (
	MedicinesKey    = "@my_medicines"
	AppointmentsKey = "@my_appointments"
)

type medicineRecord struct {
	ID                  string `json:"id"`
	MedicineName        string `json:"medicineName"`
	Dosage              string `json:"dosage"`
	Frequency           string `json:"frequency"`
	Time                string `json:"time"`
	CustomFrequencyDate string `json:"customFrequencyDate,omitempty"`
	Observations        string `json:"observations"`
	NotificationID      string `json:"notificationId,omitempty"`
}

type appointmentRecord struct {
	ID              string `json:"id"`
	DoctorName      string `json:"doctorName"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Observations    string `json:"observations"`
	NotificationID  string `json:"notificationId,omitempty"`
}

// LoadMedicines returns the persisted medicine list. An absent key or a
// value that fails to parse yields the empty list, never an error: missing
// or corrupt data reads as "no records yet".
func (s *Store) LoadMedicines(ctx context.Context) ([]model.Medicine, error) {
	raw, ok, err := s.get(ctx, MedicinesKey)
	if err != nil {
		return nil, fmt.Errorf("load medicines: %w", err)
	}
	if !ok {
		return []model.Medicine{}, nil
	}
	var records []medicineRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("storage: unparsable medicine list, treating as empty: %v", err)
		return []model.Medicine{}, nil
	}
	out := make([]model.Medicine, 0, len(records))
	for _, r := range records {
		out = append(out, model.Medicine{
			ID:                 r.ID,
			Name:               r.MedicineName,
			Quantity:           r.Dosage,
			Frequency:          model.Frequency(r.Frequency),
			TimeOfDay:          r.Time,
			ExplicitDate:       r.CustomFrequencyDate,
			Notes:              r.Observations,
			NotificationHandle: r.NotificationID,
		})
	}
	return out, nil
}

// SaveMedicines overwrites the persisted medicine list with the given one.
func (s *Store) SaveMedicines(ctx context.Context, meds []model.Medicine) error {
	records := make([]medicineRecord, 0, len(meds))
	for _, m := range meds {
		records = append(records, medicineRecord{
			ID:                  m.ID,
			MedicineName:        m.Name,
			Dosage:              m.Quantity,
			Frequency:           string(m.Frequency),
			Time:                m.TimeOfDay,
			CustomFrequencyDate: m.ExplicitDate,
			Observations:        m.Notes,
			NotificationID:      m.NotificationHandle,
		})
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode medicines: %w", err)
	}
	if err := s.put(ctx, MedicinesKey, string(payload)); err != nil {
		return fmt.Errorf("save medicines: %w", err)
	}
	return nil
}

// LoadAppointments returns the persisted appointment list, with the same
// empty-on-missing and empty-on-corrupt behavior as LoadMedicines.
func (s *Store) LoadAppointments(ctx context.Context) ([]model.Appointment, error) {
	raw, ok, err := s.get(ctx, AppointmentsKey)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	if !ok {
		return []model.Appointment{}, nil
	}
	var records []appointmentRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("storage: unparsable appointment list, treating as empty: %v", err)
		return []model.Appointment{}, nil
	}
	out := make([]model.Appointment, 0, len(records))
	for _, r := range records {
		out = append(out, model.Appointment{
			ID:                 r.ID,
			DoctorName:         r.DoctorName,
			Date:               r.AppointmentDate,
			TimeOfDay:          r.AppointmentTime,
			Notes:              r.Observations,
			NotificationHandle: r.NotificationID,
		})
	}
	return out, nil
}

// SaveAppointments overwrites the persisted appointment list.
func (s *Store) SaveAppointments(ctx context.Context, appts []model.Appointment) error {
	records := make([]appointmentRecord, 0, len(appts))
	for _, a := range appts {
		records = append(records, appointmentRecord{
			ID:              a.ID,
			DoctorName:      a.DoctorName,
			AppointmentDate: a.Date,
			AppointmentTime: a.TimeOfDay,
			Observations:    a.Notes,
			NotificationID:  a.NotificationHandle,
		})
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode appointments: %w", err)
	}
	if err := s.put(ctx, AppointmentsKey, string(payload)); err != nil {
		return fmt.Errorf("save appointments: %w", err)
	}
	return nil
}
