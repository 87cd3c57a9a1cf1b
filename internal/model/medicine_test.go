package model

import (
	"errors"
	"testing"
)

func TestMedicineValidateSuccess(t *testing.T) {
	med := Medicine{
		ID:        "med-1",
		Name:      "Paracetamol",
		Quantity:  "1 comprimido",
		Frequency: FrequencyDaily,
		TimeOfDay: "08:30",
	}
	if err := med.Validate(); err != nil {
		t.Fatalf("expected valid medicine, got error: %v", err)
	}
}

func TestMedicineValidateCustomDateRequiresExplicitDate(t *testing.T) {
	med := Medicine{
		ID:        "med-1",
		Name:      "Ibuprofeno",
		Frequency: FrequencyCustomDate,
		TimeOfDay: "10:00",
	}
	err := med.Validate()
	if !errors.Is(err, ErrMissingExplicitDate) {
		t.Fatalf("expected ErrMissingExplicitDate, got: %v", err)
	}

	med.ExplicitDate = "20/06/2025"
	if err := med.Validate(); err != nil {
		t.Fatalf("expected valid custom_date medicine, got error: %v", err)
	}
}

func TestMedicineValidateInvalidFrequency(t *testing.T) {
	med := Medicine{
		ID:        "med-1",
		Name:      "Dipirona",
		Frequency: Frequency("hourly"),
		TimeOfDay: "08:00",
	}
	err := med.Validate()
	if err == nil || !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got: %v", err)
	}
}

func TestMedicineValidateInvalidTimeOfDay(t *testing.T) {
	for _, bad := range []string{"", "8h30", "24:00", "12:60", "ab:cd"} {
		med := Medicine{
			ID:        "med-1",
			Name:      "Dipirona",
			Frequency: FrequencyDaily,
			TimeOfDay: bad,
		}
		if err := med.Validate(); !errors.Is(err, ErrInvalidTimeOfDay) {
			t.Fatalf("time %q: expected ErrInvalidTimeOfDay, got: %v", bad, err)
		}
	}
}

func TestAppointmentValidate(t *testing.T) {
	appt := Appointment{
		ID:         "appt-1",
		DoctorName: "Dra. Souza",
		Date:       "14/06/2025",
		TimeOfDay:  "14:00",
	}
	if err := appt.Validate(); err != nil {
		t.Fatalf("expected valid appointment, got error: %v", err)
	}

	appt.Date = "2025-06-14"
	if err := appt.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got: %v", err)
	}

	appt.Date = "14/06/2025"
	appt.DoctorName = "  "
	if err := appt.Validate(); err == nil {
		t.Fatal("expected error for blank doctor name, got nil")
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("expected non-empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
