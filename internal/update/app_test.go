package update

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medecon/internal/model"
	"github.com/sandeepkv93/medecon/internal/scheduler"
)

type fakeStore struct {
	meds      []model.Medicine
	appts     []model.Appointment
	failSave  bool
	saveCalls int
}

func (f *fakeStore) LoadMedicines(context.Context) ([]model.Medicine, error) {
	return append([]model.Medicine{}, f.meds...), nil
}

func (f *fakeStore) SaveMedicines(_ context.Context, meds []model.Medicine) error {
	f.saveCalls++
	if f.failSave {
		return errors.New("disk full")
	}
	f.meds = append([]model.Medicine{}, meds...)
	return nil
}

func (f *fakeStore) LoadAppointments(context.Context) ([]model.Appointment, error) {
	return append([]model.Appointment{}, f.appts...), nil
}

func (f *fakeStore) SaveAppointments(_ context.Context, appts []model.Appointment) error {
	f.saveCalls++
	if f.failSave {
		return errors.New("disk full")
	}
	f.appts = append([]model.Appointment{}, appts...)
	return nil
}

var fixedNow = time.Date(2025, 6, 14, 9, 0, 0, 0, time.Local)

func newTestModel(store *fakeStore) Model {
	m := NewModel(store)
	m.Scheduler = scheduler.NewEngine(8)
	m.now = func() time.Time { return fixedNow }
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestRecordsLoadedReclassifies(t *testing.T) {
	m := newTestModel(&fakeStore{})

	next, _ := m.Update(RecordsLoadedMsg{
		Medicines: []model.Medicine{
			{ID: "med-a", Name: "A", Frequency: model.FrequencyDaily, TimeOfDay: "08:00"},
			{ID: "med-b", Name: "B", Frequency: model.FrequencyDaily, TimeOfDay: "10:00"},
		},
		Appointments: []model.Appointment{
			{ID: "appt-c", DoctorName: "C", Date: "20/06/2025", TimeOfDay: "14:00"},
			{ID: "appt-d", DoctorName: "D", Date: "10/06/2025", TimeOfDay: "09:00"},
		},
	})
	got := next.(Model)

	if len(got.Agenda.Today) != 1 || got.Agenda.Today[0].ID() != "med-b" {
		t.Fatalf("unexpected today bucket: %+v", got.Agenda.Today)
	}
	if len(got.Agenda.History) != 1 || got.Agenda.History[0].ID() != "appt-d" {
		t.Fatalf("unexpected history bucket: %+v", got.Agenda.History)
	}
	// The daily medicine that already passed rolls into the engine's upcoming
	// bucket, but the dashboard listing hides recurring medicines.
	if len(got.Agenda.Upcoming) != 2 {
		t.Fatalf("unexpected upcoming bucket: %+v", got.Agenda.Upcoming)
	}
	upcoming := got.Agenda.UpcomingReminders()
	if len(upcoming) != 1 || upcoming[0].ID() != "appt-c" {
		t.Fatalf("unexpected dashboard upcoming: %+v", upcoming)
	}
}

func TestRecordsLoadedReportsSkipped(t *testing.T) {
	m := newTestModel(&fakeStore{})
	next, _ := m.Update(RecordsLoadedMsg{
		Medicines: []model.Medicine{
			{ID: "bad", Name: "NoDate", Frequency: model.FrequencyCustomDate, TimeOfDay: "10:00"},
			{ID: "ok", Name: "Fine", Frequency: model.FrequencyDaily, TimeOfDay: "10:00"},
		},
	})
	got := next.(Model)
	if len(got.Agenda.Skipped) != 1 || got.Agenda.Skipped[0].ID != "bad" {
		t.Fatalf("unexpected skipped records: %+v", got.Agenda.Skipped)
	}
	if !got.Status.IsError {
		t.Fatal("expected skipped records surfaced in status")
	}
	if len(got.Agenda.Today) != 1 {
		t.Fatalf("valid record should still classify: %+v", got.Agenda.Today)
	}
}

func TestViewSwitchKeysReload(t *testing.T) {
	m := newTestModel(&fakeStore{})
	cases := []struct {
		key  string
		want View
	}{
		{"1", ViewDashboard},
		{"2", ViewMedicines},
		{"3", ViewAppointments},
		{"4", ViewHistory},
	}
	for _, tc := range cases {
		next, cmd := m.Update(keyMsg(tc.key))
		got := next.(Model)
		if got.CurrentView != tc.want {
			t.Fatalf("key %s switched to %s, want %s", tc.key, got.CurrentView, tc.want)
		}
		if cmd == nil {
			t.Fatalf("key %s should trigger a reload command", tc.key)
		}
	}
}

func TestSubmitMedicineFormSchedulesAndSaves(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(store)
	m.CurrentView = ViewAddMedicine

	m.medicineForm.inputs[0].SetValue("Paracetamol")
	m.medicineForm.inputs[1].SetValue("1 tablet")
	m.medicineForm.inputs[2].SetValue("10:00")
	m.medicineForm.freqIdx = 0 // daily
	m.medicineForm.focus = medFieldNotes

	got := m.submitMedicineForm()

	if got.Status.IsError {
		t.Fatalf("unexpected error status: %+v", got.Status)
	}
	if len(store.meds) != 1 {
		t.Fatalf("expected 1 saved medicine, got %d", len(store.meds))
	}
	saved := store.meds[0]
	if saved.Name != "Paracetamol" || saved.Frequency != model.FrequencyDaily {
		t.Fatalf("unexpected saved medicine: %+v", saved)
	}
	if saved.NotificationHandle == "" {
		t.Fatal("daily medicine should carry a notification handle")
	}
	if got.CurrentView != ViewMedicines {
		t.Fatalf("expected return to medicines view, got %s", got.CurrentView)
	}
	if len(got.Medicines) != 1 {
		t.Fatalf("in-memory list not updated: %+v", got.Medicines)
	}
}

func TestSubmitMedicineFormValidation(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(store)

	// Missing name.
	got := m.submitMedicineForm()
	if got.medicineForm.Err == "" {
		t.Fatal("expected validation error for missing name")
	}

	// Bad time.
	m.medicineForm.inputs[0].SetValue("X")
	m.medicineForm.inputs[2].SetValue("25:99")
	got = m.submitMedicineForm()
	if got.medicineForm.Err == "" {
		t.Fatal("expected validation error for bad time")
	}

	// Custom date frequency without a date.
	m.medicineForm.inputs[2].SetValue("10:00")
	m.medicineForm.freqIdx = len(frequencyOptions) - 1 // custom date
	got = m.submitMedicineForm()
	if got.medicineForm.Err == "" {
		t.Fatal("expected validation error for missing custom date")
	}

	if store.saveCalls != 0 {
		t.Fatalf("invalid forms must not hit the store, got %d saves", store.saveCalls)
	}
}

func TestSubmitMedicineFormSaveFailureRollsBack(t *testing.T) {
	store := &fakeStore{failSave: true}
	m := newTestModel(store)

	m.medicineForm.inputs[0].SetValue("Ibuprofeno")
	m.medicineForm.inputs[1].SetValue("2 tablets")
	m.medicineForm.inputs[2].SetValue("22:00")
	m.medicineForm.freqIdx = 0

	got := m.submitMedicineForm()

	if !got.Status.IsError {
		t.Fatal("expected error status on save failure")
	}
	if len(got.Medicines) != 0 {
		t.Fatalf("failed save must not commit the record: %+v", got.Medicines)
	}
	if len(store.meds) != 0 {
		t.Fatalf("store should hold nothing: %+v", store.meds)
	}
}

func TestSubmitAppointmentForm(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(store)
	// The engine checks triggers against the wall clock, so the fixture date
	// must be genuinely in the future.
	m.now = time.Now

	m.appointmentForm.inputs[0].SetValue("Dra. Souza")
	m.appointmentForm.inputs[1].SetValue(model.FormatDate(time.Now().AddDate(0, 0, 6)))
	m.appointmentForm.inputs[2].SetValue("14:00")

	got := m.submitAppointmentForm()

	if got.Status.IsError {
		t.Fatalf("unexpected error status: %+v", got.Status)
	}
	if len(store.appts) != 1 || store.appts[0].DoctorName != "Dra. Souza" {
		t.Fatalf("unexpected saved appointments: %+v", store.appts)
	}
	if store.appts[0].NotificationHandle == "" {
		t.Fatal("future appointment should carry a notification handle")
	}
}

func TestSubmitPastAppointmentSavesWithoutReminder(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(store)
	m.now = time.Now

	m.appointmentForm.inputs[0].SetValue("Dr. Lima")
	m.appointmentForm.inputs[1].SetValue(model.FormatDate(time.Now().AddDate(0, 0, -4)))
	m.appointmentForm.inputs[2].SetValue("09:00")

	got := m.submitAppointmentForm()

	if got.Status.IsError {
		t.Fatalf("scheduling failure must not block the save: %+v", got.Status)
	}
	if len(store.appts) != 1 {
		t.Fatalf("expected the record saved, got %+v", store.appts)
	}
	if store.appts[0].NotificationHandle != "" {
		t.Fatalf("past appointment should have no handle, got %q", store.appts[0].NotificationHandle)
	}
}

func TestDeleteMedicinePersists(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(store)
	m.Medicines = []model.Medicine{
		{ID: "keep", Name: "A", Frequency: model.FrequencyDaily, TimeOfDay: "08:00"},
		{ID: "drop", Name: "B", Frequency: model.FrequencyDaily, TimeOfDay: "09:00", NotificationHandle: "h-1"},
	}
	m.MedicineCursor = 1

	got := m.deleteMedicineAtCursor()

	if got.Status.IsError {
		t.Fatalf("unexpected error status: %+v", got.Status)
	}
	if len(got.Medicines) != 1 || got.Medicines[0].ID != "keep" {
		t.Fatalf("unexpected remaining medicines: %+v", got.Medicines)
	}
	if len(store.meds) != 1 || store.meds[0].ID != "keep" {
		t.Fatalf("store not updated: %+v", store.meds)
	}
}

func TestDeleteKeyRequiresConfirmation(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(store)
	m.CurrentView = ViewMedicines
	m.Medicines = []model.Medicine{
		{ID: "only", Name: "A", Frequency: model.FrequencyDaily, TimeOfDay: "08:00"},
	}

	first := m.handleMedicinesKey(keyMsg("d"))
	if len(first.Medicines) != 1 || store.saveCalls != 0 {
		t.Fatalf("first press must not delete: %+v", first.Medicines)
	}
	if first.pendingDelete != "only" {
		t.Fatalf("pending delete not armed: %q", first.pendingDelete)
	}

	second := first.handleMedicinesKey(keyMsg("d"))
	if len(second.Medicines) != 0 {
		t.Fatalf("second press should delete, got %+v", second.Medicines)
	}

	armed := m.handleMedicinesKey(keyMsg("d"))
	disarmed := armed.handleMedicinesKey(keyMsg("k"))
	if disarmed.pendingDelete != "" {
		t.Fatal("cursor move should clear the pending confirmation")
	}
}

func TestDeleteFailureKeepsList(t *testing.T) {
	store := &fakeStore{failSave: true}
	m := newTestModel(store)
	m.Medicines = []model.Medicine{
		{ID: "only", Name: "A", Frequency: model.FrequencyDaily, TimeOfDay: "08:00"},
	}

	got := m.deleteMedicineByID("only")

	if !got.Status.IsError {
		t.Fatal("expected error status")
	}
	if len(got.Medicines) != 1 {
		t.Fatalf("failed delete must keep the list: %+v", got.Medicines)
	}
}

func TestPaletteShowCommandSwitchesView(t *testing.T) {
	m := newTestModel(&fakeStore{})
	m.Palette.Active = true
	m.commandInput.SetValue("show history")

	got, cmd := m.handlePaletteKey(keyMsg("enter"))

	if got.CurrentView != ViewHistory {
		t.Fatalf("expected history view, got %s", got.CurrentView)
	}
	if got.Palette.Active {
		t.Fatal("palette should close after execution")
	}
	if cmd == nil {
		t.Fatal("show should trigger a reload command")
	}
}

func TestPaletteDeleteCommand(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(store)
	m.Medicines = []model.Medicine{{ID: "med-1", Name: "A", Frequency: model.FrequencyDaily, TimeOfDay: "08:00"}}
	m.Palette.Active = true
	m.commandInput.SetValue("delete medicine med-1")

	got, _ := m.handlePaletteKey(keyMsg("enter"))

	if got.Status.IsError {
		t.Fatalf("unexpected error: %+v", got.Status)
	}
	if len(got.Medicines) != 0 {
		t.Fatalf("medicine not deleted: %+v", got.Medicines)
	}
}

func TestPaletteRejectsUnknownCommand(t *testing.T) {
	m := newTestModel(&fakeStore{})
	m.Palette.Active = true
	m.commandInput.SetValue("explode")

	got, _ := m.handlePaletteKey(keyMsg("enter"))

	if !got.Status.IsError {
		t.Fatal("expected error status for unknown command")
	}
}

func TestNotificationFiredAppendsLogAndRearms(t *testing.T) {
	m := newTestModel(&fakeStore{})

	n := scheduler.Notification{Handle: "h", Title: "Medicine reminder", TriggerAt: fixedNow}
	next, cmd := m.Update(NotificationFiredMsg{Notification: n})
	got := next.(Model)

	if len(got.NotificationLog) != 1 || got.NotificationLog[0].Handle != "h" {
		t.Fatalf("unexpected notification log: %+v", got.NotificationLog)
	}
	if cmd == nil {
		t.Fatal("expected the wait command to re-arm")
	}
}

func TestStoreChangedTriggersReload(t *testing.T) {
	m := newTestModel(&fakeStore{})
	next, cmd := m.Update(StoreChangedMsg{})
	got := next.(Model)
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	if got.Status.Text == "" {
		t.Fatal("expected reload status message")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q"} {
		m := newTestModel(&fakeStore{})
		next, cmd := m.Update(keyMsg(k))
		got := next.(Model)
		if !got.Quitting || cmd == nil {
			t.Fatalf("key %s should quit", k)
		}
	}
}
