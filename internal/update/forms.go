package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medecon/internal/agenda"
	"github.com/sandeepkv93/medecon/internal/model"
	"github.com/sandeepkv93/medecon/internal/scheduler"
)

var frequencyOptions = []model.Frequency{
	model.FrequencyDaily,
	model.FrequencyEvery6Hours,
	model.FrequencyEvery8Hours,
	model.FrequencyWeekly,
	model.FrequencyCustomDate,
}

var frequencyLabels = map[model.Frequency]string{
	model.FrequencyDaily:       "daily",
	model.FrequencyEvery6Hours: "every 6 hours",
	model.FrequencyEvery8Hours: "every 8 hours",
	model.FrequencyWeekly:      "weekly",
	model.FrequencyCustomDate:  "custom date",
}

// Medicine form rows. The frequency row is a selector, not a text input.
const (
	medFieldName = iota
	medFieldQuantity
	medFieldFrequency
	medFieldTime
	medFieldDate
	medFieldNotes
	medFieldCount
)

const (
	apptFieldDoctor = iota
	apptFieldDate
	apptFieldTime
	apptFieldNotes
	apptFieldCount
)

type medicineFormState struct {
	inputs  []textinput.Model
	freqIdx int
	focus   int
	Err     string
}

type appointmentFormState struct {
	inputs []textinput.Model
	focus  int
	Err    string
}

func newFormInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 40
	return in
}

func (m *Model) resetMedicineForm() {
	inputs := []textinput.Model{
		newFormInput("medicine name"),
		newFormInput("dosage, e.g. 1 tablet"),
		newFormInput("time HH:MM"),
		newFormInput("date DD/MM/YYYY (custom date only)"),
		newFormInput("notes (optional)"),
	}
	m.medicineForm = medicineFormState{inputs: inputs}
	m.medicineForm.inputs[0].Focus()
}

func (m *Model) resetAppointmentForm() {
	inputs := []textinput.Model{
		newFormInput("doctor name"),
		newFormInput("date DD/MM/YYYY"),
		newFormInput("time HH:MM"),
		newFormInput("notes (optional)"),
	}
	m.appointmentForm = appointmentFormState{inputs: inputs}
	m.appointmentForm.inputs[0].Focus()
}

// medInputIndex maps a form row to its slot in the inputs slice. The
// frequency row has no input and returns -1.
func medInputIndex(field int) int {
	switch field {
	case medFieldName:
		return 0
	case medFieldQuantity:
		return 1
	case medFieldTime:
		return 2
	case medFieldDate:
		return 3
	case medFieldNotes:
		return 4
	default:
		return -1
	}
}

func (m Model) handleMedicineFormKey(msg tea.KeyMsg) Model {
	f := &m.medicineForm
	switch msg.String() {
	case "esc":
		m.resetMedicineForm()
		m.CurrentView = ViewMedicines
		m.Status = StatusBar{Text: "add medicine cancelled"}
		return m
	case "tab", "down":
		m.moveMedicineFocus(1)
		return m
	case "shift+tab", "up":
		m.moveMedicineFocus(-1)
		return m
	case "left":
		if f.focus == medFieldFrequency {
			f.freqIdx = (f.freqIdx + len(frequencyOptions) - 1) % len(frequencyOptions)
			return m
		}
	case "right":
		if f.focus == medFieldFrequency {
			f.freqIdx = (f.freqIdx + 1) % len(frequencyOptions)
			return m
		}
	case "enter":
		if f.focus == medFieldCount-1 {
			return m.submitMedicineForm()
		}
		m.moveMedicineFocus(1)
		return m
	}
	if idx := medInputIndex(f.focus); idx >= 0 {
		var cmd tea.Cmd
		f.inputs[idx], cmd = f.inputs[idx].Update(msg)
		_ = cmd
	}
	return m
}

func (m *Model) moveMedicineFocus(delta int) {
	f := &m.medicineForm
	if idx := medInputIndex(f.focus); idx >= 0 {
		f.inputs[idx].Blur()
	}
	f.focus = (f.focus + delta + medFieldCount) % medFieldCount
	if idx := medInputIndex(f.focus); idx >= 0 {
		f.inputs[idx].Focus()
	}
}

func (m Model) handleAppointmentFormKey(msg tea.KeyMsg) Model {
	f := &m.appointmentForm
	switch msg.String() {
	case "esc":
		m.resetAppointmentForm()
		m.CurrentView = ViewAppointments
		m.Status = StatusBar{Text: "add appointment cancelled"}
		return m
	case "tab", "down":
		m.moveAppointmentFocus(1)
		return m
	case "shift+tab", "up":
		m.moveAppointmentFocus(-1)
		return m
	case "enter":
		if f.focus == apptFieldCount-1 {
			return m.submitAppointmentForm()
		}
		m.moveAppointmentFocus(1)
		return m
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	_ = cmd
	return m
}

func (m *Model) moveAppointmentFocus(delta int) {
	f := &m.appointmentForm
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + apptFieldCount) % apptFieldCount
	f.inputs[f.focus].Focus()
}

// submitMedicineForm validates the form, schedules the reminder, then
// persists. A failed write rolls the reminder back so no notification fires
// for a record that was never stored.
func (m Model) submitMedicineForm() Model {
	f := &m.medicineForm
	med := model.Medicine{
		ID:           model.NewID(),
		Name:         strings.TrimSpace(f.inputs[0].Value()),
		Quantity:     strings.TrimSpace(f.inputs[1].Value()),
		Frequency:    frequencyOptions[f.freqIdx],
		TimeOfDay:    strings.TrimSpace(f.inputs[2].Value()),
		ExplicitDate: strings.TrimSpace(f.inputs[3].Value()),
		Notes:        strings.TrimSpace(f.inputs[4].Value()),
	}
	if med.Frequency != model.FrequencyCustomDate {
		med.ExplicitDate = ""
	}
	if med.Name == "" {
		f.Err = "medicine name is required"
		return m
	}
	if err := med.Validate(); err != nil {
		f.Err = err.Error()
		return m
	}
	if _, _, err := model.ParseTimeOfDay(med.TimeOfDay); err != nil {
		f.Err = err.Error()
		return m
	}
	if med.Frequency == model.FrequencyCustomDate {
		if _, _, _, err := model.ParseDate(med.ExplicitDate); err != nil {
			f.Err = err.Error()
			return m
		}
	}
	f.Err = ""

	handle, warn := m.scheduleMedicineReminder(med)
	med.NotificationHandle = handle

	next := append(append([]model.Medicine{}, m.Medicines...), med)
	if err := m.Store.SaveMedicines(context.Background(), next); err != nil {
		if handle != "" && m.Scheduler != nil {
			m.Scheduler.Cancel(handle)
		}
		m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", err), IsError: true}
		m.LastError = err
		return m
	}

	m.Medicines = next
	m.reclassify()
	m.resetMedicineForm()
	m.CurrentView = ViewMedicines
	text := fmt.Sprintf("medicine added: %s", med.Name)
	if warn != "" {
		text += " (" + warn + ")"
	}
	m.Status = StatusBar{Text: text}
	return m
}

func (m Model) submitAppointmentForm() Model {
	f := &m.appointmentForm
	appt := model.Appointment{
		ID:         model.NewID(),
		DoctorName: strings.TrimSpace(f.inputs[0].Value()),
		Date:       strings.TrimSpace(f.inputs[1].Value()),
		TimeOfDay:  strings.TrimSpace(f.inputs[2].Value()),
		Notes:      strings.TrimSpace(f.inputs[3].Value()),
	}
	if appt.DoctorName == "" {
		f.Err = "doctor name is required"
		return m
	}
	if err := appt.Validate(); err != nil {
		f.Err = err.Error()
		return m
	}
	if _, _, _, err := model.ParseDate(appt.Date); err != nil {
		f.Err = err.Error()
		return m
	}
	if _, _, err := model.ParseTimeOfDay(appt.TimeOfDay); err != nil {
		f.Err = err.Error()
		return m
	}
	f.Err = ""

	handle, warn := m.scheduleAppointmentReminder(appt)
	appt.NotificationHandle = handle

	next := append(append([]model.Appointment{}, m.Appointments...), appt)
	if err := m.Store.SaveAppointments(context.Background(), next); err != nil {
		if handle != "" && m.Scheduler != nil {
			m.Scheduler.Cancel(handle)
		}
		m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", err), IsError: true}
		m.LastError = err
		return m
	}

	m.Appointments = next
	m.reclassify()
	m.resetAppointmentForm()
	m.CurrentView = ViewAppointments
	text := fmt.Sprintf("appointment added: %s", appt.DoctorName)
	if warn != "" {
		text += " (" + warn + ")"
	}
	m.Status = StatusBar{Text: text}
	return m
}

// scheduleMedicineReminder registers the reminder for a new medicine. Daily
// medicines repeat; everything else gets a single delivery. A scheduling
// failure is reported but never blocks the save.
func (m *Model) scheduleMedicineReminder(med model.Medicine) (handle string, warn string) {
	if m.Scheduler == nil {
		return "", ""
	}
	title := "Medicine reminder"
	body := fmt.Sprintf("%s, %s", med.Name, med.Quantity)
	payload := map[string]string{"kind": "medicine", "id": med.ID}

	var err error
	switch med.Frequency {
	case model.FrequencyDaily:
		hour, minute, perr := model.ParseTimeOfDay(med.TimeOfDay)
		if perr != nil {
			return "", perr.Error()
		}
		body = fmt.Sprintf("%s, %s at %s", med.Name, med.Quantity, model.FormatTimeOfDay(hour, minute))
		handle, err = m.Scheduler.ScheduleDaily(hour, minute, title, body, payload)
	case model.FrequencyCustomDate:
		at, rerr := agenda.ResolveMedicine(m.now(), med)
		if rerr != nil {
			return "", rerr.Error()
		}
		handle, err = m.Scheduler.ScheduleOneShot(at, title, body, payload)
	default:
		hour, minute, perr := model.ParseTimeOfDay(med.TimeOfDay)
		if perr != nil {
			return "", perr.Error()
		}
		at := scheduler.NextClockOccurrence(m.now(), hour, minute)
		handle, err = m.Scheduler.ScheduleOneShot(at, title, body, payload)
	}
	if err != nil {
		return "", fmt.Sprintf("reminder not scheduled: %v", err)
	}
	return handle, ""
}

func (m *Model) scheduleAppointmentReminder(appt model.Appointment) (handle string, warn string) {
	if m.Scheduler == nil {
		return "", ""
	}
	at, err := agenda.ResolveAppointment(m.now(), appt)
	if err != nil {
		return "", err.Error()
	}
	title := "Appointment reminder"
	body := fmt.Sprintf("%s at %s", appt.DoctorName, appt.TimeOfDay)
	payload := map[string]string{"kind": "appointment", "id": appt.ID}
	handle, err = m.Scheduler.ScheduleOneShot(at, title, body, payload)
	if err != nil {
		return "", fmt.Sprintf("reminder not scheduled: %v", err)
	}
	return handle, ""
}
