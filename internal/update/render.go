package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"

	"github.com/sandeepkv93/medecon/internal/agenda"
	"github.com/sandeepkv93/medecon/internal/views"
)

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Medicines))
	for _, med := range m.Medicines {
		items = append(items, listItem{
			title:       med.Name,
			description: fmt.Sprintf("%s | %s @ %s", med.Quantity, frequencyLabels[med.Frequency], med.TimeOfDay),
		})
	}
	m.medicineList.SetItems(items)
	if len(items) > 0 {
		m.medicineList.Select(m.MedicineCursor)
	}

	rows := make([]table.Row, 0, len(m.Agenda.History))
	for _, e := range m.Agenda.History {
		rows = append(rows, table.Row{e.At.Format("02/01/2006 15:04"), string(e.Kind), entryTitle(e)})
	}
	m.historyTable.SetRows(rows)
	if len(rows) > 0 && m.HistoryCursor < len(rows) {
		m.historyTable.SetCursor(m.HistoryCursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}
}

func entryTitle(e agenda.Entry) string {
	if e.Kind == agenda.KindAppointment {
		return e.Appointment.DoctorName
	}
	if e.Medicine.Quantity == "" {
		return e.Medicine.Name
	}
	return fmt.Sprintf("%s (%s)", e.Medicine.Name, e.Medicine.Quantity)
}

func entryData(e agenda.Entry) views.EntryData {
	return views.EntryData{
		ID:    e.ID(),
		Kind:  string(e.Kind),
		Title: entryTitle(e),
		When:  e.At.Format("02/01/2006 15:04"),
	}
}

func entryDataList(entries []agenda.Entry) []views.EntryData {
	out := make([]views.EntryData, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryData(e))
	}
	return out
}

func (m Model) renderDashboardView() string {
	return views.RenderDashboardPanel(views.DashboardPanelData{
		Today:            entryDataList(m.Agenda.Today),
		Upcoming:         entryDataList(m.Agenda.UpcomingReminders()),
		MedicineCount:    len(m.Medicines),
		AppointmentCount: len(m.Appointments),
		SkippedCount:     len(m.Agenda.Skipped),
	})
}

func (m Model) renderMedicinesView() string {
	lines := make([]views.MedicineLineData, 0, len(m.Medicines))
	for _, med := range m.Medicines {
		lines = append(lines, views.MedicineLineData{
			ID:        med.ID,
			Name:      med.Name,
			Quantity:  med.Quantity,
			Frequency: frequencyLabels[med.Frequency],
			TimeOfDay: med.TimeOfDay,
			Date:      med.ExplicitDate,
			Notes:     med.Notes,
		})
	}
	selected := ""
	if len(m.Medicines) > 0 {
		selected = m.Medicines[m.MedicineCursor].ID
	}
	return views.RenderMedicinesPanel(views.MedicinesPanelData{
		ListView:   m.medicineList.View(),
		Items:      lines,
		SelectedID: selected,
	})
}

func (m Model) renderAppointmentsView() string {
	lines := make([]views.AppointmentLineData, 0, len(m.Appointments))
	for _, appt := range m.Appointments {
		lines = append(lines, views.AppointmentLineData{
			ID:         appt.ID,
			DoctorName: appt.DoctorName,
			Date:       appt.Date,
			TimeOfDay:  appt.TimeOfDay,
			Notes:      appt.Notes,
		})
	}
	selected := ""
	if len(m.Appointments) > 0 {
		selected = m.Appointments[m.AppointmentCursor].ID
	}
	return views.RenderAppointmentsPanel(views.AppointmentsPanelData{
		Items:      lines,
		SelectedID: selected,
	})
}

func (m Model) renderHistoryView() string {
	skipped := make([]views.SkippedLineData, 0, len(m.Agenda.Skipped))
	for _, s := range m.Agenda.Skipped {
		skipped = append(skipped, views.SkippedLineData{ID: s.ID, Reason: s.Err.Error()})
	}
	selected := ""
	if len(m.Agenda.History) > 0 {
		selected = m.Agenda.History[m.HistoryCursor].ID()
	}
	return views.RenderHistoryPanel(views.HistoryPanelData{
		TableView:  m.historyTable.View(),
		Items:      entryDataList(m.Agenda.History),
		Skipped:    skipped,
		SelectedID: selected,
	})
}

func (m Model) renderMedicineFormView() string {
	f := m.medicineForm
	rows := []views.FormRowData{
		{Label: "name", View: f.inputs[0].View(), Focused: f.focus == medFieldName},
		{Label: "dosage", View: f.inputs[1].View(), Focused: f.focus == medFieldQuantity},
		{Label: "frequency", View: "< " + frequencyLabels[frequencyOptions[f.freqIdx]] + " >", Focused: f.focus == medFieldFrequency},
		{Label: "time", View: f.inputs[2].View(), Focused: f.focus == medFieldTime},
		{Label: "date", View: f.inputs[3].View(), Focused: f.focus == medFieldDate},
		{Label: "notes", View: f.inputs[4].View(), Focused: f.focus == medFieldNotes},
	}
	return views.RenderFormPanel(views.FormPanelData{
		Title:   "add medicine",
		Rows:    rows,
		Err:     f.Err,
		Actions: "actions: [tab]next field [left/right]frequency [enter]submit on last field [esc]cancel",
	})
}

func (m Model) renderAppointmentFormView() string {
	f := m.appointmentForm
	rows := []views.FormRowData{
		{Label: "doctor", View: f.inputs[0].View(), Focused: f.focus == apptFieldDoctor},
		{Label: "date", View: f.inputs[1].View(), Focused: f.focus == apptFieldDate},
		{Label: "time", View: f.inputs[2].View(), Focused: f.focus == apptFieldTime},
		{Label: "notes", View: f.inputs[3].View(), Focused: f.focus == apptFieldNotes},
	}
	return views.RenderFormPanel(views.FormPanelData{
		Title:   "add appointment",
		Rows:    rows,
		Err:     f.Err,
		Actions: "actions: [tab]next field [enter]submit on last field [esc]cancel",
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
