package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medecon/internal/model"
	"github.com/sandeepkv93/medecon/internal/scheduler"
	"github.com/sandeepkv93/medecon/internal/watcher"
)

func loadRecordsCmd(store RecordStore) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		meds, err := store.LoadMedicines(ctx)
		if err != nil {
			return RecordsLoadedMsg{Err: err}
		}
		appts, err := store.LoadAppointments(ctx)
		if err != nil {
			return RecordsLoadedMsg{Err: err}
		}
		return RecordsLoadedMsg{Medicines: meds, Appointments: appts}
	}
}

func waitForNotificationCmd(ch <-chan scheduler.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationFiredMsg{Notification: n}
	}
}

func waitForReloadCmd(ch <-chan watcher.ReloadEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}

func (m Model) handleMedicinesKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.MedicineCursor > 0 {
			m.MedicineCursor--
		}
		m.pendingDelete = ""
	case "down", "j":
		if m.MedicineCursor < len(m.Medicines)-1 {
			m.MedicineCursor++
		}
		m.pendingDelete = ""
	case "a":
		m.CurrentView = ViewAddMedicine
		m.resetMedicineForm()
		m.pendingDelete = ""
		m.Status = StatusBar{Text: "add medicine"}
	case "d", "x":
		if len(m.Medicines) == 0 {
			return m
		}
		selected := m.Medicines[m.MedicineCursor]
		if m.pendingDelete != selected.ID {
			m.pendingDelete = selected.ID
			m.Status = StatusBar{Text: fmt.Sprintf("delete %s? press d again to confirm", selected.Name)}
			return m
		}
		m.pendingDelete = ""
		return m.deleteMedicineAtCursor()
	}
	return m
}

func (m Model) handleAppointmentsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.AppointmentCursor > 0 {
			m.AppointmentCursor--
		}
		m.pendingDelete = ""
	case "down", "j":
		if m.AppointmentCursor < len(m.Appointments)-1 {
			m.AppointmentCursor++
		}
		m.pendingDelete = ""
	case "a":
		m.CurrentView = ViewAddAppointment
		m.resetAppointmentForm()
		m.pendingDelete = ""
		m.Status = StatusBar{Text: "add appointment"}
	case "d", "x":
		if len(m.Appointments) == 0 {
			return m
		}
		selected := m.Appointments[m.AppointmentCursor]
		if m.pendingDelete != selected.ID {
			m.pendingDelete = selected.ID
			m.Status = StatusBar{Text: fmt.Sprintf("delete %s? press d again to confirm", selected.DoctorName)}
			return m
		}
		m.pendingDelete = ""
		return m.deleteAppointmentAtCursor()
	}
	return m
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.HistoryCursor > 0 {
			m.HistoryCursor--
		}
	case "down", "j":
		if m.HistoryCursor < len(m.Agenda.History)-1 {
			m.HistoryCursor++
		}
	}
	return m
}

func (m Model) deleteMedicineAtCursor() Model {
	if len(m.Medicines) == 0 {
		return m
	}
	return m.deleteMedicineByID(m.Medicines[m.MedicineCursor].ID)
}

// deleteMedicineByID removes one record by id, persists the filtered list,
// then cancels its pending reminder. A failed write leaves the in-memory
// list and the reminder untouched.
func (m Model) deleteMedicineByID(id string) Model {
	var removed *model.Medicine
	filtered := make([]model.Medicine, 0, len(m.Medicines))
	for i := range m.Medicines {
		if m.Medicines[i].ID == id {
			removed = &m.Medicines[i]
			continue
		}
		filtered = append(filtered, m.Medicines[i])
	}
	if removed == nil {
		m.Status = StatusBar{Text: fmt.Sprintf("no medicine with id %s", id), IsError: true}
		return m
	}
	if err := m.Store.SaveMedicines(context.Background(), filtered); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("delete failed: %v", err), IsError: true}
		m.LastError = err
		return m
	}
	if removed.NotificationHandle != "" && m.Scheduler != nil {
		m.Scheduler.Cancel(removed.NotificationHandle)
	}
	m.Medicines = filtered
	m.reclassify()
	m.Status = StatusBar{Text: fmt.Sprintf("medicine removed: %s", removed.Name)}
	return m
}

func (m Model) deleteAppointmentAtCursor() Model {
	if len(m.Appointments) == 0 {
		return m
	}
	return m.deleteAppointmentByID(m.Appointments[m.AppointmentCursor].ID)
}

func (m Model) deleteAppointmentByID(id string) Model {
	var removed *model.Appointment
	filtered := make([]model.Appointment, 0, len(m.Appointments))
	for i := range m.Appointments {
		if m.Appointments[i].ID == id {
			removed = &m.Appointments[i]
			continue
		}
		filtered = append(filtered, m.Appointments[i])
	}
	if removed == nil {
		m.Status = StatusBar{Text: fmt.Sprintf("no appointment with id %s", id), IsError: true}
		return m
	}
	if err := m.Store.SaveAppointments(context.Background(), filtered); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("delete failed: %v", err), IsError: true}
		m.LastError = err
		return m
	}
	if removed.NotificationHandle != "" && m.Scheduler != nil {
		m.Scheduler.Cancel(removed.NotificationHandle)
	}
	m.Appointments = filtered
	m.reclassify()
	m.Status = StatusBar{Text: fmt.Sprintf("appointment removed: %s", removed.DoctorName)}
	return m
}
