package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medecon/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadRecordsCmd(m.Store)}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForNotificationCmd(m.Scheduler.C()))
	}
	if m.Reloads != nil {
		cmds = append(cmds, waitForReloadCmd(m.Reloads))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.syncBubbleData()

	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}

		if m.Palette.Active {
			next, cmd := m.handlePaletteKey(typed)
			return next, cmd
		}

		if m.CurrentView == ViewAddMedicine {
			return m.handleMedicineFormKey(typed), nil
		}
		if m.CurrentView == ViewAddAppointment {
			return m.handleAppointmentFormKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Dashboard:
			return m.switchView(ViewDashboard)
		case m.Keys.Medicines:
			return m.switchView(ViewMedicines)
		case m.Keys.Appointments:
			return m.switchView(ViewAppointments)
		case m.Keys.History:
			return m.switchView(ViewHistory)
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewMedicines:
			return m.handleMedicinesKey(typed), nil
		case ViewAppointments:
			return m.handleAppointmentsKey(typed), nil
		case ViewHistory:
			return m.handleHistoryKey(typed), nil
		}
		return m, nil

	case SwitchViewMsg:
		if isKnownView(typed.View) {
			return m.switchView(typed.View)
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil

	case RecordsLoadedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("load failed: %v", typed.Err), IsError: true}
			return m, nil
		}
		m.Medicines = typed.Medicines
		m.Appointments = typed.Appointments
		m.reclassify()
		if n := len(m.Agenda.Skipped); n > 0 {
			m.Status = StatusBar{Text: fmt.Sprintf("%d record(s) skipped: missing custom date", n), IsError: true}
		}
		return m, nil

	case StoreChangedMsg:
		m.Status = StatusBar{Text: "data file changed, reloading"}
		return m, tea.Batch(loadRecordsCmd(m.Store), waitForReloadCmd(m.Reloads))

	case NotificationFiredMsg:
		m.NotificationLog = append(m.NotificationLog, typed.Notification)
		if len(m.NotificationLog) > 20 {
			m.NotificationLog = m.NotificationLog[len(m.NotificationLog)-20:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s", typed.Notification.Title)}
		m.notify(typed.Notification.Title, typed.Notification.Body)
		m.reclassify()
		if m.Scheduler != nil {
			return m, waitForNotificationCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

// switchView changes screens and reloads the lists so every screen renders
// from fresh data.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.CurrentView = v
	m.pendingDelete = ""
	if v == ViewAddMedicine {
		m.resetMedicineForm()
	}
	if v == ViewAddAppointment {
		m.resetAppointmentForm()
	}
	return m, loadRecordsCmd(m.Store)
}

func (m Model) View() string {
	m.syncBubbleData()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewDashboard:
		leftPane = m.renderDashboardView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewMedicines:
		leftPane = m.renderMedicinesView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewAppointments:
		leftPane = m.renderAppointmentsView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewHistory:
		leftPane = m.renderHistoryView()
		rightPane = m.renderHelpIfVisible()
	case ViewAddMedicine:
		leftPane = m.renderMedicineFormView()
		rightPane = m.renderHelpIfVisible()
	case ViewAddAppointment:
		leftPane = m.renderAppointmentFormView()
		rightPane = m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.NotificationLog) > 0 {
		last := m.NotificationLog[len(m.NotificationLog)-1]
		notificationView = fmt.Sprintf("last-reminder: %s @ %s", last.Title, last.TriggerAt.Format("15:04:05"))
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("medecon | view: %s", m.CurrentView),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusIsErr:  m.Status.IsError,
		Notification: notificationView,
		Footer: fmt.Sprintf("keys: %s dashboard | %s medicines | %s appointments | %s history | / cmd | %s help | %s quit",
			m.Keys.Dashboard, m.Keys.Medicines, m.Keys.Appointments, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewDashboard, ViewMedicines, ViewAppointments, ViewHistory, ViewAddMedicine, ViewAddAppointment:
		return true
	default:
		return false
	}
}
