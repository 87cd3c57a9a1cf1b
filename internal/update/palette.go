package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medecon/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var teaCmd tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		AddMedicine: func() (commands.Result, error) {
			m.CurrentView = ViewAddMedicine
			m.resetMedicineForm()
			return commands.Result{Message: "add medicine"}, nil
		},
		AddAppointment: func() (commands.Result, error) {
			m.CurrentView = ViewAddAppointment
			m.resetAppointmentForm()
			return commands.Result{Message: "add appointment"}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Subject {
			case "dashboard":
				m.CurrentView = ViewDashboard
			case "medicines":
				m.CurrentView = ViewMedicines
			case "appointments":
				m.CurrentView = ViewAppointments
			case "history":
				m.CurrentView = ViewHistory
			}
			teaCmd = loadRecordsCmd(m.Store)
			return commands.Result{Message: fmt.Sprintf("show %s", s.Subject)}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			if d.Kind == "medicine" {
				m = m.deleteMedicineByID(d.ID)
			} else {
				m = m.deleteAppointmentByID(d.ID)
			}
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Quit: func() (commands.Result, error) {
			m.Quitting = true
			teaCmd = tea.Quit
			return commands.Result{Message: "bye"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, teaCmd
}
