package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/medecon/internal/agenda"
	"github.com/sandeepkv93/medecon/internal/model"
	"github.com/sandeepkv93/medecon/internal/scheduler"
	"github.com/sandeepkv93/medecon/internal/watcher"
)

type View string

const (
	ViewDashboard      View = "Dashboard"
	ViewMedicines      View = "Medicines"
	ViewAppointments   View = "Appointments"
	ViewHistory        View = "History"
	ViewAddMedicine    View = "AddMedicine"
	ViewAddAppointment View = "AddAppointment"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard    string
	Medicines    string
	Appointments string
	History      string
	Help         string
	Quit         string
}

// RecordStore is the persistence surface the screens use. *storage.Store
// satisfies it; tests substitute an in-memory fake.
type RecordStore interface {
	LoadMedicines(ctx context.Context) ([]model.Medicine, error)
	SaveMedicines(ctx context.Context, meds []model.Medicine) error
	LoadAppointments(ctx context.Context) ([]model.Appointment, error)
	SaveAppointments(ctx context.Context, appts []model.Appointment) error
}

type Model struct {
	CurrentView  View
	Medicines    []model.Medicine
	Appointments []model.Appointment
	Agenda       agenda.Classification

	MedicineCursor    int
	AppointmentCursor int
	HistoryCursor     int

	Store     RecordStore
	Scheduler *scheduler.Engine
	Reloads   <-chan watcher.ReloadEvent

	Palette         CommandPaletteState
	HelpVisible     bool
	DesktopEnabled  bool
	notifier        DesktopNotifier
	NotificationLog []scheduler.Notification
	Status          StatusBar
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error

	medicineForm    medicineFormState
	appointmentForm appointmentFormState
	pendingDelete   string

	commandInput textinput.Model
	medicineList list.Model
	historyTable table.Model
	helpModel    help.Model

	now func() time.Time
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type DesktopNotifier interface {
	Send(title, body string) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(string, string) error { return nil }

type ExecDesktopNotifier struct{}

// Available reports whether the platform notification command exists. Probed
// once at startup so a missing binary is surfaced before any reminder fires.
func (ExecDesktopNotifier) Available() bool {
	switch runtime.GOOS {
	case "linux":
		_, err := exec.LookPath("notify-send")
		return err == nil
	case "darwin":
		_, err := exec.LookPath("osascript")
		return err == nil
	default:
		return false
	}
}

func (ExecDesktopNotifier) Send(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type RecordsLoadedMsg struct {
	Medicines    []model.Medicine
	Appointments []model.Appointment
	Err          error
}

type StoreChangedMsg struct{}

type NotificationFiredMsg struct {
	Notification scheduler.Notification
}

func NewModel(store RecordStore) Model {
	m := Model{
		CurrentView: ViewDashboard,
		Store:       store,
		notifier:    NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Dashboard:    "1",
			Medicines:    "2",
			Appointments: "3",
			History:      "4",
			Help:         "?",
			Quit:         "q",
		},
		now: time.Now,
	}
	m.initBubbleComponents()
	m.resetMedicineForm()
	m.resetAppointmentForm()
	return m
}

func NewModelWithRuntime(store RecordStore, engine *scheduler.Engine, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel(store)
	m.Scheduler = engine
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.medicineList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.medicineList.Title = "Medicines"
	m.medicineList.SetShowHelp(false)
	m.medicineList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "When", Width: 18},
		{Title: "Kind", Width: 12},
		{Title: "What", Width: 26},
	}
	m.historyTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.helpModel = help.New()
}

// reclassify recomputes the agenda buckets from the in-memory lists.
func (m *Model) reclassify() {
	m.Agenda = agenda.Classify(m.now(), m.Medicines, m.Appointments)
	m.clampCursors()
}

func (m *Model) clampCursors() {
	if m.MedicineCursor >= len(m.Medicines) {
		m.MedicineCursor = len(m.Medicines) - 1
	}
	if m.MedicineCursor < 0 {
		m.MedicineCursor = 0
	}
	if m.AppointmentCursor >= len(m.Appointments) {
		m.AppointmentCursor = len(m.Appointments) - 1
	}
	if m.AppointmentCursor < 0 {
		m.AppointmentCursor = 0
	}
	if m.HistoryCursor >= len(m.Agenda.History) {
		m.HistoryCursor = len(m.Agenda.History) - 1
	}
	if m.HistoryCursor < 0 {
		m.HistoryCursor = 0
	}
}

func (m *Model) notify(title, body string) {
	if !m.DesktopEnabled || m.notifier == nil {
		return
	}
	_ = m.notifier.Send(title, body)
}
