package views

import (
	"fmt"
	"strings"
)

type EntryData struct {
	ID    string
	Kind  string
	Title string
	When  string
}

type DashboardPanelData struct {
	Today            []EntryData
	Upcoming         []EntryData
	MedicineCount    int
	AppointmentCount int
	SkippedCount     int
}

type MedicineLineData struct {
	ID        string
	Name      string
	Quantity  string
	Frequency string
	TimeOfDay string
	Date      string
	Notes     string
}

type MedicinesPanelData struct {
	ListView   string
	Items      []MedicineLineData
	SelectedID string
}

type AppointmentLineData struct {
	ID         string
	DoctorName string
	Date       string
	TimeOfDay  string
	Notes      string
}

type AppointmentsPanelData struct {
	Items      []AppointmentLineData
	SelectedID string
}

type SkippedLineData struct {
	ID     string
	Reason string
}

type HistoryPanelData struct {
	TableView  string
	Items      []EntryData
	Skipped    []SkippedLineData
	SelectedID string
}

type FormRowData struct {
	Label   string
	View    string
	Focused bool
}

type FormPanelData struct {
	Title   string
	Rows    []FormRowData
	Err     string
	Actions string
}

type HelpPanelData struct {
	CurrentView string
	Markdown    string
	HelpView    string
}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString("dashboard:\n")
	b.WriteString(fmt.Sprintf("medicines: %d | appointments: %d\n", data.MedicineCount, data.AppointmentCount))
	if data.SkippedCount > 0 {
		b.WriteString(fmt.Sprintf("skipped records: %d\n", data.SkippedCount))
	}
	renderEntrySection(&b, "Lembretes de Hoje", data.Today)
	renderEntrySection(&b, "Próximos Lembretes", data.Upcoming)
	return strings.TrimSpace(b.String())
}

func RenderMedicinesPanel(data MedicinesPanelData) string {
	var b strings.Builder
	b.WriteString("medicines:\n")
	b.WriteString("actions: [j/k]move [a]add [d]delete\n")
	b.WriteString(data.ListView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(no medicines registered)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s | %s @ %s", cursor, item.Name, item.Quantity, item.Frequency, item.TimeOfDay))
		if item.Date != "" {
			b.WriteString(" on " + item.Date)
		}
		if item.Notes != "" {
			b.WriteString(" | " + item.Notes)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderAppointmentsPanel(data AppointmentsPanelData) string {
	var b strings.Builder
	b.WriteString("appointments:\n")
	b.WriteString("actions: [j/k]move [a]add [d]delete\n")
	if len(data.Items) == 0 {
		b.WriteString("(no appointments registered)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s | %s %s", cursor, item.DoctorName, item.Date, item.TimeOfDay))
		if item.Notes != "" {
			b.WriteString(" | " + item.Notes)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString("history:\n")
	b.WriteString("actions: [j/k]move\n")
	b.WriteString(data.TableView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(no past reminders)\n")
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s %s\n", cursor, strings.ToUpper(item.Kind), item.When, item.Title))
	}
	if len(data.Skipped) > 0 {
		b.WriteString("\nskipped:\n")
		for _, s := range data.Skipped {
			b.WriteString(fmt.Sprintf("- %s: %s\n", s.ID, s.Reason))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	if data.Actions != "" {
		b.WriteString(data.Actions + "\n")
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-10s %s\n", cursor, row.Label+":", row.View))
	}
	if data.Err != "" {
		b.WriteString("error: " + data.Err)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.CurrentView),
		RenderMarkdown(data.Markdown),
		data.HelpView,
	)
}

func renderEntrySection(b *strings.Builder, title string, items []EntryData) {
	b.WriteString(fmt.Sprintf("\n%s:\n", title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- [%s] %s %s\n", strings.ToUpper(item.Kind), item.When, item.Title))
	}
}
