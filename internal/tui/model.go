// Package tui is the interactive dashboard: a tabbed view over the
// habit list, the weekly report, and category statistics, with keys to
// mark today's completions and delete habits.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkessler/tally/internal/models"
	"github.com/mkessler/tally/internal/report"
	"github.com/mkessler/tally/internal/storage"
	"github.com/mkessler/tally/internal/tracker"
	"github.com/mkessler/tally/internal/utils"
)

type tab int

const (
	tabHabits tab = iota
	tabWeek
	tabStats
)

var tabNames = []string{"Habits", "Week", "Categories"}

type Model struct {
	store   storage.Provider
	tracker *tracker.Tracker
	keys    KeyMap
	help    help.Model

	tab            tab
	cursor         int
	habits         []models.Habit
	completedToday map[models.HabitID]bool
	week           report.Weekly
	categories     []report.CategoryStats

	status string
	width  int
}

func New(store storage.Provider, tr *tracker.Tracker) Model {
	m := Model{
		store:   store,
		tracker: tr,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	if err := m.refresh(); err != nil {
		m.status = err.Error()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tab(len(tabNames))
			m.status = ""
		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
			m.status = ""
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.habits)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Mark):
			m.markSelected()
		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
		case key.Matches(msg, m.keys.Refresh):
			if err := m.refresh(); err != nil {
				m.status = err.Error()
			} else {
				m.status = "Refreshed."
			}
		}
	}

	return m, nil
}

func (m *Model) refresh() error {
	habits, err := m.tracker.Habits()
	if err != nil {
		return err
	}

	completions, err := m.store.AllCompletions()
	if err != nil {
		return err
	}

	today := utils.Today()
	completedToday, err := m.tracker.TodayCompletions(today)
	if err != nil {
		return err
	}

	m.habits = habits
	m.completedToday = completedToday
	m.week = report.WeeklyReport(habits, completions, today)
	m.categories = report.CategoryReport(habits, completions, today)

	if m.cursor >= len(m.habits) {
		m.cursor = len(m.habits) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	return nil
}

func (m *Model) markSelected() {
	if m.tab != tabHabits || len(m.habits) == 0 {
		return
	}

	habit := m.habits[m.cursor]
	updated, err := m.tracker.MarkComplete(habit.ID, utils.Today())
	if err != nil {
		if errors.Is(err, tracker.ErrAlreadyCompleted) {
			m.status = fmt.Sprintf("%q is already completed today.", habit.Name)
			return
		}
		m.status = err.Error()
		return
	}

	m.status = fmt.Sprintf("Marked %q complete. Current streak: %d day(s).", updated.Name, updated.CurrentStreak)
	if err := m.refresh(); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) deleteSelected() {
	if m.tab != tabHabits || len(m.habits) == 0 {
		return
	}

	habit := m.habits[m.cursor]
	deleted, err := m.tracker.Delete(habit.ID)
	if err != nil {
		m.status = err.Error()
		return
	}

	m.status = fmt.Sprintf("Deleted %q.", deleted.Name)
	if err := m.refresh(); err != nil {
		m.status = err.Error()
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	switch m.tab {
	case tabHabits:
		b.WriteString(m.habitsView())
	case tabWeek:
		b.WriteString(m.weekView())
	case tabStats:
		b.WriteString(m.statsView())
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func (m Model) tabBar() string {
	rendered := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) habitsView() string {
	if len(m.habits) == 0 {
		return "No habits yet. Add one with 'tally add'."
	}

	var b strings.Builder
	for i, habit := range m.habits {
		mark := "○"
		if m.completedToday[habit.ID] {
			mark = doneMarkStyle.Render("✓")
		}

		line := fmt.Sprintf("%s [%s] %s", mark, habit.ID, habit.Name)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		b.WriteString(metaStyle.Render(fmt.Sprintf("     %s · %s · streak %d (best %d)",
			habit.Category, habit.Frequency, habit.CurrentStreak, habit.LongestStreak)) + "\n")
	}
	return b.String()
}

func (m Model) weekView() string {
	var b strings.Builder
	for _, day := range m.week.Days {
		b.WriteString(fmt.Sprintf("%s %s: %s %d/%d (%.0f%%)\n",
			day.Day.Format("Mon"), day.Day.Format("01/02"),
			report.Bar(day.Percent), day.Completed, day.Total, day.Percent))
	}
	b.WriteString(fmt.Sprintf("\nWeekly completion: %.1f%%\n", m.week.WeekPercent))
	b.WriteString(fmt.Sprintf("Total completions: %d/%d\n", m.week.WeekCompleted, m.week.WeekPossible))
	return b.String()
}

func (m Model) statsView() string {
	if len(m.categories) == 0 {
		return "No habits yet."
	}

	var b strings.Builder
	for _, stats := range m.categories {
		b.WriteString(selectedStyle.Render(stats.Category) + "\n")
		b.WriteString(fmt.Sprintf("  Today: %d/%d (%.1f%%)\n", stats.CompletedToday, stats.Habits, stats.TodayPercent))
		b.WriteString(fmt.Sprintf("  Average streak: %.1f day(s)\n", stats.AverageStreak))
		b.WriteString(fmt.Sprintf("  Best streak: %d day(s)\n", stats.BestStreak))
	}
	return b.String()
}
