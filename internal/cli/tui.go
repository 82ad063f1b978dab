package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkessler/tally/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	m := tui.New(ctx.Store, ctx.Tracker)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
