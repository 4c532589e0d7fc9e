package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	p := tea.NewProgram(tui.NewModel(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
