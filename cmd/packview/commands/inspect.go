package commands

import (
	"github.com/arloliu/packbuf/internal/inspect"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func runInspect(cmd *cobra.Command, args []string) error {
	var m inspect.Model
	if len(args) > 0 {
		m = inspect.NewWithPath(args[0])
	} else {
		buf, err := demoBuffer(defaultDemoRecords)
		if err != nil {
			return err
		}
		m = inspect.New(buf, inspect.Source{Name: "demo"})
	}
	// quitting releases too, but Run can fail before that
	defer m.Release()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()

	return err
}
