package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// confirmModel is the bubbletea model for a single yes/no question.
// Enter defaults to no.
type confirmModel struct {
	question string
	answer   bool
	done     bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.answer = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "enter", "esc", "q", "ctrl+c":
			m.answer = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return styleIconWarning.Render(iconWarning) + " " + m.question + " " + StyleDim.Render("[y/N]") + " "
}

// confirm asks a yes/no question on the terminal and blocks until answered.
func confirm(question string) (bool, error) {
	p := tea.NewProgram(confirmModel{question: question})
	m, err := p.Run()
	if err != nil {
		return false, err
	}
	return m.(confirmModel).answer, nil
}

// isInteractive reports whether stdin is attached to a terminal.
// Prompts are skipped entirely in non-interactive runs.
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
