package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type spinnerDoneMsg struct {
	err error
}

// spinnerModel shows a spinner next to a message while a long-running step
// (clone wait, installer download) completes in the background
type spinnerModel struct {
	spinner spinner.Model
	message string
	err     error
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.err = fmt.Errorf("canceled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.err != nil {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.message)
}

// WithSpinner runs fn while showing a spinner with the given message. In
// non-interactive runs the spinner is skipped and fn runs directly.
func WithSpinner(message string, fn func() error) error {
	if !IsInteractive() || os.Getenv("BOXUP_TEST_NO_INTERACTIVE") != "" {
		return fn()
	}

	m := spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		message: message,
	}
	p := tea.NewProgram(m)

	go func() {
		p.Send(spinnerDoneMsg{err: fn()})
	}()

	final, err := p.Run()
	if fm, ok := final.(spinnerModel); ok && fm.err != nil {
		return fm.err
	}
	return err
}
