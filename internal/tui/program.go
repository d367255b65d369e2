package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/flashingpumpkin/splitter/internal/panel"
	"github.com/muesli/termenv"
)

// Program wraps the tea.Program for lifecycle management.
type Program struct {
	program *tea.Program
	final   *Model
}

// New creates a new TUI program for the given options. Extra program
// options are appended to the defaults (alternate screen, mouse motion).
func New(opts Options, extra ...tea.ProgramOption) (*Program, error) {
	// Handle NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model, err := NewModel(opts)
	if err != nil {
		return nil, err
	}

	programOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, extra...)

	return &Program{program: tea.NewProgram(model, programOpts...)}, nil
}

// Run starts the TUI program. This blocks until the program exits.
func (p *Program) Run() error {
	m, err := p.program.Run()
	if final, ok := m.(Model); ok {
		p.final = &final
	}
	return err
}

// Group returns the panel group as it was when the program exited, or nil
// before Run returns.
func (p *Program) Group() *panel.Group {
	if p.final == nil {
		return nil
	}
	return p.final.group
}

// Reload replaces the panel declarations of the running program.
func (p *Program) Reload(decls []panel.Decl, err error) {
	p.program.Send(ReloadMsg{Panels: decls, Err: err})
}

// Status appends a line to the status log.
func (p *Program) Status(line string) {
	p.program.Send(StatusMsg(line))
}

// Quit sends a quit message to the program.
func (p *Program) Quit() {
	p.program.Quit()
}
