package ui

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B57EDC"))
	messageStyle = spinnerStyle
)

type stopMsg struct{}

type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case stopMsg:
		m.quitting = true
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.spinner.View() + " " + messageStyle.Render(m.message)
}

// Spinner is a transient progress indicator drawn on a terminal.
// It does nothing when the output is not a terminal.
type Spinner struct {
	out     io.Writer
	enabled bool

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewSpinner creates a spinner drawing on f
func NewSpinner(f *os.File) *Spinner {
	return &Spinner{out: f, enabled: IsTerminal(f)}
}

// Start begins animating message until Stop is called
func (s *Spinner) Start(message string) {
	if !s.enabled {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program != nil {
		return
	}

	m := spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(spinnerStyle)),
		message: message,
	}
	s.program = tea.NewProgram(m, tea.WithOutput(s.out), tea.WithInput(nil))
	s.done = make(chan struct{})

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		if _, err := p.Run(); err != nil {
			log.WithError(err).Debug("Spinner stopped")
		}
	}(s.program, s.done)
}

// Stop clears the spinner and waits for it to exit
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program == nil {
		return
	}

	s.program.Send(stopMsg{})
	<-s.done
	s.program = nil
}
