package interact

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxWidth = 80

var (
	docStyle  = lipgloss.NewStyle().Margin(1, 2)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

type progressMsg struct {
	done, total int
}

type finishedMsg struct {
	err error
}

type model struct {
	title    string
	progress progress.Model
	done     int
	total    int
	finished bool
	err      error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, _ := docStyle.GetFrameSize()
		m.progress.Width = min(msg.Width-h, maxWidth)
	case progressMsg:
		m.done, m.total = msg.done, msg.total
	case finishedMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.title + "\n\n")
	b.WriteString(m.progress.ViewAs(m.percent()) + "\n\n")
	switch {
	case m.finished && m.err != nil:
		b.WriteString(fmt.Sprintf("failed: %v\n", m.err))
	case m.finished:
		b.WriteString(fmt.Sprintf("%d rows done\n", m.done))
	default:
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d rows - q to cancel", m.done, m.total)))
	}
	return docStyle.Render(b.String())
}

// ReportFunc is handed to the work function to publish progress
type ReportFunc func(done, total int)

// RunWithProgress runs work while drawing a progress bar in the terminal. Quitting the display
// cancels the context passed to work, and RunWithProgress returns work's error.
func RunWithProgress(ctx context.Context, title string, work func(ctx context.Context, report ReportFunc) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := model{title: title, progress: progress.New(progress.WithDefaultGradient())}
	p := tea.NewProgram(m)

	errc := make(chan error, 1)
	go func() {
		err := work(ctx, func(done, total int) {
			p.Send(progressMsg{done: done, total: total})
		})
		p.Send(finishedMsg{err: err})
		errc <- err
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errc
		return fmt.Errorf("running progress display: %w", err)
	}
	cancel()
	return <-errc
}
