package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mergington/internal/client/api"
	"mergington/internal/client/controller"
	"mergington/internal/client/enroll"
	"mergington/internal/client/notify"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	fullStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	enrolledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyles  = map[notify.Kind]lipgloss.Style{
		notify.KindSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		notify.KindError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

// RunBrowse starts the interactive catalog view, blocking until the user
// exits or the session is invalidated.
func RunBrowse(ctrl *controller.Controller, id api.Identity) error {
	model := newBrowseModel(ctrl, id)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*browseModel); ok && m.sessionLost {
		return errors.New("session expired; run 'portal login' again")
	}
	return nil
}

type catalogMsg struct {
	rows []enroll.Row
}

type catalogErrMsg struct {
	err error
}

type commandDoneMsg struct {
	message string
	rows    []enroll.Row
	err     error
}

type tickMsg time.Time

type browseModel struct {
	vm       *enroll.ViewModel
	identity api.Identity
	notices  *notify.Channel

	rows    []enroll.Row
	cursor  int
	errText string

	// busy guards against double-submitting a command before the previous
	// one and its catalog refresh have settled.
	busy        bool
	sessionLost bool

	spin spinner.Model
}

func newBrowseModel(ctrl *controller.Controller, id api.Identity) *browseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))

	return &browseModel{
		vm: &enroll.ViewModel{
			API:        ctrl.API,
			Store:      ctrl.Store,
			Invalidate: ctrl.Invalidate,
		},
		identity: id,
		notices:  notify.NewChannel(),
		spin:     sp,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCatalog(), m.spin.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *browseModel) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		catalog, err := m.vm.FetchCatalog(context.Background())
		if err != nil {
			return catalogErrMsg{err: err}
		}
		return catalogMsg{rows: m.vm.Rows(catalog)}
	}
}

func (m *browseModel) runCommand(row enroll.Row) tea.Cmd {
	return func() tea.Msg {
		var (
			message string
			catalog api.Catalog
			err     error
		)
		if row.CanLeave {
			message, catalog, err = m.vm.Unregister(context.Background(), row.Name)
		} else {
			message, catalog, err = m.vm.Signup(context.Background(), row.Name)
		}
		done := commandDoneMsg{message: message, err: err}
		if catalog != nil {
			done.rows = m.vm.Rows(catalog)
		}
		return done
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "r":
			if !m.busy {
				m.busy = true
				return m, tea.Batch(m.fetchCatalog(), m.spin.Tick)
			}
		case "enter":
			// Ignore input while a command is in flight
			if m.busy || m.cursor >= len(m.rows) {
				return m, nil
			}
			row := m.rows[m.cursor]
			if !row.CanJoin && !row.CanLeave {
				notice := "Only students can sign up for activities"
				if row.Full {
					notice = "Activity is full"
				}
				m.notices.Show(notice, notify.KindError)
				return m, nil
			}
			m.busy = true
			return m, tea.Batch(m.runCommand(row), m.spin.Tick)
		}

	case catalogMsg:
		m.busy = false
		m.errText = ""
		m.rows = msg.rows
		if m.cursor >= len(m.rows) && len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}

	case catalogErrMsg:
		m.busy = false
		if errors.Is(msg.err, api.ErrSessionInvalid) {
			m.sessionLost = true
			return m, tea.Quit
		}
		m.errText = "Could not load activities. Press r to retry."

	case commandDoneMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionInvalid) {
				m.sessionLost = true
				return m, tea.Quit
			}
			m.notices.Show(msg.err.Error(), notify.KindError)
			return m, nil
		}
		m.notices.Show(msg.message, notify.KindSuccess)
		if msg.rows != nil {
			m.rows = msg.rows
		}

	case tickMsg:
		// Periodic repaint so expired notifications disappear on time
		return m, tick()

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Mergington High Activities - %s (%s)", m.identity.FullName, m.identity.Role)))
	b.WriteString("\n\n")

	if m.errText != "" {
		b.WriteString(fullStyle.Render(m.errText))
		b.WriteString("\n")
	} else if len(m.rows) == 0 {
		b.WriteString(helpStyle.Render("Loading activities..."))
		b.WriteString("\n")
	}

	for i, row := range m.rows {
		line := fmt.Sprintf("%-28s %-32s %d/%d spots left %s",
			row.Name, row.Schedule, row.SpotsLeft, row.MaxParticipants, rowBadge(row))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(m.spin.View() + " working...")
	default:
		if n, ok := m.notices.Current(); ok {
			b.WriteString(noticeStyles[n.Kind].Render(n.Text))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("up/down move · enter join/leave · r refresh · q quit"))
	return b.String()
}

func rowBadge(row enroll.Row) string {
	switch {
	case row.CanLeave:
		return enrolledStyle.Render("[enrolled]")
	case row.Full:
		return fullStyle.Render("[full]")
	default:
		return ""
	}
}
