package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"
)

// Style definitions for the TUI.
var (
	tuiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	tuiVisibleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	tuiHiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiGaugeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

	tuiHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui <page.html>",
	Short: "Scroll a page interactively and watch triggers fire",
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	p, err := loadPage(args[0])
	if err != nil {
		return err
	}

	m := tuiModel{page: p, path: args[0]}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// tuiModel drives the interactive scroller. All scrolling happens
// synchronously in Update, so the trigger list in View always reflects the
// current position.
type tuiModel struct {
	page   *page
	path   string
	width  int
	height int
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		win := m.page.win
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			win.ScrollBy(-40)
		case "down", "j":
			win.ScrollBy(40)
		case "pgup":
			win.ScrollBy(-win.Engine().ViewportHeight())
		case "pgdown", " ":
			win.ScrollBy(win.Engine().ViewportHeight())
		case "g", "home":
			win.ScrollTo(0)
		case "G", "end":
			win.ScrollTo(win.MaxScroll())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m tuiModel) View() tea.View {
	win := m.page.win

	var b strings.Builder
	b.WriteString(tuiTitleStyle.Render("scrollfx — " + m.path))
	b.WriteString("\n\n")
	b.WriteString(m.gauge())
	b.WriteString("\n\n")

	if len(m.page.attachments) == 0 {
		b.WriteString(tuiHiddenStyle.Render("no triggers on this page"))
		b.WriteString("\n")
	}
	for _, a := range m.page.attachments {
		line := fmt.Sprintf("%-16s %-12s trigger at %6.0fpx", a.ID(), a.Effect(), a.TriggerY())
		if a.Active() {
			b.WriteString(tuiVisibleStyle.Render("● " + line))
		} else {
			b.WriteString(tuiHiddenStyle.Render("○ " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("scroll %.0f / %.0f px\n", win.ScrollY(), win.MaxScroll()))
	b.WriteString(tuiHelpStyle.Render("j/k scroll · space page down · g/G top/bottom · q quit"))

	return tea.NewView(b.String())
}

// gauge renders the scroll position as a horizontal bar with the viewport
// band marked.
func (m tuiModel) gauge() string {
	win := m.page.win
	width := 50

	content := win.ContentHeight()
	if content <= 0 {
		return tuiGaugeStyle.Render("[" + strings.Repeat("█", width) + "]")
	}

	start := int(win.ScrollY() / content * float64(width))
	if start >= width {
		start = width - 1
	}
	end := int((win.ScrollY() + win.Engine().ViewportHeight()) / content * float64(width))
	if end > width {
		end = width
	}
	if end <= start {
		end = start + 1
	}

	bar := strings.Repeat("·", start) +
		strings.Repeat("█", end-start) +
		strings.Repeat("·", width-end)
	return tuiGaugeStyle.Render("[" + bar + "]")
}
