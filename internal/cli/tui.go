package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dominochain/pkg/domino"
	errs "github.com/matzehuels/dominochain/pkg/errors"
	"github.com/matzehuels/dominochain/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ChainModel - Interactive ring viewer
// =============================================================================

// ChainModel is the bubbletea model for browsing a solved ring.
// The cursor wraps around because the chain is closed.
type ChainModel struct {
	Source string
	Chain  domino.Chain
	Cursor int
	Height int
	Offset int
}

// NewChainModel creates a viewer for a found ring.
func NewChainModel(source string, chain domino.Chain) ChainModel {
	return ChainModel{
		Source: source,
		Chain:  chain,
		Height: 15,
	}
}

func (m ChainModel) Init() tea.Cmd {
	return nil
}

func (m ChainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Chain)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k", "left", "h":
			if n > 0 {
				m.Cursor = (m.Cursor - 1 + n) % n
			}
		case "down", "j", "right", "l":
			if n > 0 {
				m.Cursor = (m.Cursor + 1) % n
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			if n > 0 {
				m.Cursor = n - 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *ChainModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ChainModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Circular domino chain"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.Source))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Chain))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		next := m.Chain[(i+1)%len(m.Chain)]
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			m.Chain[i].String(),
			fmt.Sprintf("%d → %s", m.Chain[i].Second, next.String()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Tile", "Joins").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Chain))))

	return b.String()
}

// viewOutcome opens the ring viewer for a found chain, or prints the
// outcome when there is nothing to browse.
func (c *CLI) viewOutcome(cmd *cobra.Command, o outcome) error {
	if o.Err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Error: %s\n", errs.UserMessage(o.Err))
		return ErrReported
	}
	if !o.Result.Found {
		fmt.Fprintln(cmd.OutOrStdout(), o.Result.Message())
		return nil
	}

	p := tea.NewProgram(NewChainModel(o.Result.Source, o.Result.Chain),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), pipeline.SuccessPrefix+o.Result.Chain.String())
	return nil
}
