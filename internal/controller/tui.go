package controller

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "scout.dev/pkg/scout/internal/model"
)

var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	foundStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	originStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	rootStyle    = lipgloss.NewStyle().Bold(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayResolutions opens an interactive browser over the report.
func (t *TUI) DisplayResolutions(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	items := make([]list.Item, 0, len(report.Resolutions))
	for _, res := range report.Resolutions {
		items = append(items, resolutionItem{res: res})
	}

	model := newResolutionsModel(items, report)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayPaths renders the resolver state as a static styled block;
// there is nothing to browse interactively.
func (t *TUI) DisplayPaths(ctx context.Context, state PathsState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	root := state.Root
	if root == "" {
		root = "(none)"
	}

	out := rootStyle.Render("Root: ") + root + "\n"

	for i, p := range state.Explicit {
		out += fmt.Sprintf("%3d  %s\n", i, p)
	}

	if state.Joined != "" {
		out += originStyle.Render("Search order: "+state.Joined) + "\n"
	}

	_, err := fmt.Fprint(t.output, docStyle.Render(out)+"\n")

	return err
}

// resolutionItem adapts a Resolution to the bubbles list item contract.
type resolutionItem struct {
	res m.Resolution
}

func (i resolutionItem) Title() string {
	marker := foundStyle.Render("✓")
	if !i.res.Found {
		marker = missingStyle.Render("✗")
	}

	return fmt.Sprintf("%s %s", marker, i.res.Ref)
}

func (i resolutionItem) Description() string {
	if !i.res.Found {
		return missingStyle.Render("not found")
	}

	desc := string(i.res.Qualified)
	if i.res.Origin != "" {
		desc += originStyle.Render(fmt.Sprintf("  (via %s)", i.res.Origin))
	}

	return desc
}

func (i resolutionItem) FilterValue() string {
	return string(i.res.Ref)
}

// resolutionsModel is the Bubble Tea model for browsing resolutions.
type resolutionsModel struct {
	list list.Model
}

func newResolutionsModel(items []list.Item, report m.Report) resolutionsModel {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf(
		"Resolutions: %d found, %d missing",
		report.FoundCount(), report.MissingCount(),
	)

	return resolutionsModel{list: l}
}

func (rm resolutionsModel) Init() tea.Cmd {
	return nil
}

func (rm resolutionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return rm, tea.Quit
		}

	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		rm.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	rm.list, cmd = rm.list.Update(msg)

	return rm, cmd
}

func (rm resolutionsModel) View() string {
	return docStyle.Render(rm.list.View())
}
