package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "scout.dev/pkg/scout/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayResolutions prints the report as a table with a found/missing
// footer.
func (s *SimpleUI) DisplayResolutions(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderResolutionTable(report))

	return nil
}

func renderResolutionTable(report m.Report) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Reference", "Kind", "Resolved", "Origin"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, res := range report.Resolutions {
		resolved := string(res.Qualified)
		if !res.Found {
			resolved = "(not found)"
		}

		table.Append([]string{string(res.Ref), string(res.Kind), resolved, string(res.Origin)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(report.Resolutions)),
		"",
		fmt.Sprintf("Found %d", report.FoundCount()),
		fmt.Sprintf("Missing %d", report.MissingCount()),
	})

	table.Render()

	return buf.String()
}

// DisplayPaths prints the resolver state: root, indexed explicit paths
// and the joined search-order string.
func (s *SimpleUI) DisplayPaths(ctx context.Context, state PathsState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if state.Root != "" {
		s.printf("Root: %s\n", state.Root)
	} else {
		s.printf("Root: (none)\n")
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"#", "Explicit Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for i, p := range state.Explicit {
		table.Append([]string{fmt.Sprintf("%d", i), p})
	}

	table.Render()
	s.printf("\n%s", buf.String())

	if state.Joined != "" {
		s.printf("\nSearch order: %s\n", state.Joined)
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
