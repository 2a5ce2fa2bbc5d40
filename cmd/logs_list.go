package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/neptaco/unilog/pkg/debuglog"
	"github.com/neptaco/unilog/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	sizeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("43"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exported debug log files, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLogsList,
}

func init() {
	logsCmd.AddCommand(logsListCmd)
}

func runLogsList(cmd *cobra.Command, args []string) error {
	dir, err := logsDir()
	if err != nil {
		return err
	}

	files, err := debuglog.New(dir).Files()
	if err != nil {
		return fmt.Errorf("failed to list log files: %w", err)
	}

	if len(files) == 0 {
		ui.Info("No log files in %s", dir)
		return nil
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		for _, f := range files {
			fmt.Printf("%s\t%d\t%s\n", f.Name, f.Size, f.ModTime.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.Name, formatSize(f.Size), f.ModTime.Format("2006-01-02 15:04:05")})
	}

	t := table.New().
		Headers("NAME", "SIZE", "MODIFIED").
		Rows(rows...).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case 0:
				return nameStyle
			case 1:
				return sizeStyle
			}
			return timeStyle
		})

	fmt.Println(t)
	ui.Muted("%d file(s) in %s", len(files), dir)
	return nil
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
