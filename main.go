package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/odak/internal/config"
	"github.com/sadopc/odak/internal/export"
	"github.com/sadopc/odak/internal/stats"
	"github.com/sadopc/odak/internal/store"
	"github.com/sadopc/odak/internal/tui"
)

var (
	exportFormat string
	exportOutput string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "odak",
		Short:         "Terminal focus timer with session reports",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUI,
	}

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(s, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the session summary without the TUI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			sessions, err := s.ListSessions()
			if err != nil {
				return err
			}
			summary := stats.Aggregate(sessions, time.Now())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Today:        %s\n", formatSeconds(summary.TodayFocusSeconds))
			fmt.Fprintf(out, "Total:        %s\n", formatSeconds(summary.TotalFocusSeconds))
			fmt.Fprintf(out, "Distractions: %d\n", summary.TotalDistractions)
			if len(summary.Categories) > 0 {
				fmt.Fprintln(out)
				for _, c := range summary.Categories {
					fmt.Fprintf(out, "  %-16s %s  %3d%%\n", c.Category, formatSeconds(c.TotalSeconds), c.Percentage)
				}
			}
			fmt.Fprintln(out)
			for _, d := range summary.Last7Days {
				fmt.Fprintf(out, "  %s %7.1f min\n", d.Label, d.Minutes)
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the session history to CSV or JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			sessions, err := s.ListSessions()
			if err != nil {
				return err
			}

			path := exportOutput
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dateStr := time.Now().Format("2006-01-02")
				path = filepath.Join(home, fmt.Sprintf("odak-export-%s.%s", dateStr, exportFormat))
			}

			switch exportFormat {
			case "csv":
				err = export.ToCSV(sessions, path)
			case "json":
				err = export.ToJSON(sessions, path)
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(sessions), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or json")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path")

	return cmd
}

func openStore() (*store.Store, error) {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func formatSeconds(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
