package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"nssk/internal/services"
	"nssk/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var nowFlag string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Find upcoming season premieres and write the Kometa files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := workflow.RunOptions{DryRun: dryRun}
			if value := strings.TrimSpace(nowFlag); value != "" {
				pinned, err := time.Parse(time.RFC3339, value)
				if err != nil {
					return services.Wrap(services.ErrConfiguration, "run", "parse --now", value, err)
				}
				opts.Now = pinned
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderBanner(colorize))
			fmt.Fprintf(out, "future_days: %d\n", cfg.Selection.FutureDays)
			fmt.Fprintf(out, "skip_unmonitored: %t\n\n", cfg.Selection.SkipUnmonitoredEnabled())

			runner, err := workflow.NewRunner(cfg, logger)
			if err != nil {
				return err
			}
			report, err := runner.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printRunReport(out, report, colorize)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render the documents to stdout without writing files")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Reference time in RFC 3339 (defaults to the current time)")
	return cmd
}

func printRunReport(out io.Writer, report *workflow.Report, colorize bool) {
	if len(report.Matched) > 0 {
		fmt.Fprintln(out, paint(fmt.Sprintf("Shows with a new season starting within %d days:", report.WindowDays), ansiGreen, colorize))
		fmt.Fprintln(out, renderShowTable(report.Matched, colorize, text.FgGreen))
	} else {
		fmt.Fprintln(out, paint(fmt.Sprintf("No shows with new seasons starting within %d days (or all were skipped).", report.WindowDays), ansiRed, colorize))
	}

	if len(report.Skipped) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, paint("Skipped shows (unmonitored season):", ansiYellow, colorize))
		fmt.Fprintln(out, renderShowTable(report.Skipped, colorize, text.FgYellow))
	}

	fmt.Fprintln(out)
	if report.DryRun {
		for _, doc := range []struct {
			label  string
			output workflow.Output
		}{
			{"Overlay (" + report.Overlay.Path + ")", report.Overlay},
			{"Collection (" + report.Collection.Path + ")", report.Collection},
		} {
			for _, line := range renderSectionHeader(doc.label, colorize) {
				fmt.Fprintln(out, line)
			}
			if doc.output.Document.IsSuppressed() {
				fmt.Fprintln(out, "(not written: no matched show has a TVDB ID)")
			} else {
				fmt.Fprintln(out, strings.TrimRight(doc.output.Document.String(), "\n"))
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, "Dry run: no files written")
		return
	}

	fmt.Fprintf(out, "Created overlay file: %s\n", report.Overlay.Path)
	if report.Collection.Written {
		fmt.Fprintf(out, "Created collection file: %s\n", report.Collection.Path)
	} else {
		fmt.Fprintln(out, paint(fmt.Sprintf("Collection file not written (no matched show has a TVDB ID): %s", report.Collection.Path), ansiYellow, colorize))
	}
}
