package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nssk/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the output directory, Sonarr, and ntfy are reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("NSSK Check", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))

			results := preflight.RunAll(cmd.Context(), cfg)
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if cfg.Notifications.NtfyTopic == "" {
				fmt.Fprintln(out, renderStatusLine("ntfy", statusWarn, "not configured", colorize))
			}
			if !preflight.AllPassed(results) {
				return fmt.Errorf("%d check(s) failed", countFailed(results))
			}
			return nil
		},
	}
}

func countFailed(results []preflight.Result) int {
	failed := 0
	for _, result := range results {
		if !result.Passed {
			failed++
		}
	}
	return failed
}
