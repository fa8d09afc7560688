package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/launch/internal/doctor"
	"github.com/conn-castle/launch/internal/messages"
)

var runDoctorFunc = doctor.Run

func newDoctorCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			paths, configPath, err := global.resolvePaths()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, configPath)
			results := runDoctorFunc(cmd.Context(), doctor.Options{ConfigPath: configPath, Paths: paths})
			for _, r := range results {
				printResult(out, r)
			}
			_, _ = fmt.Fprintln(out)

			switch {
			case doctor.Failed(results):
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return errors.New(messages.DoctorFailureError)
			case doctor.Warned(results):
				_, _ = fmt.Fprintln(out, color.YellowString(messages.DoctorWarnSummary))
			default:
				_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			}
			return nil
		},
	}
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	for i, line := range strings.Split(recommendation, "\n") {
		if i == 0 {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
			continue
		}
		if line == "" {
			_, _ = fmt.Fprintln(out)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
	}
}
