package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/config"
	"github.com/krcglobal/gbms/internal/health"
	"github.com/krcglobal/gbms/internal/ux"
)

// DoctorReport is the output of the doctor command.
type DoctorReport struct {
	Status health.Status    `json:"status" yaml:"status"`
	Checks []*health.Result `json:"checks" yaml:"checks"`
}

func newDoctorCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, storage, backend and session",
		Long: `Run the client diagnostics: validate the configuration, round trip a
value through local storage, call the backend /health endpoint and report
the login state. In demo mode an unreachable backend is only degraded.

The command fails when any check is unhealthy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.App()
			if err != nil {
				return err
			}

			m := health.NewManager().WithTimeout(app.Config.API.Timeout)
			m.AddChecker(health.NewConfigChecker(app.Config))
			m.AddChecker(health.NewStorageChecker(app.Store, app.Config.StorageFile()))
			m.AddChecker(health.NewBackendChecker(app.Client, app.Client.BaseURL(), app.Config.Auth.Mode == config.AuthModeAPI))
			m.AddChecker(health.NewSessionChecker(app.Auth))

			results := m.Check(ctx)
			report := DoctorReport{Status: health.OverallStatus(results), Checks: results}

			t := ux.NewTable("CHECK", "STATUS", "MESSAGE", "LATENCY")
			for _, r := range results {
				t.Append(r.Name, r.Status.String(), r.Message, r.Latency.Round(time.Millisecond).String())
			}
			if err := cc.Print(cmd, t, report); err != nil {
				return err
			}

			if report.Status == health.StatusUnhealthy {
				return fmt.Errorf("doctor found unhealthy checks")
			}
			return nil
		},
	}
}
