package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"studyreport/lib/browser"
	"studyreport/lib/config"
	"studyreport/lib/notify"
	"studyreport/lib/scrapers/ixl"
	"studyreport/lib/scrapers/mathacademy"
	"studyreport/lib/telemetry"
	"studyreport/services/reporter"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape both platforms and deliver the progress report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tel, err := telemetry.SetupFromEnv(ctx, "studyreport")
		if err != nil {
			slog.WarnContext(ctx, "telemetry setup failed, continuing without export", "err", err)
		}
		defer func() {
			if err := tel.Shutdown(context.Background()); err != nil {
				slog.Warn("telemetry shutdown failed", "err", err)
			}
		}()

		if missing := config.MissingVars(); len(missing) > 0 {
			// only the sub-operations that need these will fail; the
			// rest of the run still happens
			slog.WarnContext(ctx, "missing environment variables", "vars", missing)
		}
		env := config.FromEnv()
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}

		service := reporter.New(reporter.Options{
			Drivers: []reporter.Driver{
				ixl.New(ixl.Config{
					Username:        env.IXLUsername,
					Password:        env.IXLPassword,
					Subaccount:      settings.IXL.Subaccount,
					DateRangeLabel:  settings.IXL.DateRangeLabel,
					AnalyticsURL:    settings.IXL.AnalyticsURL,
					TroubleSpotsURL: settings.IXL.TroubleSpotsURL,
					Timeout:         settings.ElementTimeout(),
					SettleDelay:     settings.SettleDelay(),
					StaleRetryDelay: settings.StaleRetryDelay(),
				}),
				mathacademy.New(mathacademy.Config{
					Username:        env.MathAcademyUsername,
					Password:        env.MathAcademyPassword,
					StudentIDs:      env.MathAcademyStudentIDs,
					LoginURL:        settings.MathAcademy.LoginURL,
					BaseActivityURL: settings.MathAcademy.BaseActivityURL,
					Timeout:         settings.ElementTimeout(),
					SettleDelay:     settings.SettleDelay(),
				}),
			},
			Notifier: notify.New(notify.Config{
				Host:     settings.SMTP.Host,
				Port:     settings.SMTP.Port,
				User:     env.GmailUser,
				Password: env.GmailAppPassword,
			}),
			Recipients: env.Recipients,
			SendEmail:  env.SendEmail,
			Browser: browser.Options{
				Headless:      env.Headless,
				ScreenshotDir: settings.ScreenshotDir,
			},
			ReportDir: settings.ScreenshotDir,
		})
		return service.Run(ctx)
	},
}
