package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/netopsio/maintreport/internal/bootstrap"
	"github.com/netopsio/maintreport/internal/config"
	"github.com/netopsio/maintreport/internal/domain"
	"github.com/netopsio/maintreport/internal/loader"
	"github.com/netopsio/maintreport/internal/logger"
	"github.com/netopsio/maintreport/internal/report"
	"github.com/netopsio/maintreport/internal/service"
)

// defaultOutputTemplate matches the report filename convention: the trailing
// date token is replaced with the current date on every render.
const defaultOutputTemplate = "cisco_maintenance_report_YYYY-mm-dd.xlsx"

func main() {
	root := &cobra.Command{
		Use:          "maintreport",
		Short:        "Render Cisco maintenance and EOX data into a styled Excel report",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRenderCmd() *cobra.Command {
	var (
		modeFlag      string
		inputFlag     string
		secondaryFlag string
		outputFlag    string
		profileFlag   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one report from a finished record set",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := config.LoadEnvConfig(); err != nil {
				return err
			}
			logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)

			mode, err := domain.ParseReportMode(modeFlag)
			if err != nil {
				return err
			}

			profilePath := profileFlag
			if profilePath == "" {
				profilePath = config.DefaultEnvConfig.REPORT_PROFILE_PATH
			}
			profile, err := report.LoadProfile(profilePath)
			if err != nil {
				return err
			}

			var source domain.RecordSource = loader.FileSource{Path: inputFlag, Sheet: profile.SheetName}
			records, err := source.Records(ctx)
			if err != nil {
				return err
			}

			var secondary []domain.Record
			if secondaryFlag != "" {
				source = loader.FileSource{Path: secondaryFlag}
				if secondary, err = source.Records(ctx); err != nil {
					return err
				}
			}

			output := outputFlag
			if output == "" {
				output = filepath.Join(config.DefaultEnvConfig.REPORT_OUTPUT_DIR, defaultOutputTemplate)
			}
			if dated, err := service.ReportFilename(output, time.Now()); err == nil {
				output = dated
			} else if !errors.Is(err, domain.ErrConfig) {
				return err
			}

			svc := service.NewReportService(profile)
			if err := svc.BuildReport(ctx, records, secondary, mode, output); err != nil {
				logger.Error(ctx, "report generation failed", err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved %d records to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", string(domain.ModeDynamic), "report mode: dynamic, dynamic_tss, static or static_tss")
	cmd.Flags().StringVar(&inputFlag, "input", "", "record set to render (.json or .xlsx)")
	cmd.Flags().StringVar(&secondaryFlag, "secondary", "", "optional secondary maintenance data set (.json or .xlsx)")
	cmd.Flags().StringVar(&outputFlag, "output", "", "output file; a trailing _YYYY-mm-dd token is replaced with today")
	cmd.Flags().StringVar(&profileFlag, "profile", "", "report profile YAML (default from REPORT_PROFILE_PATH)")
	cmd.MarkFlagRequired("input")

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve report rendering over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			app := bootstrap.NewApp()
			if err := app.Initialize(ctx); err != nil {
				return err
			}
			return app.Run()
		},
	}
}
