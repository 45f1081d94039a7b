package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kimaireport/config"
	"kimaireport/internal/logutil"
	"kimaireport/kimai"
	"kimaireport/output"
	"kimaireport/report"
)

var (
	dumpStartDate string
	dumpEndDate   string
	dumpFormat    string
	dumpOutputDir string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump every timesheet in the window, grouped by project",
	Long: `Fetch all timesheets in the reporting window regardless of customer or
project and write a single workbook with one sheet per project, in first
appearance order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		log := logutil.NewLogger(cfg.Log.Level)
		defer log.Sync()

		client, err := kimai.NewClient(kimai.ClientConfig{
			BaseURL:  cfg.Kimai.URL,
			APIToken: cfg.Kimai.Token,
		})
		if err != nil {
			return err
		}

		writer, err := output.WriterForFormat(dumpFormat)
		if err != nil {
			return err
		}

		outDir := cfg.Output.Dir
		if dumpOutputDir != "" {
			outDir = dumpOutputDir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", outDir, err)
		}

		now := time.Now()
		window := report.NewWindow(dumpStartDate, dumpEndDate, now)

		assembler := report.NewAssembler(client, log)
		sheets := assembler.AssembleByProject(cmd.Context(), window)
		if len(sheets) == 0 {
			return nil
		}

		path := filepath.Join(outDir, fmt.Sprintf(
			"timesheets_by_project_%s.%s",
			now.Format("20060102_150405"),
			output.Extension(dumpFormat),
		))
		if err := writer.Write(path, sheets); err != nil {
			log.Error("write report failed", zap.String("path", path), zap.Error(err))
			return nil
		}
		log.Info("report written", zap.String("path", path), zap.Int("sheets", len(sheets)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVar(&dumpStartDate, "start_date", "", "Window start (YYYY-MM-DD, default: first day of previous month)")
	dumpCmd.Flags().StringVar(&dumpEndDate, "end_date", "", "Window end (YYYY-MM-DD, default: last day of previous month)")
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "excel", "Output format: excel|csv")
	dumpCmd.Flags().StringVarP(&dumpOutputDir, "output", "o", "", "Output directory (default from config)")
}
