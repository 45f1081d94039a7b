package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
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
	generateProject      string
	generateCustomer     string
	generateProjectList  string
	generateCustomerList string
	generateStartDate    string
	generateEndDate      string
	generateFormat       string
	generateOutputDir    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate per-customer and per-project timesheet workbooks",
	Long: `Generate timesheet reports for batches of customers and projects.

Entity names come from --customer/--project and/or newline-delimited list
files. The customer flow and the project flow run concurrently and each
writes its own timestamped workbook; an entity whose name cannot be
resolved is skipped, and a flow that produces no sheet writes no file.

Without --start_date/--end_date the window defaults to the previous
calendar month.`,
	Example: `
  # Single customer, previous calendar month
  kimaireport generate --customer "Acme Corp"

  # Batch files plus one extra project, explicit window
  kimaireport generate --customer-list customers.txt --project-list projects.txt \
    --project "Internal Tools" --start_date 2025-02-01 --end_date 2025-02-28
`,
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

		customers, err := report.LoadBatch(generateCustomerList, generateCustomer)
		if err != nil {
			return err
		}
		projects, err := report.LoadBatch(generateProjectList, generateProject)
		if err != nil {
			return err
		}

		writer, err := output.WriterForFormat(generateFormat)
		if err != nil {
			return err
		}

		outDir := cfg.Output.Dir
		if generateOutputDir != "" {
			outDir = generateOutputDir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", outDir, err)
		}

		now := time.Now()
		window := report.NewWindow(generateStartDate, generateEndDate, now)
		stamp := now.Format("20060102_150405")
		extension := output.Extension(generateFormat)

		flows := []struct {
			kind  kimai.EntityKind
			names []string
		}{
			{kimai.KindCustomer, customers},
			{kimai.KindProject, projects},
		}

		// The two flows share no mutable state: each gets its own
		// assembler and resolver cache, and writes its own file.
		var wg sync.WaitGroup
		for _, flow := range flows {
			wg.Add(1)
			go func(kind kimai.EntityKind, names []string) {
				defer wg.Done()
				path := filepath.Join(outDir, fmt.Sprintf("%s_timesheets_%s.%s", kind, stamp, extension))
				runFlow(cmd.Context(), client, writer, log.Named(string(kind)), kind, names, window, path)
			}(flow.kind, flow.names)
		}
		wg.Wait()
		return nil
	},
}

func runFlow(
	ctx context.Context,
	client kimai.Client,
	writer output.Writer,
	log *zap.Logger,
	kind kimai.EntityKind,
	names []string,
	window report.Window,
	path string,
) {
	assembler := report.NewAssembler(client, log)
	sheets := assembler.Assemble(ctx, names, kind, window)
	if len(sheets) == 0 {
		return
	}

	if err := writer.Write(path, sheets); err != nil {
		log.Error("write report failed", zap.String("path", path), zap.Error(err))
		return
	}
	log.Info("report written", zap.String("path", path), zap.Int("sheets", len(sheets)))
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateProject, "project", "", "Name of a project to fetch timesheets for")
	generateCmd.Flags().StringVar(&generateCustomer, "customer", "", "Name of a customer to fetch timesheets for")
	generateCmd.Flags().StringVar(&generateProjectList, "project-list", "", "File with one project name per line")
	generateCmd.Flags().StringVar(&generateCustomerList, "customer-list", "", "File with one customer name per line")
	generateCmd.Flags().StringVar(&generateStartDate, "start_date", "", "Window start (YYYY-MM-DD, default: first day of previous month)")
	generateCmd.Flags().StringVar(&generateEndDate, "end_date", "", "Window end (YYYY-MM-DD, default: last day of previous month)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "excel", "Output format: excel|csv")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output", "o", "", "Output directory (default from config)")
}
