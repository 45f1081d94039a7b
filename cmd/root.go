package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kimaireport/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kimaireport",
	Short: "Generate per-entity spreadsheet reports from a Kimai time-tracking API.",
	Long: `kimaireport pulls timesheet records from a Kimai-compatible HTTP API,
enriches each record with project, customer, user, and activity names, and
aggregates the result into spreadsheet workbooks with one sheet per entity.

The API base URL and bearer token are read from the environment:
  KIMAI_API_URL    base URL of the Kimai instance (e.g. https://kimai.example.com/api)
  KIMAI_API_TOKEN  API token of a user allowed to read all timesheets
`,
	Example: `
  # Report for one customer over the previous calendar month
  kimaireport generate --customer "Acme Corp"

  # Reports for customers and projects listed in batch files, fixed window
  kimaireport generate --customer-list customers.txt --project-list projects.txt \
    --start_date 2025-02-01 --end_date 2025-02-28

  # One workbook grouping every timesheet in the window by project
  kimaireport dump

  # CSV output instead of Excel
  kimaireport generate --customer "Acme Corp" --format csv
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.kimaireport.yaml, then ./.kimaireport.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".kimaireport" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kimaireport")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// The config file is optional; environment variables are enough.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
