package commands

import (
	"ntl/internal/cli"
	"ntl/internal/config"
	"ntl/internal/discovery"
	"ntl/internal/execution"
	"ntl/internal/migration"
	"ntl/internal/parser"
	"ntl/internal/storage"
	"ntl/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Report   *ReportCommand
	List     *ListCommand
	Tree     *TreeCommand
	Failures *FailuresCommand
	Migrate  *MigrateCommand
	Publish  *PublishCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	scanner := discovery.NewScanner(cfg.ResultSuffixes, cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	recordParser := parser.NewRecordParser()
	loader := execution.NewLoader(recordParser)
	scheduler := execution.NewRoundRobinScheduler()
	executor := execution.NewWorkerPool(cfg, loader, scheduler)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, recordParser)
	dbManager := migration.NewDatabaseManager(cfg)
	migrator := migration.NewSchemaMigrator(cfg, dbManager)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)
	publisher := NewHistoryPublisher(cfg)

	return &Commands{
		Report:   NewReportCommand(cfg, scanner, filter, executor, jsonStorage, formatter, errorViewer, publisher),
		List:     NewListCommand(cfg, scanner, filter, formatter),
		Tree:     NewTreeCommand(cfg, jsonStorage, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
		Migrate:  NewMigrateCommand(cfg, migrator),
		Publish:  NewPublishCommand(cfg, jsonStorage, publisher),
	}
}

// Register registers all commands with cobra. The configuration is loaded
// and the commands are wired once flags have been parsed.
func Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	var c *Commands

	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", config.DefaultProjectPath, "Project directory holding .ntl.yaml and .env")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print a warning for every record left out of the report")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ProjectPath)
		if err != nil {
			return err
		}
		*cfg = *loaded
		cfg.ApplyFlags(flags.ToConfigFlags())
		if err := cfg.Validate(); err != nil {
			return err
		}
		c = NewCommands(cfg)
		return nil
	}
	rootCmd.SilenceUsage = true

	// Report command
	reportCmd := &cobra.Command{
		Use:     "report [record files...]",
		Aliases: []string{"run"},
		Short:   "Aggregate test result records into a report",
		Long:    "Load test result records in parallel, build the namespace tree and write an NUnit XML report (or TeamCity service messages)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Report.Execute(cmd, args)
		},
	}
	reportCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of processors to use (default from config, 4)")
	reportCmd.Flags().StringVarP(&flags.ResultsPath, "results-path", "t", "", "Path to the folder where record discovery should start")
	reportCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter record files by name pattern (supports wildcards, e.g., '*Api*')")
	reportCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Report file path (default <output_dir>/TestResults.xml)")
	reportCmd.Flags().StringVar(&flags.Format, "format", "", "Report format: nunit or teamcity")
	reportCmd.Flags().StringVar(&flags.RunID, "run-id", "", "Identifier written on the test-run element")
	reportCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop loading after the first record file that fails to load")
	reportCmd.Flags().BoolVar(&flags.Publish, "publish", false, "Publish the run to the MySQL history database")
	reportCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run has failed tests")
	rootCmd.AddCommand(reportCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered record files",
		Long:  "Scan and list record files without building a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.List.Execute(cmd, args)
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter record files by name pattern (supports wildcards, e.g., '*Api*')")
	listCmd.Flags().StringVarP(&flags.ResultsPath, "results-path", "t", "", "Path to the folder where record discovery should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List the tests inside each record file")
	rootCmd.AddCommand(listCmd)

	// Tree command
	treeCmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the namespace tree of the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Tree.Execute(cmd, args)
		},
	}
	treeCmd.Flags().IntVar(&flags.Depth, "depth", config.DefaultTreeDepth, "Levels to print below the run (0 prints everything)")
	rootCmd.AddCommand(treeCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display the failed tests of the last run in an interactive viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Failures.Execute(cmd, args)
		},
	}
	rootCmd.AddCommand(failuresCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the run history database",
		Long:  "Create the MySQL history database and its tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Migrate.Execute(cmd, args)
		},
	}
	rootCmd.AddCommand(migrateCmd)

	// Publish command
	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the last run to the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Publish.Execute(cmd, args)
		},
	}
	rootCmd.AddCommand(publishCmd)
}
