package commands

import (
	"bytes"
	"fmt"

	"ntl/internal/aggregate"
	"ntl/internal/config"
	"ntl/internal/discovery"
	"ntl/internal/domain"
	"ntl/internal/execution"
	"ntl/internal/report"
	"ntl/internal/storage"
	"ntl/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ReportCommand handles the report command
type ReportCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	executor  execution.Executor
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
	publisher Publisher
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	executor execution.Executor,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	publisher Publisher,
) *ReportCommand {
	return &ReportCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		executor:  executor,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
		publisher: publisher,
	}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := rc.recordFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No record files found, writing an empty report")
	}

	teamCity := rc.config.Format == config.FormatTeamCity
	if len(files) > 0 && !teamCity {
		rc.executor.SetProgress(ui.NewProgressBar(len(files)))
	}

	records, elapsed, loadErr := rc.executor.ExecuteWithOptions(files, rc.config.Flags.FailFast)
	failedFiles := countErrors(loadErr)
	if loadErr != nil {
		color.Red("✗ %d record file(s) could not be loaded:", failedFiles)
		color.Red("%v", loadErr)
		if rc.config.Flags.FailFast {
			return fmt.Errorf("stopped after a record file failed to load")
		}
	}

	malformed := 0
	aggregator := aggregate.New(
		aggregate.WithRunID(rc.config.RunID),
		aggregate.WithMalformedHandler(func(record domain.Record, err error) {
			malformed++
			if rc.config.Flags.Verbose {
				color.Yellow("skipping %q: %v", record.FullyQualifiedName, err)
			}
		}),
	)
	run := aggregator.BuildRun(records)
	if malformed > 0 {
		color.Yellow("%d record(s) left out of the report because their test name could not be parsed", malformed)
	}

	var doc bytes.Buffer
	if err := rc.writer().Write(&doc, run); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	summary := storage.NewSummary(run, len(files), failedFiles, elapsed, rc.config.Processors)
	if teamCity && rc.config.Flags.Output == "" {
		if _, err := cmd.OutOrStdout().Write(doc.Bytes()); err != nil {
			return fmt.Errorf("write service messages: %w", err)
		}
	} else {
		if err := rc.storage.SaveReport(doc.Bytes()); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		summary.Meta.ReportPath = rc.config.GetReportPath()
	}

	if err := rc.storage.Save(summary); err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}

	if !teamCity {
		rc.formatter.PrintRunStats(summary)
		color.Green("Report written to %s", summary.Meta.ReportPath)
	}

	if rc.config.Flags.Publish {
		id, err := rc.publisher.Publish(cmd.Context(), run)
		if err != nil {
			return fmt.Errorf("failed to publish run: %w", err)
		}
		color.Green("✓ Run published to history as %s", id)
	}

	if rc.config.Flags.OpenFailures && run.Failed > 0 {
		if err := rc.viewer.View(summary); err != nil {
			return err
		}
	}

	if loadErr != nil {
		return fmt.Errorf("%d record file(s) failed to load", failedFiles)
	}
	return nil
}

// recordFiles returns the explicit file arguments, or the discovered and
// filtered record files when none are given
func (rc *ReportCommand) recordFiles(args []string) ([]string, error) {
	if len(args) > 0 {
		return rc.filter.FilterByName(args, rc.config.Flags.NameFilter), nil
	}
	files, err := rc.scanner.Scan(rc.config.GetResultsPath())
	if err != nil {
		return nil, err
	}
	return rc.filter.FilterByName(files, rc.config.Flags.NameFilter), nil
}

func (rc *ReportCommand) writer() report.Writer {
	if rc.config.Format == config.FormatTeamCity {
		return report.NewTeamCityWriter()
	}
	return report.NewNUnitWriter()
}

// countErrors counts the errors joined into err
func countErrors(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}

