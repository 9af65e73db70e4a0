package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"ntl/internal/config"
	"ntl/internal/domain"
	"ntl/internal/parser"
)

// TreeOptions controls how much of a run tree is printed
type TreeOptions struct {
	// Depth limits the levels printed below the run; 0 prints everything
	Depth int
	// FailuresOnly hides subtrees without failed tests
	FailuresOnly bool
}

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser parser.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to the colour-aware stdout
func NewFormatter(cfg *config.Config, p parser.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: p,
		out:    color.Output,
	}
}

// SetOutput redirects everything the formatter prints
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// PrintRunStats prints the statistics table of a run and, when something
// failed, the tree of failing tests
func (f *Formatter) PrintRunStats(summary *domain.Summary) {
	meta := summary.Meta
	run := summary.Run
	w := f.out

	fmt.Fprint(w, "\n")
	fmt.Fprintln(w, cyan("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(w, cyan("║                      Test Run Statistics                      ║"))
	fmt.Fprintln(w, cyan("╚═══════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(w)

	rows := []struct {
		label string
		value string
		paint func(...interface{}) string
	}{
		{"Run ID", meta.RunID, fmt.Sprint},
		{"Record Files", humanize.Comma(int64(meta.RecordFiles)), fmt.Sprint},
		{"Failed Files", humanize.Comma(int64(meta.FailedFiles)), red},
		{"Test Cases", humanize.Comma(int64(run.Total)), fmt.Sprint},
		{"Passed", humanize.Comma(int64(run.Passed)), green},
		{"Failed", humanize.Comma(int64(run.Failed)), red},
		{"Skipped", humanize.Comma(int64(run.Skipped)), yellow},
		{"Inconclusive", humanize.Comma(int64(run.Inconclusive)), yellow},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), fmt.Sprint},
		{"Workers", humanize.Comma(int64(meta.Workers)), fmt.Sprint},
		{"Timestamp", meta.Timestamp, fmt.Sprint},
	}

	fmt.Fprintln(w, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(w, "│ %-31s │ %s │\n", row.label, row.paint(fmt.Sprintf("%-27s", row.value)))
		if i < len(rows)-1 {
			fmt.Fprintln(w, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(w, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(w)
	if run.Failed == 0 {
		fmt.Fprintln(w, green("✓ All tests passed!"))
		return
	}
	fmt.Fprintln(w, red(fmt.Sprintf("✗ %d of %d test case(s) failed", run.Failed, run.Total)))
	fmt.Fprintln(w)
	f.RenderTree(w, run, TreeOptions{FailuresOnly: true})
}

// PrintTree prints the namespace tree of a saved run
func (f *Formatter) PrintTree(summary *domain.Summary, depth int) {
	if ts, err := time.Parse(time.RFC3339, summary.Meta.Timestamp); err == nil {
		fmt.Fprintln(f.out, gray("Last run "+humanize.Time(ts)))
	}
	f.RenderTree(f.out, summary.Run, TreeOptions{Depth: depth})
}

// RenderTree writes run and its descendants as an indented tree
func (f *Formatter) RenderTree(w io.Writer, run *domain.Node, opts TreeOptions) {
	fmt.Fprintln(w, runLabel(run))
	renderChildren(w, run.Children, "", 1, opts)
}

func renderChildren(w io.Writer, nodes []*domain.Node, prefix string, level int, opts TreeOptions) {
	visible := nodes
	if opts.FailuresOnly {
		visible = nil
		for _, n := range nodes {
			if n.Failed > 0 {
				visible = append(visible, n)
			}
		}
	}

	for i, node := range visible {
		connector, next := "├── ", "│   "
		if i == len(visible)-1 {
			connector, next = "└── ", "    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, nodeLabel(node))

		if opts.Depth > 0 && level >= opts.Depth {
			continue
		}
		renderChildren(w, node.Children, prefix+next, level+1, opts)
	}
}

func runLabel(run *domain.Node) string {
	label := fmt.Sprintf("Run %s: %d test(s), %d passed, %d failed, %d skipped, %d inconclusive in %s",
		run.ID, run.Total, run.Passed, run.Failed, run.Skipped, run.Inconclusive, run.Duration.Round(time.Millisecond))
	if run.Failed > 0 {
		return red(label)
	}
	return green(label)
}

func nodeLabel(node *domain.Node) string {
	if node.Case != nil {
		switch node.Case.Outcome {
		case domain.OutcomePassed:
			return green("✓ " + node.Name)
		case domain.OutcomeFailed:
			return red("✗ " + node.Name)
		case domain.OutcomeSkipped:
			return yellow("○ " + node.Name)
		default:
			return gray("? " + node.Name)
		}
	}

	counts := fmt.Sprintf("[%d/%d]", node.Passed, node.Total)
	if node.Failed > 0 {
		return red(node.Name) + " " + red(counts)
	}
	return cyan(node.Name) + " " + gray(counts)
}

// PrintFileList prints record files, optionally with the tests each one holds.
// Failed tests are marked with [F].
func (f *Formatter) PrintFileList(files []string, showTestCases bool) {
	w := f.out

	if !showTestCases {
		fmt.Fprintln(w, green(fmt.Sprintf("Found %d record file(s):", len(files))))
		fmt.Fprintln(w)
		for i, file := range files {
			connector := "├── "
			if i == len(files)-1 {
				connector = "└── "
			}
			fmt.Fprintln(w, cyan(connector+f.relPath(file)))
		}
		return
	}

	fmt.Fprintln(w, green(fmt.Sprintf("Found %d record file(s) with test cases:", len(files))))
	fmt.Fprintln(w)
	for i, file := range files {
		isLastFile := i == len(files)-1
		connector, childPrefix := "├── ", "│   "
		if isLastFile {
			connector, childPrefix = "└── ", "    "
		}
		fmt.Fprintln(w, cyan(connector+f.relPath(file)))

		records, err := f.parser.ParseFile(file)
		switch {
		case err != nil:
			fmt.Fprintf(w, "%s└── %s\n", childPrefix, red(fmt.Sprintf("error reading record file: %v", err)))
		case len(records) == 0:
			fmt.Fprintf(w, "%s└── %s\n", childPrefix, red("(no test cases found)"))
		default:
			for j, record := range records {
				caseConnector := "├── "
				if j == len(records)-1 {
					caseConnector = "└── "
				}
				marker := ""
				if record.Outcome == domain.OutcomeFailed {
					marker = " " + red("[F]")
				}
				fmt.Fprintf(w, "%s%s%s%s\n", childPrefix, caseConnector, yellow(record.FullyQualifiedName), marker)
			}
		}

		if !isLastFile {
			fmt.Fprintln(w)
		}
	}
}

func (f *Formatter) relPath(path string) string {
	if f.config == nil {
		return path
	}
	rel, err := filepath.Rel(f.config.ProjectPath, path)
	if err != nil {
		return path
	}
	return rel
}
