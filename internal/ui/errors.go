package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ntl/internal/config"
	"ntl/internal/domain"
	"ntl/internal/storage"
)

// maxStackLines is how much of a stack trace the details pane shows
const maxStackLines = 10

// FailedCase is a failed test case together with where it sits in the run
type FailedCase struct {
	Assembly string
	Fixture  string
	Node     *domain.Node
}

// CollectFailures lists the failed test cases of run in tree order
func CollectFailures(run *domain.Node) []FailedCase {
	var failures []FailedCase
	var assembly, fixture string

	run.Walk(func(node *domain.Node, depth int) bool {
		switch node.Kind {
		case domain.KindAssembly:
			assembly = node.FullName
		case domain.KindFixture:
			fixture = node.FullName
		case domain.KindTestCase:
			if node.Case != nil && node.Case.Outcome == domain.OutcomeFailed {
				failures = append(failures, FailedCase{Assembly: assembly, Fixture: fixture, Node: node})
			}
		}
		// nothing below a passing subtree can have failed
		return node.Failed > 0
	})

	return failures
}

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config, st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays the failures of a saved run. Toggling a failure resolved
// is written back through the storage.
func (ev *ErrorViewer) View(summary *domain.Summary) error {
	failures := CollectFailures(summary.Run)
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i, failure := range failures {
		list.AddItem(listItemText(failure, i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(" Test Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
			len(failures), countUnresolved(failures)))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			statsView.SetText(formatFailureStats(failures[index]))
			detailsView.SetText(formatFailureDetails(failures[index]))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() != 'r' && event.Rune() != 'R' {
				return event
			}
			index := list.GetCurrentItem()
			if index < 0 || index >= len(failures) {
				return nil
			}
			tc := failures[index].Node.Case
			tc.Resolved = !tc.Resolved
			list.SetItemText(index, listItemText(failures[index], index), "")
			updateHeader()
			updateDetails()
			if err := ev.storage.Save(summary); err != nil {
				statsView.SetText(fmt.Sprintf("[red]failed to save resolved state: %v[white]", err))
			}
			return nil
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func countUnresolved(failures []FailedCase) int {
	count := 0
	for _, f := range failures {
		if !f.Node.Case.Resolved {
			count++
		}
	}
	return count
}

func listItemText(failure FailedCase, index int) string {
	name := tview.Escape(failure.Node.Name)
	if failure.Node.Case.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureStats formats the header line of a failure using tview color tags
func formatFailureStats(failure FailedCase) string {
	return fmt.Sprintf("[cyan]assembly:[white] [yellow]%s[white]\n[cyan]fixture:[white] [yellow]%s[white]\n",
		tview.Escape(failure.Assembly), tview.Escape(failure.Fixture))
}

// formatFailureDetails formats a failed test case for display using tview color tags
func formatFailureDetails(failure FailedCase) string {
	tc := failure.Node.Case
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n\n", tview.Escape(tc.FullName))
	if tc.Resolved {
		b.WriteString("[gray](marked resolved)[white]\n\n")
	}
	if tc.Seed != "" {
		fmt.Fprintf(&b, "[cyan]Seed: %s[white]\n\n", tview.Escape(tc.Seed))
	}

	if tc.Failure != nil && tc.Failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(tc.Failure.Message))
	}

	if tc.Failure != nil && tc.Failure.StackTrace != "" {
		b.WriteString("[yellow]Stack Trace:[white]\n")
		lines := strings.Split(strings.TrimRight(tc.Failure.StackTrace, "\n"), "\n")
		for i, line := range lines {
			if i == maxStackLines {
				fmt.Fprintf(&b, "  [gray]... and %d more lines[white]\n", len(lines)-maxStackLines)
				break
			}
			fmt.Fprintf(&b, "  %s\n", tview.Escape(line))
		}
		b.WriteString("\n")
	}

	if tc.Output != "" {
		fmt.Fprintf(&b, "[yellow]Output:[white]\n%s\n", tview.Escape(tc.Output))
	}

	return b.String()
}
