package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ntl/internal/domain"
)

func TestCollectFailures(t *testing.T) {
	failures := CollectFailures(sampleRun())

	require.Len(t, failures, 1)
	assert.Equal(t, "/bin/T.dll", failures[0].Assembly)
	assert.Equal(t, "NS.Type", failures[0].Fixture)
	assert.Equal(t, "Fails", failures[0].Node.Name)
}

func TestCollectFailures_NoFailures(t *testing.T) {
	run := parent(domain.KindRun, "", "", parent(domain.KindAssembly, "U.dll", "/bin/U.dll", leaf("Works", domain.OutcomePassed)))
	assert.Empty(t, CollectFailures(run))
}

func TestCollectFailures_SharesNodesWithRun(t *testing.T) {
	run := sampleRun()
	failures := CollectFailures(run)
	require.Len(t, failures, 1)

	failures[0].Node.Case.Resolved = true
	assert.True(t, run.Children[0].Children[0].Children[1].Case.Resolved)
	assert.Equal(t, 0, countUnresolved(failures))
}

func TestFormatFailureDetails(t *testing.T) {
	failure := CollectFailures(sampleRun())[0]

	details := formatFailureDetails(failure)
	assert.Contains(t, details, "✗ Test: NS.Type.Fails")
	assert.Contains(t, details, "expected [1[]")
	assert.Contains(t, details, "  at A\n  at B\n")
	assert.NotContains(t, details, "more lines")
}

func TestFormatFailureDetails_TruncatesStackTrace(t *testing.T) {
	failure := CollectFailures(sampleRun())[0]
	var lines []string
	for i := 0; i < maxStackLines+3; i++ {
		lines = append(lines, "at Frame")
	}
	failure.Node.Case.Failure.StackTrace = strings.Join(lines, "\n")
	failure.Node.Case.Seed = "1234"

	details := formatFailureDetails(failure)
	assert.Equal(t, maxStackLines, strings.Count(details, "  at Frame\n"))
	assert.Contains(t, details, "... and 3 more lines")
	assert.Contains(t, details, "Seed: 1234")
}

func TestFormatFailureStats(t *testing.T) {
	stats := formatFailureStats(CollectFailures(sampleRun())[0])
	assert.Contains(t, stats, "/bin/T.dll")
	assert.Contains(t, stats, "NS.Type")
}
