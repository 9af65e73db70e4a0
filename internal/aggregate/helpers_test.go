package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ntl/internal/domain"
)

var baseTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func record(name string, outcome domain.Outcome) domain.Record {
	return domain.Record{
		FullyQualifiedName: name,
		Outcome:            outcome,
		Duration:           100 * time.Millisecond,
		AssemblyPath:       "/bin/Tests.dll",
	}
}

func timed(r domain.Record, startOffset, endOffset time.Duration) domain.Record {
	start := baseTime.Add(startOffset)
	end := baseTime.Add(endOffset)
	r.StartTime = &start
	r.EndTime = &end
	return r
}

func fixedClock() func() time.Time {
	calls := 0
	return func() time.Time {
		calls++
		return baseTime.Add(time.Duration(calls) * time.Second)
	}
}

// assertInvariants checks the counter identities on every node of a tree
func assertInvariants(t *testing.T, root *domain.Node) {
	t.Helper()
	root.Walk(func(n *domain.Node, _ int) bool {
		assert.Equal(t, n.Total, n.Passed+n.Failed+n.Skipped+n.Inconclusive, "total of %s %q", n.Kind, n.FullName)
		if n.Failed > 0 {
			assert.Equal(t, domain.ResultFailed, n.Result, "result of %s %q", n.Kind, n.FullName)
		} else {
			assert.Equal(t, domain.ResultPassed, n.Result, "result of %s %q", n.Kind, n.FullName)
		}
		return true
	})
}

// shape renders a tree as kind:fullName lines for structural comparisons
func shape(root *domain.Node) []string {
	var lines []string
	root.Walk(func(n *domain.Node, depth int) bool {
		lines = append(lines, string(rune('0'+depth))+" "+string(n.Kind)+":"+n.FullName)
		return true
	})
	return lines
}
