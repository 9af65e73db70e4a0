package domain

import "time"

// Kind identifies the level of a node in the report tree
type Kind string

const (
	KindTestCase  Kind = "TestCase"
	KindFixture   Kind = "TestFixture"
	KindNamespace Kind = "TestSuite"
	KindAssembly  Kind = "Assembly"
	KindRun       Kind = "TestRun"
)

// Result is the pass/fail verdict of an aggregate node
type Result string

const (
	ResultPassed Result = "Passed"
	ResultFailed Result = "Failed"
)

// Counts holds the rolled-up outcome counters of a node.
// Total always equals Passed+Failed+Skipped+Inconclusive; Error is tracked on its own.
type Counts struct {
	Total        int `json:"total"`
	Passed       int `json:"passed"`
	Failed       int `json:"failed"`
	Skipped      int `json:"skipped"`
	Inconclusive int `json:"inconclusive"`
	Error        int `json:"error"`
}

// Add accumulates other into c
func (c *Counts) Add(other Counts) {
	c.Total += other.Total
	c.Passed += other.Passed
	c.Failed += other.Failed
	c.Skipped += other.Skipped
	c.Inconclusive += other.Inconclusive
	c.Error += other.Error
}

// Count classifies a single outcome into its bucket
func (c *Counts) Count(outcome Outcome) {
	switch outcome {
	case OutcomePassed:
		c.Passed++
	case OutcomeFailed:
		c.Failed++
	case OutcomeSkipped:
		c.Skipped++
	default:
		c.Inconclusive++
	}
	c.Total++
}

// Result derives the node verdict from the counters
func (c Counts) Result() Result {
	if c.Failed > 0 {
		return ResultFailed
	}
	return ResultPassed
}

// Node is an element of the aggregated report tree.
// A node owns its children; trees are rebuilt rather than updated.
type Node struct {
	Kind      Kind   `json:"kind"`
	Name      string `json:"name"`
	FullName  string `json:"fullName"`
	ClassName string `json:"className,omitempty"`
	Counts
	Duration  time.Duration `json:"duration"`
	StartTime *time.Time    `json:"startTime,omitempty"`
	EndTime   *time.Time    `json:"endTime,omitempty"`
	Result    Result        `json:"result"`
	Children  []*Node       `json:"children,omitempty"`

	// Case is set on KindTestCase nodes only
	Case *TestCase `json:"case,omitempty"`

	// ID and TestCaseCount are set on the KindRun node only
	ID            string `json:"id,omitempty"`
	TestCaseCount int    `json:"testCaseCount,omitempty"`
}

// Walk visits n and all of its descendants depth-first, parents before children.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}
