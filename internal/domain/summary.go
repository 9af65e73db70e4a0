package domain

// Summary is the persisted form of the last run, read back by the tree,
// failures and publish commands
type Summary struct {
	Meta SummaryMeta `json:"meta"`
	Run  *Node       `json:"run"`
}

// SummaryMeta describes how a run was produced
type SummaryMeta struct {
	RunID           string  `json:"runId"`
	RecordFiles     int     `json:"recordFiles"`
	FailedFiles     int     `json:"failedFiles"`
	TestCases       int     `json:"testCases"`
	FailedTestCases int     `json:"failedTestCases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"durationSeconds"`
	Workers         int     `json:"workers"`
	ReportPath      string  `json:"reportPath,omitempty"`
	Timestamp       string  `json:"timestamp"`
}
