package domain

import (
	"strings"
	"time"
)

// Outcome is the result reported by the test host for a single test method
type Outcome string

const (
	OutcomePassed       Outcome = "Passed"
	OutcomeFailed       Outcome = "Failed"
	OutcomeSkipped      Outcome = "Skipped"
	OutcomeInconclusive Outcome = "Inconclusive"
	OutcomeNone         Outcome = "None"
)

// Message categories used by the test host
const (
	StandardOutCategory    = "StdOutMsgs"
	StandardErrorCategory  = "StdErrMsgs"
	AdditionalInfoCategory = "AdditionalInfo"
)

// Well-known record properties
const (
	SeedProperty     = "NUnit.Seed"
	CategoryProperty = "NUnit.TestCategory"
)

// Record is one executed test method as delivered by the test host.
// Records are read-only once handed to the aggregator.
type Record struct {
	FullyQualifiedName string
	DisplayName        string
	Outcome            Outcome
	Duration           time.Duration
	StartTime          *time.Time
	EndTime            *time.Time
	ErrorMessage       string
	ErrorStackTrace    string
	Messages           []Message
	Traits             []Trait
	Properties         map[string][]string
	Attachments        []Attachment
	AssemblyPath       string
}

// Message is a line of text captured while the test ran
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// IsStandardOut reports whether the message was written to standard output
func (m Message) IsStandardOut() bool {
	return strings.EqualFold(m.Category, StandardOutCategory)
}

// IsStandardError reports whether the message was written to standard error
func (m Message) IsStandardError() bool {
	return strings.EqualFold(m.Category, StandardErrorCategory)
}

// Trait is a name/value tag attached to a test
type Trait struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attachment is a file produced by a test
type Attachment struct {
	FilePath    string `json:"filePath"`
	Description string `json:"description,omitempty"`
}

// Property returns the first value of a record property
func (r *Record) Property(name string) (string, bool) {
	values, ok := r.Properties[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
