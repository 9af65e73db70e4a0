package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"ntl/internal/domain"
	"ntl/internal/sanitize"
)

type xmlTestRun struct {
	XMLName       xml.Name       `xml:"test-run"`
	ID            string         `xml:"id,attr"`
	TestCaseCount int            `xml:"testcasecount,attr"`
	Total         int            `xml:"total,attr"`
	Passed        int            `xml:"passed,attr"`
	Failed        int            `xml:"failed,attr"`
	Inconclusive  int            `xml:"inconclusive,attr"`
	Skipped       int            `xml:"skipped,attr"`
	Result        string         `xml:"result,attr"`
	Duration      string         `xml:"duration,attr"`
	StartTime     string         `xml:"start-time,attr"`
	EndTime       string         `xml:"end-time,attr"`
	Suites        []xmlTestSuite `xml:"test-suite"`
}

type xmlTestSuite struct {
	Type         string         `xml:"type,attr"`
	Name         string         `xml:"name,attr"`
	FullName     string         `xml:"fullname,attr"`
	ClassName    string         `xml:"classname,attr,omitempty"`
	Total        int            `xml:"total,attr"`
	Passed       int            `xml:"passed,attr"`
	Failed       int            `xml:"failed,attr"`
	Inconclusive int            `xml:"inconclusive,attr"`
	Skipped      int            `xml:"skipped,attr"`
	Result       string         `xml:"result,attr"`
	StartTime    string         `xml:"start-time,attr,omitempty"`
	EndTime      string         `xml:"end-time,attr,omitempty"`
	Duration     string         `xml:"duration,attr"`
	Suites       []xmlTestSuite `xml:"test-suite"`
	Cases        []xmlTestCase  `xml:"test-case"`
	Errors       *xmlErrors     `xml:"errors"`
}

type xmlErrors struct{}

type xmlTestCase struct {
	Name        string          `xml:"name,attr"`
	FullName    string          `xml:"fullname,attr"`
	MethodName  string          `xml:"methodname,attr"`
	ClassName   string          `xml:"classname,attr"`
	Result      string          `xml:"result,attr"`
	StartTime   string          `xml:"start-time,attr,omitempty"`
	EndTime     string          `xml:"end-time,attr,omitempty"`
	Duration    string          `xml:"duration,attr"`
	Asserts     int             `xml:"asserts,attr"`
	Seed        string          `xml:"seed,attr,omitempty"`
	Properties  *xmlProperties  `xml:"properties"`
	Output      *xmlCData       `xml:"output"`
	Failure     *xmlFailure     `xml:"failure"`
	Attachments *xmlAttachments `xml:"attachments"`
}

type xmlProperties struct {
	Items []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlCData struct {
	Text string `xml:",cdata"`
}

type xmlFailure struct {
	Message    string `xml:"message"`
	StackTrace string `xml:"stack-trace"`
}

type xmlAttachments struct {
	Items []xmlAttachment `xml:"attachment"`
}

type xmlAttachment struct {
	FilePath    string   `xml:"filePath"`
	Description xmlCData `xml:"description"`
}

// NUnitWriter renders a run as an NUnit 3 result document
type NUnitWriter struct{}

// NewNUnitWriter creates a new NUnitWriter
func NewNUnitWriter() *NUnitWriter {
	return &NUnitWriter{}
}

// Render returns the complete document, XML declaration included
func (nw *NUnitWriter) Render(run *domain.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := nw.Write(&buf, run); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the run document to w
func (nw *NUnitWriter) Write(w io.Writer, run *domain.Node) error {
	if run == nil || run.Kind != domain.KindRun {
		return fmt.Errorf("render nunit document: expected a %s node", domain.KindRun)
	}

	doc := xmlTestRun{
		ID:            run.ID,
		TestCaseCount: run.TestCaseCount,
		Total:         run.Total,
		Passed:        run.Passed,
		Failed:        run.Failed,
		Inconclusive:  run.Inconclusive,
		Skipped:       run.Skipped,
		Result:        string(run.Result),
		Duration:      FormatDuration(run.Duration),
		StartTime:     formatOptionalTime(run.StartTime),
		EndTime:       formatOptionalTime(run.EndTime),
	}
	for _, assembly := range run.Children {
		doc.Suites = append(doc.Suites, suiteElement(assembly))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode nunit document: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write nunit document: %w", err)
	}
	return nil
}

func suiteElement(node *domain.Node) xmlTestSuite {
	suite := xmlTestSuite{
		Type:         string(node.Kind),
		Name:         sanitize.XML(node.Name),
		FullName:     sanitize.XML(node.FullName),
		Total:        node.Total,
		Passed:       node.Passed,
		Failed:       node.Failed,
		Inconclusive: node.Inconclusive,
		Skipped:      node.Skipped,
		Result:       string(node.Result),
		StartTime:    formatOptionalTime(node.StartTime),
		EndTime:      formatOptionalTime(node.EndTime),
		Duration:     FormatDuration(node.Duration),
	}
	if node.Kind == domain.KindFixture {
		suite.ClassName = sanitize.XML(node.ClassName)
	}

	for _, child := range node.Children {
		if child.Kind == domain.KindTestCase {
			suite.Cases = append(suite.Cases, caseElement(child))
			continue
		}
		suite.Suites = append(suite.Suites, suiteElement(child))
	}

	if node.Kind == domain.KindAssembly {
		suite.Errors = &xmlErrors{}
	}
	return suite
}

func caseElement(node *domain.Node) xmlTestCase {
	tc := node.Case
	if tc == nil {
		tc = &domain.TestCase{DisplayName: node.Name, FullName: node.FullName, Outcome: domain.OutcomeInconclusive}
	}

	element := xmlTestCase{
		Name:       tc.DisplayName,
		FullName:   tc.FullName,
		MethodName: tc.MethodName,
		ClassName:  tc.ClassName,
		Result:     string(tc.Outcome),
		StartTime:  formatOptionalTime(node.StartTime),
		EndTime:    formatOptionalTime(node.EndTime),
		Duration:   FormatDuration(node.Duration),
		Seed:       tc.Seed,
	}

	if len(tc.Properties) > 0 {
		element.Properties = &xmlProperties{}
		for _, p := range tc.Properties {
			element.Properties.Items = append(element.Properties.Items, xmlProperty{Name: p.Name, Value: p.Value})
		}
	}
	if tc.Output != "" {
		element.Output = &xmlCData{Text: tc.Output}
	}
	if tc.Failure != nil {
		element.Failure = &xmlFailure{Message: tc.Failure.Message, StackTrace: tc.Failure.StackTrace}
	}
	if len(tc.Attachments) > 0 {
		element.Attachments = &xmlAttachments{}
		for _, a := range tc.Attachments {
			element.Attachments.Items = append(element.Attachments.Items, xmlAttachment{
				FilePath:    a.FilePath,
				Description: xmlCData{Text: a.Description},
			})
		}
	}
	return element
}
