package report

import (
	"fmt"
	"io"
	"strings"

	"ntl/internal/domain"
)

var teamCityEscaper = strings.NewReplacer(
	"|", "||",
	"'", "|'",
	"\n", "|n",
	"\r", "|r",
	"[", "|[",
	"]", "|]",
)

// TeamCityWriter renders a run as TeamCity service messages, one suite per
// assembly and fixture
type TeamCityWriter struct{}

// NewTeamCityWriter creates a new TeamCityWriter
func NewTeamCityWriter() *TeamCityWriter {
	return &TeamCityWriter{}
}

// Write emits the service messages for every test case of the run
func (tw *TeamCityWriter) Write(w io.Writer, run *domain.Node) error {
	if run == nil || run.Kind != domain.KindRun {
		return fmt.Errorf("render teamcity messages: expected a %s node", domain.KindRun)
	}

	sw := &serviceWriter{w: w}
	for _, assembly := range run.Children {
		sw.message("testSuiteStarted", "name", assembly.Name)
		assembly.Walk(func(node *domain.Node, _ int) bool {
			if node.Kind != domain.KindFixture {
				return true
			}
			sw.fixture(node)
			return false
		})
		sw.message("testSuiteFinished", "name", assembly.Name)
	}
	return sw.err
}

type serviceWriter struct {
	w   io.Writer
	err error
}

func (sw *serviceWriter) fixture(fixture *domain.Node) {
	sw.message("testSuiteStarted", "name", fixture.FullName)
	for _, child := range fixture.Children {
		if child.Case != nil {
			sw.testCase(child)
		}
	}
	sw.message("testSuiteFinished", "name", fixture.FullName)
}

func (sw *serviceWriter) testCase(node *domain.Node) {
	tc := node.Case
	name := tc.FullName

	if tc.Outcome == domain.OutcomeSkipped {
		sw.message("testIgnored", "name", name)
		return
	}

	sw.message("testStarted", "name", name)
	for _, m := range tc.Console {
		if m.IsStandardError() {
			sw.message("testStdErr", "name", name, "out", m.Text)
		} else {
			sw.message("testStdOut", "name", name, "out", m.Text)
		}
	}
	if tc.Failure != nil {
		sw.message("testFailed", "name", name, "message", tc.Failure.Message, "details", tc.Failure.StackTrace)
	}
	sw.message("testFinished", "name", name, "duration", fmt.Sprint(node.Duration.Milliseconds()))
}

// message writes ##teamcity[kind key='value' ...]; attrs are key/value pairs
func (sw *serviceWriter) message(kind string, attrs ...string) {
	if sw.err != nil {
		return
	}

	var b strings.Builder
	b.WriteString("##teamcity[")
	b.WriteString(kind)
	for i := 0; i+1 < len(attrs); i += 2 {
		fmt.Fprintf(&b, " %s='%s'", attrs[i], teamCityEscaper.Replace(attrs[i+1]))
	}
	b.WriteString("]\n")

	_, sw.err = io.WriteString(sw.w, b.String())
}
