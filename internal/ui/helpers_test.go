package ui

import (
	"time"

	"ntl/internal/domain"
)

func leaf(name string, outcome domain.Outcome) *domain.Node {
	n := &domain.Node{
		Kind:     domain.KindTestCase,
		Name:     name,
		FullName: "NS.Type." + name,
		Duration: 100 * time.Millisecond,
		Case:     &domain.TestCase{FullName: "NS.Type." + name, MethodName: name, Outcome: outcome},
	}
	n.Count(outcome)
	n.Result = n.Counts.Result()
	return n
}

func parent(kind domain.Kind, name, fullName string, children ...*domain.Node) *domain.Node {
	n := &domain.Node{Kind: kind, Name: name, FullName: fullName, Children: children}
	for _, c := range children {
		n.Add(c.Counts)
		n.Duration += c.Duration
	}
	n.Result = n.Counts.Result()
	return n
}

func sampleRun() *domain.Node {
	fails := leaf("Fails", domain.OutcomeFailed)
	fails.Case.Failure = &domain.Failure{Message: "expected [1]", StackTrace: "at A\nat B\n"}
	fixture := parent(domain.KindFixture, "Type", "NS.Type",
		leaf("Passes", domain.OutcomePassed),
		fails,
		leaf("Skips", domain.OutcomeSkipped),
	)
	assembly := parent(domain.KindAssembly, "T.dll", "/bin/T.dll", fixture)
	other := parent(domain.KindAssembly, "U.dll", "/bin/U.dll",
		parent(domain.KindFixture, "Ok", "Other.Ok", leaf("Works", domain.OutcomePassed)))
	run := parent(domain.KindRun, "", "", assembly, other)
	run.ID = "2"
	return run
}
