package aggregate

import (
	"maps"
	"slices"
	"strings"

	"ntl/internal/domain"
	"ntl/internal/parser"
	"ntl/internal/sanitize"
)

// MalformedFunc observes records excluded because their name could not be parsed
type MalformedFunc func(record domain.Record, err error)

type parsedRecord struct {
	record *domain.Record
	name   parser.TestName
}

// BuildFixtures groups records by type name into fixture nodes, ordered by
// type name. Records whose name cannot be parsed are left out.
func BuildFixtures(records []domain.Record) []*domain.Node {
	return buildFixtures(records, nil)
}

func buildFixtures(records []domain.Record, onMalformed MalformedFunc) []*domain.Node {
	groups := make(map[string][]parsedRecord)
	for i := range records {
		name, err := parser.ParseName(records[i].FullyQualifiedName)
		if err != nil {
			if onMalformed != nil {
				onMalformed(records[i], err)
			}
			continue
		}
		groups[name.Type] = append(groups[name.Type], parsedRecord{record: &records[i], name: name})
	}

	fixtures := make([]*domain.Node, 0, len(groups))
	for _, typeName := range slices.Sorted(maps.Keys(groups)) {
		fixtures = append(fixtures, newFixture(typeName, groups[typeName]))
	}
	return fixtures
}

func newFixture(typeName string, group []parsedRecord) *domain.Node {
	fixture := &domain.Node{
		Kind:      domain.KindFixture,
		Name:      parser.LastSegment(typeName),
		FullName:  typeName,
		ClassName: typeName,
		Children:  make([]*domain.Node, 0, len(group)),
	}

	for _, p := range group {
		fixture.Counts.Count(p.record.Outcome)
		fixture.Duration += p.record.Duration
		fixture.StartTime = earliest(fixture.StartTime, p.record.StartTime)
		fixture.EndTime = latest(fixture.EndTime, p.record.EndTime)
		fixture.Children = append(fixture.Children, newTestCase(p))
	}
	fixture.Result = fixture.Counts.Result()

	return fixture
}

func newTestCase(p parsedRecord) *domain.Node {
	record := p.record
	displayName := record.DisplayName
	if displayName == "" {
		displayName = p.name.Method + p.name.Arguments
	}

	tc := &domain.TestCase{
		DisplayName: sanitize.XML(displayName),
		FullName:    sanitize.XML(p.name.TypeAndMethod()),
		MethodName:  sanitize.XML(p.name.Method),
		ClassName:   sanitize.XML(p.name.Type),
		Outcome:     outcomeName(record.Outcome),
		Properties:  properties(record),
		Output:      standardOutput(record.Messages),
		Console:     console(record.Messages),
		Attachments: attachments(record.Attachments),
	}
	if seed, ok := record.Property(domain.SeedProperty); ok {
		tc.Seed = sanitize.XML(seed)
	}
	if record.Outcome == domain.OutcomeFailed {
		tc.Failure = &domain.Failure{
			Message:    sanitize.XML(record.ErrorMessage),
			StackTrace: sanitize.XML(record.ErrorStackTrace),
		}
	}

	node := &domain.Node{
		Kind:      domain.KindTestCase,
		Name:      tc.DisplayName,
		FullName:  tc.FullName,
		ClassName: tc.ClassName,
		Duration:  record.Duration,
		StartTime: earliest(nil, record.StartTime),
		EndTime:   latest(nil, record.EndTime),
		Case:      tc,
	}
	node.Counts.Count(record.Outcome)
	node.Result = node.Counts.Result()
	return node
}

// outcomeName maps the host outcome onto the names used in the report
func outcomeName(outcome domain.Outcome) domain.Outcome {
	switch outcome {
	case domain.OutcomePassed, domain.OutcomeFailed, domain.OutcomeSkipped:
		return outcome
	default:
		return domain.OutcomeInconclusive
	}
}

// properties lists every trait, then one Category entry per category value
func properties(record *domain.Record) []domain.Property {
	var props []domain.Property
	for _, trait := range record.Traits {
		if strings.TrimSpace(trait.Name) == "" {
			continue
		}
		props = append(props, domain.Property{
			Name:  sanitize.XML(trait.Name),
			Value: sanitize.XML(trait.Value),
		})
	}
	for _, category := range record.Properties[domain.CategoryProperty] {
		props = append(props, domain.Property{
			Name:  "Category",
			Value: sanitize.XML(category),
		})
	}
	return props
}

// standardOutput concatenates standard output messages, one per line.
// Standard error is not echoed.
func standardOutput(messages []domain.Message) string {
	var b strings.Builder
	for _, m := range messages {
		if m.IsStandardOut() {
			b.WriteString(m.Text)
			b.WriteString("\n")
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return ""
	}
	return sanitize.XML(b.String())
}

// console keeps the stdout and stderr messages, each sanitized, in order
func console(messages []domain.Message) []domain.Message {
	var out []domain.Message
	for _, m := range messages {
		if m.IsStandardOut() || m.IsStandardError() {
			out = append(out, domain.Message{Category: m.Category, Text: sanitize.XML(m.Text)})
		}
	}
	return out
}

func attachments(in []domain.Attachment) []domain.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Attachment{
			FilePath:    sanitize.XML(a.FilePath),
			Description: sanitize.XML(a.Description),
		})
	}
	return out
}
