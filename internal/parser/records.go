package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ntl/internal/domain"
)

const maxLineSize = 16 * 1024 * 1024

// RecordParser reads JSON Lines files with one test result record per line
type RecordParser struct{}

// NewRecordParser creates a new RecordParser
func NewRecordParser() *RecordParser {
	return &RecordParser{}
}

type wireRecord struct {
	FullyQualifiedName string                     `json:"fullyQualifiedName"`
	DisplayName        string                     `json:"displayName"`
	Outcome            string                     `json:"outcome"`
	Duration           float64                    `json:"duration"`
	StartTime          *time.Time                 `json:"startTime"`
	EndTime            *time.Time                 `json:"endTime"`
	ErrorMessage       string                     `json:"errorMessage"`
	ErrorStackTrace    string                     `json:"errorStackTrace"`
	Messages           []domain.Message           `json:"messages"`
	Traits             []domain.Trait             `json:"traits"`
	Properties         map[string]json.RawMessage `json:"properties"`
	Attachments        []domain.Attachment        `json:"attachments"`
	AssemblyPath       string                     `json:"assemblyPath"`
}

// ParseFile reads all records of a file. Records without an assembly path
// are attributed to the file itself.
func (p *RecordParser) ParseFile(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	records, err := p.parse(f, path)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].AssemblyPath == "" {
			records[i].AssemblyPath = path
		}
	}
	return records, nil
}

// Parse reads records from r, one JSON object per line. Blank lines are skipped.
func (p *RecordParser) Parse(r io.Reader) ([]domain.Record, error) {
	return p.parse(r, "<input>")
}

func (p *RecordParser) parse(r io.Reader, source string) ([]domain.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var records []domain.Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		record, err := p.parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, lineNo, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	return records, nil
}

func (p *RecordParser) parseLine(line []byte) (domain.Record, error) {
	if err := ValidateRecord(line); err != nil {
		return domain.Record{}, err
	}

	var wire wireRecord
	if err := json.Unmarshal(line, &wire); err != nil {
		return domain.Record{}, fmt.Errorf("decode record: %w", err)
	}

	outcome, err := p.parseOutcome(wire.Outcome)
	if err != nil {
		return domain.Record{}, err
	}

	properties, err := parseProperties(wire.Properties)
	if err != nil {
		return domain.Record{}, err
	}

	return domain.Record{
		FullyQualifiedName: wire.FullyQualifiedName,
		DisplayName:        wire.DisplayName,
		Outcome:            outcome,
		Duration:           time.Duration(wire.Duration * float64(time.Second)),
		StartTime:          wire.StartTime,
		EndTime:            wire.EndTime,
		ErrorMessage:       wire.ErrorMessage,
		ErrorStackTrace:    wire.ErrorStackTrace,
		Messages:           wire.Messages,
		Traits:             wire.Traits,
		Properties:         properties,
		Attachments:        wire.Attachments,
		AssemblyPath:       wire.AssemblyPath,
	}, nil
}

// parseOutcome accepts outcome names in any letter case.
// A Caser is stateful, so one is created per call.
func (p *RecordParser) parseOutcome(value string) (domain.Outcome, error) {
	outcome := domain.Outcome(cases.Title(language.Und).String(strings.TrimSpace(value)))
	switch outcome {
	case domain.OutcomePassed, domain.OutcomeFailed, domain.OutcomeSkipped,
		domain.OutcomeInconclusive, domain.OutcomeNone:
		return outcome, nil
	}
	return "", fmt.Errorf("unknown outcome %q", value)
}

// parseProperties accepts both a single string and a list of strings per property
func parseProperties(raw map[string]json.RawMessage) (map[string][]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	properties := make(map[string][]string, len(raw))
	for name, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			properties[name] = []string{single}
			continue
		}
		var list []string
		if err := json.Unmarshal(value, &list); err != nil {
			return nil, fmt.Errorf("decode property %s: %w", name, err)
		}
		properties[name] = list
	}
	return properties, nil
}
