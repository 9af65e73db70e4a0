// Package report renders an aggregated run tree into report documents.
package report

import (
	"io"
	"strconv"
	"time"

	"ntl/internal/domain"
)

// DateFormat is the layout of every timestamp written to a report (always UTC)
const DateFormat = "2006-01-02T15:04:05Z"

// Writer renders a run node into a document
type Writer interface {
	Write(w io.Writer, run *domain.Node) error
}

// FormatTime renders t in DateFormat
func FormatTime(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// FormatDuration renders d as seconds with the shortest exact decimal
func FormatDuration(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTime(*t)
}
