package parser

import (
	"io"

	"ntl/internal/domain"
)

// Parser reads test result records produced by a test host
type Parser interface {
	Parse(r io.Reader) ([]domain.Record, error)
	ParseFile(path string) ([]domain.Record, error)
}
