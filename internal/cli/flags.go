package cli

import "ntl/internal/config"

// Flags holds command-line flags
type Flags struct {
	ProjectPath  string
	Processors   int
	ResultsPath  string
	NameFilter   string
	Output       string
	Format       string
	RunID        string
	FailFast     bool
	Publish      bool
	OpenFailures bool
	TestCases    bool
	Verbose      bool
	Depth        int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:   f.Processors,
		ResultsPath:  f.ResultsPath,
		NameFilter:   f.NameFilter,
		Output:       f.Output,
		Format:       f.Format,
		RunID:        f.RunID,
		FailFast:     f.FailFast,
		Publish:      f.Publish,
		OpenFailures: f.OpenFailures,
		TestCases:    f.TestCases,
		Verbose:      f.Verbose,
		Depth:        f.Depth,
	}
}
