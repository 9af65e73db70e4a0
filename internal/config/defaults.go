package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultResultsPath is the default folder scanned for record files
	DefaultResultsPath = "."
	// DefaultOutputDir is the default output directory
	DefaultOutputDir = "TestResults"
	// DefaultReportFile is the default report file name
	DefaultReportFile = "TestResults.xml"
	// DefaultSummaryFile is the default summary file name
	DefaultSummaryFile = "test-summary.json"
	// DefaultFormat is the default report format
	DefaultFormat = FormatNUnit
	// DefaultProcessors is the default number of loader workers
	DefaultProcessors = 4
	// DefaultConfigFile is the optional YAML file read from the project path
	DefaultConfigFile = ".ntl.yaml"
	// DefaultTreeDepth is how many levels the tree command prints
	DefaultTreeDepth = 3
)

// Report formats
const (
	FormatNUnit    = "nunit"
	FormatTeamCity = "teamcity"
)

// Database defaults, matching a local MySQL server
const (
	DefaultDBHost = "127.0.0.1"
	DefaultDBPort = "3306"
	DefaultDBUser = "root"
	DefaultDBName = "ntl_history"
)

// DefaultResultSuffixes are the file name endings of record files
var DefaultResultSuffixes = []string{
	".results.jsonl",
}

// DefaultPathsToIgnore are the default directories to ignore when scanning for record files
var DefaultPathsToIgnore = []string{
	"node_modules",
	"vendor",
	"obj",
	".git",
}
