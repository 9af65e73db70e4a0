package domain

// TestCase carries the per-test details rendered under a fixture
type TestCase struct {
	DisplayName string       `json:"displayName"`
	FullName    string       `json:"fullName"`
	MethodName  string       `json:"methodName"`
	ClassName   string       `json:"className"`
	Outcome     Outcome      `json:"outcome"`
	Seed        string       `json:"seed,omitempty"`
	Properties  []Property   `json:"properties,omitempty"`
	Output      string       `json:"output,omitempty"`
	// Console holds the stdout and stderr messages in the order they were written
	Console     []Message    `json:"console,omitempty"`
	Failure     *Failure     `json:"failure,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Resolved    bool         `json:"resolved,omitempty"` // Set from the failures viewer
}

// Property is a single name/value entry of a test case
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Failure holds the assertion message and stack trace of a failed test
type Failure struct {
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace"`
}
