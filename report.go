package serde

// IssueReport is the wire shape of one issue, for callers that return
// validation failures as JSON.
type IssueReport struct {
	Path     string `json:"path"`
	Pointer  string `json:"pointer"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// Report converts the issues into their JSON-friendly form.
func (iss Issues) Report() []IssueReport {
	out := make([]IssueReport, len(iss))
	for i, it := range iss {
		out[i] = IssueReport{
			Path:     it.FieldPath(),
			Pointer:  it.Pointer(),
			Code:     it.Code,
			Message:  it.Message,
			Expected: it.Expected,
			Actual:   it.Actual,
		}
	}
	return out
}
