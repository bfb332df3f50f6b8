// Package api provides the client for the notebook host's hierarchy and
// page-content service.
package api

import "time"

// Hierarchy scopes understood by the host.
const (
	ScopeNotebooks = "notebooks"
	ScopeSections  = "sections"
	ScopePages     = "pages"
)

// Page info flags for page content requests.
const (
	PageInfoBasic     = "basic"
	PageInfoSelection = "selection"
)

// DefaultSchema is the page XML schema version requested by default.
const DefaultSchema = "2013"

// XMLEnvelope wraps an XML document returned by the host.
type XMLEnvelope struct {
	XML string `json:"xml"`
}

// UpdatePageContentRequest is the request body for replacing page content.
type UpdatePageContentRequest struct {
	XML string `json:"xml"`
	// DateExpectedLastModified makes the update conditional. The zero value
	// marshals to null, which asks the host to overwrite unconditionally.
	DateExpectedLastModified Time `json:"dateExpectedLastModified"`
}

// Time is a wrapper around time.Time for custom JSON parsing.
type Time struct {
	time.Time
}

// UnmarshalJSON parses the host's ISO 8601 date format.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)

	if s == "null" || s == `""` || s == "" {
		return nil
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}

	t.Time = parsed
	return nil
}

// MarshalJSON formats time in ISO 8601 format.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

func (e *ErrorResponse) Error() string {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return e.Message
}
