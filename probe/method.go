package probe

import (
	"net/http"
	"net/url"
	"strings"
)

// Method is the closed set of probe attempt mechanisms. The executor
// dispatches exhaustively over the two concrete types; external packages
// cannot add implementations.
type Method interface {
	// Kind returns the method label used in telemetry: "exec" or "http_get".
	Kind() string

	// String returns a human-readable description for logs and traces.
	String() string

	isMethod()
}

// Exec runs a program and treats exit code 0 as success.
type Exec struct {
	// Command is the program followed by its arguments. Must be non-empty.
	Command []string
}

func (Exec) isMethod() {}

// Kind returns "exec".
func (Exec) Kind() string { return "exec" }

// String returns the command in argv form.
func (e Exec) String() string {
	return "[" + strings.Join(e.Command, " ") + "]"
}

// HTTPGet issues a GET request and treats any 2xx response as success.
type HTTPGet struct {
	// URL is the fully assembled request URL.
	URL *url.URL

	// Header holds extra request headers, if any.
	Header http.Header
}

func (HTTPGet) isMethod() {}

// Kind returns "http_get".
func (HTTPGet) Kind() string { return "http_get" }

// String returns the request URL.
func (g HTTPGet) String() string {
	if g.URL == nil {
		return ""
	}
	return g.URL.String()
}
