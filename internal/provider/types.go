package provider

import (
	"context"
	"fmt"
)

// Entry is a single string to translate, carried with enough language and
// context information for a backend to build its prompt.
type Entry struct {
	Key            string
	SourceText     string
	TargetLanguage string // English display name, e.g. "Ukrainian"
	TargetCode     string // BCP-47 code, e.g. "uk"
	Context        string // optional hint about where the string appears
}

// Outcome is the final per-entry result after retries. A failed entry keeps
// its source text so downstream writers never emit an empty value.
type Outcome struct {
	Key         string
	ResultText  string
	Succeeded   bool
	ErrorDetail string
}

// Backend performs a single translation attempt against one service.
type Backend interface {
	Name() string
	Translate(ctx context.Context, entry Entry) (string, error)
}

// ResponseError reports a response the service returned but that cannot be
// used: a non-OK status, an HTML error page, or an empty completion.
type ResponseError struct {
	Status int
	Detail string
}

func (e *ResponseError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("service returned status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("unusable service response: %s", e.Detail)
}
