package campaign

import (
	"regexp"
	"time"

	"github.com/lattiq/campaign/internal/core"
)

// Context is the placeholder lookup for one render: a mapping from
// placeholder key to the value substituted for {{key}}.
type Context map[string]string

// token matches the exact literal form {{key}}. No whitespace trimming
// inside the braces, no nesting, no escape mechanism.
var token = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// Render substitutes {{key}} tokens in template using the given context
// plus the built-in values today, from_name and from_email. It never
// fails: keys absent from the context leave their token verbatim, and a
// substituted value that itself contains {{...}} is inserted literally,
// never re-scanned.
func Render(template string, ctx Context) string {
	return RenderAt(template, ctx, time.Now())
}

// RenderAt is Render with an explicit date source for the {{today}}
// built-in. Output is deterministic for a fixed context and date.
func RenderAt(template string, ctx Context, now time.Time) string {
	today := now.Format(time.DateOnly)

	return token.ReplaceAllStringFunc(template, func(match string) string {
		key := match[2 : len(match)-2]

		if value, ok := ctx[key]; ok {
			return value
		}

		// Built-ins are always available, even with an empty context.
		switch key {
		case "today":
			return today
		case "from_name", "from_email":
			return ""
		}

		return match
	})
}

// MergeContext builds the render context for one contact. Precedence, in
// increasing order: contact fields, then the run's resolved sender
// identity. Contact fields can therefore never override from_name or
// from_email once the identity is resolved for the run.
func MergeContext(contact core.Contact, fromName, fromEmail string) Context {
	ctx := make(Context, len(contact)+2)

	// Every contact field carries through, empty cells included: an empty
	// cell must render as "", not leave its token verbatim.
	for key, value := range contact {
		ctx[key] = value
	}

	// The run identity always wins, even when empty: a contact column can
	// never spoof from_name or from_email.
	ctx["from_name"] = fromName
	ctx["from_email"] = fromEmail

	return ctx
}
