package fire

import (
	"strings"

	contractx "github.com/tanpawarit/fire-pension-agent/agent/contract"
)

const invalidInputHeader = "Invalid input parameters:"

type FieldError struct {
	Field   string
	Message string
}

// ErrorReport lists one entry per violated rule, in field order.
type ErrorReport []FieldError

func (r ErrorReport) Error() string {
	return r.String()
}

func (r ErrorReport) Unwrap() error {
	return contractx.ErrValidation
}

// String renders the report for the end user, one "- field: message" line per entry.
func (r ErrorReport) String() string {
	var b strings.Builder
	b.WriteString(invalidInputHeader)
	b.WriteByte('\n')
	for _, fe := range r {
		b.WriteString("- ")
		b.WriteString(fe.Field)
		b.WriteString(": ")
		b.WriteString(fe.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

func (r ErrorReport) Has(field string) bool {
	for _, fe := range r {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (r ErrorReport) Fields() []string {
	out := make([]string, 0, len(r))
	for _, fe := range r {
		out = append(out, fe.Field)
	}
	return out
}
