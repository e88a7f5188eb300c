// Package validation runs submitted form fields through ordered sanitize and
// check steps and collects every violation.
//
// Each field owns a list of steps. Sanitizers (Trim, Escape) replace the
// field's current value; checks test the current value and record their
// message on failure. All steps of all fields run, so a form with several
// problems reports every one of them.
package validation

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError is one violation, in the order it was found.
type FieldError struct {
	Field   string
	Message string
}

// Result carries the sanitized values alongside the violations so a form
// can be redisplayed with what the user submitted.
type Result struct {
	Values map[string]string
	Errors []FieldError
}

// OK reports whether no violation was recorded.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Get returns the sanitized value of a field.
func (r Result) Get(field string) string { return r.Values[field] }

// ErrorFor returns the first message recorded for field, or "".
func (r Result) ErrorFor(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// state is what a step sees while a field is being processed.
type state struct {
	ctx   context.Context
	value string
	form  url.Values
}

// step returns ok=false with no error to record a violation. A non-nil error
// aborts the whole run.
type step struct {
	sanitize func(s *state)
	check    func(s *state) (bool, error)
	message  string
}

// FieldRule is the declared pipeline for one form field.
type FieldRule struct {
	name  string
	steps []step
}

// Field starts a rule for the named form field.
func Field(name string) *FieldRule {
	return &FieldRule{name: name}
}

func (f *FieldRule) sanitizer(fn func(s *state)) *FieldRule {
	f.steps = append(f.steps, step{sanitize: fn})
	return f
}

func (f *FieldRule) checker(msg string, fn func(s *state) (bool, error)) *FieldRule {
	f.steps = append(f.steps, step{check: fn, message: msg})
	return f
}

// Trim strips leading and trailing whitespace.
func (f *FieldRule) Trim() *FieldRule {
	return f.sanitizer(func(s *state) { s.value = strings.TrimSpace(s.value) })
}

// Escape HTML-escapes the value.
func (f *FieldRule) Escape() *FieldRule {
	return f.sanitizer(func(s *state) { s.value = EscapeHTML(s.value) })
}

// MinLength requires at least n characters.
func (f *FieldRule) MinLength(n int, msg string) *FieldRule {
	tag := fmt.Sprintf("min=%d", n)
	return f.checker(msg, func(s *state) (bool, error) {
		return validate.Var(s.value, tag) == nil, nil
	})
}

// EqualsField requires the value to equal the submitted value of other,
// with surrounding whitespace removed from the latter.
func (f *FieldRule) EqualsField(other, msg string) *FieldRule {
	return f.checker(msg, func(s *state) (bool, error) {
		want := strings.TrimSpace(s.form.Get(other))
		return validate.VarWithValue(s.value, want, "eqfield") == nil, nil
	})
}

// Custom requires pred to hold for the value.
func (f *FieldRule) Custom(pred func(value string) bool, msg string) *FieldRule {
	return f.checker(msg, func(s *state) (bool, error) {
		return pred(s.value), nil
	})
}

// Unique requires exists to report false for the value. Errors from exists
// abort the run.
func (f *FieldRule) Unique(exists func(ctx context.Context, value string) (bool, error), msg string) *FieldRule {
	return f.checker(msg, func(s *state) (bool, error) {
		found, err := exists(s.ctx, s.value)
		if err != nil {
			return false, err
		}
		return !found, nil
	})
}

// Pipeline validates a fixed set of fields in declaration order.
type Pipeline struct {
	fields []*FieldRule
}

// New builds a pipeline that applies fields in the given order.
func New(fields ...*FieldRule) *Pipeline {
	return &Pipeline{fields: fields}
}

// Run processes form through every field rule. The returned error is only
// set when a step could not be evaluated (for example a store lookup failed).
func (p *Pipeline) Run(ctx context.Context, form url.Values) (Result, error) {
	res := Result{Values: make(map[string]string, len(p.fields))}

	for _, f := range p.fields {
		s := &state{ctx: ctx, value: form.Get(f.name), form: form}
		for _, st := range f.steps {
			if st.sanitize != nil {
				st.sanitize(s)
				continue
			}
			ok, err := st.check(s)
			if err != nil {
				return res, fmt.Errorf("validate %s: %w", f.name, err)
			}
			if !ok {
				res.Errors = append(res.Errors, FieldError{Field: f.name, Message: st.message})
			}
		}
		res.Values[f.name] = s.value
	}

	return res, nil
}

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`'`, "&#x27;",
	`<`, "&lt;",
	`>`, "&gt;",
	`/`, "&#x2F;",
	"\\", "&#x5C;",
	"`", "&#96;",
)

// EscapeHTML replaces the characters that are significant in HTML with
// entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
