package validation

import (
	"strings"

	"libraryapi/internal/apperr"
)

// Mode selects how absent fields are treated.
type Mode int

const (
	// ModeCreate evaluates every non-optional field; absent ones read as empty.
	ModeCreate Mode = iota
	// ModeUpdate evaluates only the fields present in the payload.
	ModeUpdate
)

// Check is one predicate, written as a validator tag expression.
type Check struct {
	Tag           string
	Message       string
	UpdateMessage string
}

// Rule builds a check from a tag expression and its failure message.
func Rule(tag, message string) Check {
	return Check{Tag: tag, Message: message}
}

// OnUpdate returns a copy of the check reporting a different message in update mode.
func (c Check) OnUpdate(message string) Check {
	c.UpdateMessage = message
	return c
}

func (c Check) message(mode Mode) string {
	if mode == ModeUpdate && c.UpdateMessage != "" {
		return c.UpdateMessage
	}
	return c.Message
}

// Field binds an ordered list of checks to a JSON key.
type Field struct {
	Name     string
	Optional bool
	Checks   []Check
}

// Required declares a field that must be present on create.
func Required(name string, checks ...Check) Field {
	return Field{Name: name, Checks: checks}
}

// Optional declares a field that may be omitted on create.
func Optional(name string, checks ...Check) Field {
	return Field{Name: name, Optional: true, Checks: checks}
}

// evaluate returns the first failing check's message.
func (f Field) evaluate(raw any, mode Mode) (string, bool) {
	value := scalar(raw)
	for _, c := range f.Checks {
		if err := validate.Var(value, c.Tag); err != nil {
			return c.message(mode), false
		}
	}
	return "", true
}

// RuleSet is an ordered collection of field rules.
type RuleSet []Field

// Validate evaluates the rule set and reports every failing field at once.
func (rs RuleSet) Validate(p Payload, mode Mode) error {
	var messages []string
	for _, f := range rs {
		raw, present := p[f.Name]
		if !present && (mode == ModeUpdate || f.Optional) {
			continue
		}
		if msg, ok := f.evaluate(raw, mode); !ok {
			messages = append(messages, msg)
		}
	}
	if len(messages) > 0 {
		return apperr.Validation(strings.Join(messages, ", "))
	}
	return nil
}
