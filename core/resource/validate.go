package resource

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the decoded request body against the resource's field
// rules and returns the violation messages in field declaration order. An
// empty list means the write may proceed: validation and commit are two
// explicit phases, there is no validate-by-attempting-to-save.
//
// Read-only fields are skipped entirely (the engine assigns them), and a
// required field with a storage default raises no violation when omitted.
// Fields whitelisted as nullable-on-write never raise a null violation.
func Validate(meta *Metadata, body map[string]interface{}) []string {
	var messages []string
	for i := range meta.Fields {
		field := &meta.Fields[i]
		if field.ReadOnly {
			continue
		}
		value, present := body[field.Name]
		if value == nil {
			if !present && field.Default != nil {
				continue
			}
			if field.Required && !field.AllowNullOnWrite {
				messages = append(messages, fmt.Sprintf("%s.%s cannot be null", meta.Name, field.Name))
			}
			continue
		}
		text, ok := value.(string)
		if !ok {
			// wrong JSON type, reported by the structural schema check
			continue
		}
		messages = append(messages, validateString(meta, field, text)...)
	}
	return messages
}

func validateString(meta *Metadata, field *Field, value string) []string {
	var messages []string
	name := meta.Name + "." + field.Name

	if field.NotEmpty && value == "" {
		messages = append(messages, fmt.Sprintf("%s cannot be empty", name))
	}
	if len(field.Enum) > 0 && !contains(field.Enum, value) {
		messages = append(messages, fmt.Sprintf("%s must be one of: %s", name, strings.Join(field.Enum, ", ")))
	}
	if field.Format == "email" && !emailPattern.MatchString(value) {
		messages = append(messages, fmt.Sprintf("%s must be a valid email", name))
	}
	if field.Type == FieldUUID {
		if _, err := uuid.Parse(value); err != nil {
			messages = append(messages, fmt.Sprintf("%s must be a valid UUID", name))
		}
	}
	if field.Pattern != nil && !field.Pattern.MatchString(value) {
		messages = append(messages, fmt.Sprintf("%s %s", name, field.PatternHint))
	}
	return messages
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
