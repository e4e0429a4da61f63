package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so errors match what the user sees in the file
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidationIssue is a single failing field of a JSON document
type ValidationIssue struct {
	// Field is slash-separated, e.g. meta/authors/0
	Field   string
	Message string
}

// ValidationError lists every failing field of a file
type ValidationError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	b.WriteString(" is invalid:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue.Field)
		b.WriteString(": ")
		b.WriteString(issue.Message)
	}
	return b.String()
}

func validateStruct(s interface{}, prefix string) []ValidationIssue {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []ValidationIssue{{Field: prefix, Message: err.Error()}}
	}

	issues := make([]ValidationIssue, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		// Drop the struct type name leading the namespace
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		field = strings.NewReplacer(".", "/", "[", "/", "]", "").Replace(field)
		if prefix != "" {
			field = prefix + "/" + field
		}
		issues = append(issues, ValidationIssue{Field: field, Message: issueMessage(fe)})
	}
	return issues
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required for this source type"
	case "url":
		return "must be a URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + fe.Param() + " item(s)"
		}
		return "must be at least " + fe.Param()
	}
	return fmt.Sprintf("failed the %q check", fe.Tag())
}

// decodeError turns JSON decoding failures into user-facing errors naming the file
func decodeError(name string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%s does not contain valid JSON: %w", name, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{Path: name, Issues: []ValidationIssue{{
			Field:   strings.ReplaceAll(typeErr.Field, ".", "/"),
			Message: "must be of type " + typeErr.Type.String(),
		}}}
	}
	return fmt.Errorf("failed to decode %s: %w", name, err)
}

var typeIssuePattern = regexp.MustCompile(`^'([^']*)'[:]?\s*(.*)$`)
var expectedTypePattern = regexp.MustCompile(`^expected type '([^']*)'`)

// decodeJSON decodes the JSON object in data into out, which must be a pointer to a struct with json tags.
// Every field of the wrong type is returned as an issue; the remaining fields are still decoded.
func decodeJSON(name string, data []byte, out interface{}) ([]ValidationIssue, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, decodeError(name, err)
	}

	issues, err := decodeMap(raw, out, "json", "")
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return issues, nil
}

// decodeMap decodes input into out using the struct tags named tagName.
// Type mismatches become issues with fields below prefix.
func decodeMap(input interface{}, out interface{}, tagName string, prefix string) ([]ValidationIssue, error) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: tagName, Result: out})
	if err != nil {
		return nil, err
	}
	err = decoder.Decode(input)
	if err == nil {
		return nil, nil
	}
	var decodeErrs *mapstructure.Error
	if !errors.As(err, &decodeErrs) {
		return nil, err
	}

	issues := make([]ValidationIssue, 0, len(decodeErrs.Errors))
	for _, msg := range decodeErrs.Errors {
		issue := typeIssue(msg)
		if prefix != "" {
			issue.Field = strings.TrimSuffix(prefix+"/"+issue.Field, "/")
		}
		issues = append(issues, issue)
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })
	return issues, nil
}

// typeIssue converts a mapstructure message like "'meta.authors': source data must be an array or slice, got string"
func typeIssue(msg string) ValidationIssue {
	match := typeIssuePattern.FindStringSubmatch(msg)
	if match == nil {
		return ValidationIssue{Message: msg}
	}
	field := strings.NewReplacer(".", "/", "[", "/", "]", "").Replace(match[1])
	message := match[2]
	if expected := expectedTypePattern.FindStringSubmatch(message); expected != nil {
		message = "must be of type " + expected[1]
	} else if strings.HasPrefix(message, "source data must be an array or slice") {
		message = "must be a list"
	} else if strings.HasPrefix(message, "expected a map") {
		message = "must be an object"
	}
	return ValidationIssue{Field: field, Message: message}
}

// mergeIssues appends the schema issues that do not concern a field already reported with the wrong type
func mergeIssues(typeIssues []ValidationIssue, schemaIssues []ValidationIssue) []ValidationIssue {
	merged := append([]ValidationIssue(nil), typeIssues...)
	for _, issue := range schemaIssues {
		covered := false
		for _, typed := range typeIssues {
			if issue.Field == typed.Field || strings.HasPrefix(issue.Field, typed.Field+"/") {
				covered = true
				break
			}
		}
		if !covered {
			merged = append(merged, issue)
		}
	}
	return merged
}

func hasIssue(issues []ValidationIssue, field string) bool {
	for _, issue := range issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}
