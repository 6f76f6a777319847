package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Add records a failure for field when msg is non-empty.
func (e *FieldValidationErrors) Add(field, msg string) {
	if msg != "" {
		*e = append(*e, FieldValidationError{Field: field, Message: msg})
	}
}

var (
	couponCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,20}$`)

	xssPatterns = []struct {
		re  *regexp.Regexp
		msg string
	}{
		{regexp.MustCompile(`(?i)<script.*>`), "Script tag found"},
		{regexp.MustCompile(`(?i)javascript:`), "JavaScript protocol found"},
		{regexp.MustCompile(`(?i)on(load|error|click)=`), "Event handler found"},
		{regexp.MustCompile(`(?i)document\.cookie`), "document.cookie access found"},
	}
)

// ValidateXSS checks for common XSS attack patterns
func ValidateXSS(input string) (bool, string) {
	for _, p := range xssPatterns {
		if p.re.MatchString(input) {
			return false, "XSS detected: " + p.msg
		}
	}
	return true, ""
}

// ValidateCouponCode expects an already canonical (trimmed, upper case) code.
func ValidateCouponCode(code string) string {
	if !couponCodeRegex.MatchString(code) {
		return "must be 3 to 20 letters, digits, dashes or underscores"
	}
	return ""
}

// ValidateSearch rejects catalog search terms that are too long or look like
// markup injection.
func ValidateSearch(term string) string {
	if err := ValidateStringLength(term, 0, 100); err != nil {
		return err.Error()
	}
	if ok, msg := ValidateXSS(term); !ok {
		return msg
	}
	return ""
}

// ValidateStringLength validates string length
func ValidateStringLength(str string, min, max int) error {
	length := len(strings.TrimSpace(str))
	if length < min {
		return fmt.Errorf("must be at least %d characters long", min)
	}
	if length > max {
		return fmt.Errorf("must not exceed %d characters", max)
	}
	return nil
}
