package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "KR"

// FieldValidator normalizes and validates the contact fields shared by every
// intake form.
type FieldValidator struct {
	DefaultRegion string
}

// NewFieldValidator builds a validator for the given default phone region.
func NewFieldValidator(defaultRegion string) *FieldValidator {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &FieldValidator{DefaultRegion: region}
}

// CleanEmail lowercases, validates and returns the email, including an IDNA
// check on the domain so internationalized domains round-trip safely.
func (v *FieldValidator) CleanEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	_, domain, _ := strings.Cut(email, "@")
	if !isDomainValid(domain) {
		return "", fmt.Errorf("%w: invalid email domain", ErrValidation)
	}
	if ascii, err := idnaProfile.ToASCII(domain); err != nil || ascii == "" {
		return "", fmt.Errorf("%w: invalid email domain", ErrValidation)
	}
	return email, nil
}

// CleanPhone normalizes an optional phone number to E.164. Empty input stays
// nil; an unparseable number is a validation error rather than silently kept.
func (v *FieldValidator) CleanPhone(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	number, err := phonenumbers.Parse(strings.TrimSpace(*raw), v.DefaultRegion)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
	}
	formatted := phonenumbers.Format(number, phonenumbers.E164)
	return &formatted, nil
}

// RequireText trims a mandatory text field and enforces a length ceiling.
func (v *FieldValidator) RequireText(field, raw string, maxLen int) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	if maxLen > 0 && len([]rune(value)) > maxLen {
		return "", fmt.Errorf("%w: %s exceeds %d characters", ErrValidation, field, maxLen)
	}
	return value, nil
}

// OptionalText trims an optional text field, mapping blank to nil.
func (v *FieldValidator) OptionalText(raw *string, maxLen int) *string {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}
	if maxLen > 0 && len([]rune(value)) > maxLen {
		value = string([]rune(value)[:maxLen])
	}
	return &value
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
