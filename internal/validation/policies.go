package validation

import (
	"regexp"
	"strings"
)

// Policy pairs a pattern with the message reported when a value fails it.
// Policies for one field are applied as a set; every failing policy
// contributes its message.
type Policy struct {
	Pattern *regexp.Regexp
	Message string
}

var UsernamePolicies = []Policy{
	{regexp.MustCompile(`^[^ ]{6,}$`), "Username must have at least six characters!"},
}

var PasswordPolicies = []Policy{
	{regexp.MustCompile(`.{8}`), "Password must have at least eight characters!"},
	{regexp.MustCompile(`[a-z]`), "Password must have at least one lowercase character!"},
	{regexp.MustCompile(`[A-Z]`), "Password must have at least one uppercase character!"},
	{regexp.MustCompile(`[0-9]`), "Password must have at least one numeric character!"},
	{regexp.MustCompile(`[^a-zA-Z0-9]`), "Password must have at least one special character!"},
}

// ApplyPolicies checks value against every policy and returns all failures.
func ApplyPolicies(value string, policies []Policy) []string {
	var errs []string
	for _, p := range policies {
		if !p.Pattern.MatchString(value) {
			errs = append(errs, p.Message)
		}
	}
	return errs
}

// ValidateUsername normalizes a username to its trimmed lowercase form,
// accumulating the blank check and every policy failure.
func ValidateUsername(raw string) (string, []string) {
	var errs []string
	name := strings.TrimSpace(raw)
	if name == "" {
		errs = append(errs, "Username must not be blank or just spaces!")
	}
	errs = append(errs, ApplyPolicies(name, UsernamePolicies)...)
	if len(errs) > 0 {
		return "", errs
	}
	return strings.ToLower(name), nil
}

// ValidatePassword accumulates every policy failure. Passwords are not
// trimmed; leading and trailing spaces are significant.
func ValidatePassword(raw string) []string {
	var errs []string
	if raw == "" {
		errs = append(errs, "Password must not be empty!")
	}
	errs = append(errs, ApplyPolicies(raw, PasswordPolicies)...)
	return errs
}
