package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	name, errs := ValidateUsername("  PhotoFan42 ")
	require.Empty(t, errs)
	assert.Equal(t, "photofan42", name)

	_, errs = ValidateUsername("abc")
	assert.Contains(t, errs, "Username must have at least six characters!")

	_, errs = ValidateUsername("   ")
	assert.Contains(t, errs, "Username must not be blank or just spaces!")

	_, errs = ValidateUsername("has spaces")
	assert.Contains(t, errs, "Username must have at least six characters!")
}

func TestValidatePasswordAccumulatesAllFailures(t *testing.T) {
	assert.Empty(t, ValidatePassword("Str0ng!pass"))

	errs := ValidatePassword("short")
	assert.Contains(t, errs, "Password must have at least eight characters!")
	assert.Contains(t, errs, "Password must have at least one uppercase character!")
	assert.Contains(t, errs, "Password must have at least one numeric character!")
	assert.Contains(t, errs, "Password must have at least one special character!")

	errs = ValidatePassword("")
	assert.Contains(t, errs, "Password must not be empty!")
	assert.Len(t, errs, 6)
}

func TestValidatePasswordKeepsSurroundingSpaces(t *testing.T) {
	// " A1!aaaaa " satisfies every policy; spaces count toward length.
	assert.Empty(t, ValidatePassword(" A1!aaaa "))
}
