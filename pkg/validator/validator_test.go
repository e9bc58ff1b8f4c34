package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNewAccount(t *testing.T) {
	errs := ValidateNewAccount("user3", "user3@mail.com", "pass3pass3", "user3first", "user3last")
	assert.False(t, errs.HasErrors())

	errs = ValidateNewAccount("", "not-an-email", "short", "", "")
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs, "handle")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "last_name")

	errs = ValidateNewAccount("no spaces!", "user@mail.com", "pass3pass3", "a", "b")
	assert.Contains(t, errs, "handle")
}

func TestValidateAuthenticate(t *testing.T) {
	assert.False(t, ValidateAuthenticate("user1", "pass1").HasErrors())

	errs := ValidateAuthenticate("", "")
	assert.Contains(t, errs, "handle")
	assert.Contains(t, errs, "password")
}

func TestValidateNewSlice(t *testing.T) {
	assert.False(t, ValidateNewSlice("user1", "2").HasErrors())

	errs := ValidateNewSlice("", "")
	assert.Contains(t, errs, "handle")
	assert.Contains(t, errs, "task_id")

	assert.Contains(t, ValidateNewSlice("user1", "zero"), "task_id")
	assert.Contains(t, ValidateNewSlice("user1", "-3"), "task_id")
}
