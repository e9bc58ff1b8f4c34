package validator

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var handleRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateNewAccount(handle, email, password, firstName, lastName string) ValidationErrors {
	errs := make(ValidationErrors)

	validateHandle(handle, errs)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	validatePassword(password, errs)

	if strings.TrimSpace(firstName) == "" {
		errs.Add("first_name", "First name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		errs.Add("last_name", "Last name is required")
	}

	return errs
}

func ValidateAuthenticate(handle, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(handle) == "" {
		errs.Add("handle", "Handle is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateNewSlice(handle, taskID string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(handle) == "" {
		errs.Add("handle", "Handle is required")
	}

	if taskID == "" {
		errs.Add("task_id", "Task id is required")
	} else if n, err := strconv.Atoi(taskID); err != nil || n <= 0 {
		errs.Add("task_id", "Task id must be a positive integer")
	}

	return errs
}

func validateHandle(handle string, errs ValidationErrors) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		errs.Add("handle", "Handle is required")
	} else if len(handle) < 3 {
		errs.Add("handle", "Handle must be at least 3 characters")
	} else if len(handle) > 50 {
		errs.Add("handle", "Handle is too long")
	} else if !handleRegex.MatchString(handle) {
		errs.Add("handle", "Handle can only contain letters, numbers, _ and -")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	} else if len(password) > 128 {
		errs.Add("password", "Password is too long")
	}
}
