// Package validate holds the form validation rules shared by the signup,
// task and forgot-password flows. Failures come back as a field-keyed map of
// user-facing messages, never as Go errors.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"todolist/internal/model"
)

// Errors maps a field name to its validation message. An empty map means the
// input passed.
type Errors map[string]string

func (e Errors) Ok() bool { return len(e) == 0 }

// Fields returns the offending field names in a stable order.
func (e Errors) Fields() []string {
	order := []string{"username", "password", "email", "mobile", "name", "description", "deadline", "categories"}
	var fields []string
	for _, f := range order {
		if _, ok := e[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,15}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRe   = regexp.MustCompile(`^[0-9]{10}$`)
)

// SignupInput carries the raw signup form fields.
type SignupInput struct {
	Username string
	Password string
	Email    string
	Mobile   string
}

// Signup checks the format rules for a new account. Uniqueness of email and
// mobile is checked separately against the store.
func Signup(in SignupInput) Errors {
	errs := Errors{}
	if !usernameRe.MatchString(in.Username) {
		errs["username"] = "Username must be 3-15 characters and can include letters, numbers, and underscores."
	}
	if !validPassword(in.Password) {
		errs["password"] = "Password must be at least 8 characters long and include at least one letter and one number."
	}
	if !emailRe.MatchString(in.Email) {
		errs["email"] = "Please enter a valid email address."
	}
	if !mobileRe.MatchString(in.Mobile) {
		errs["mobile"] = "Mobile number must be 10 digits long."
	}
	return errs
}

// validPassword requires at least 8 characters with one letter and one
// digit. The rule is spelled out because RE2 has no lookahead.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// TaskInput carries the raw task form fields. Categories are clamped to the
// limit before validation, matching the form's silent truncation.
type TaskInput struct {
	Name        string
	Description string
	Deadline    string
	Categories  []string
}

// Task checks the shared add/edit rules and returns the normalized input
// alongside any field errors. The deadline is only required to be non-blank;
// its format is not checked.
func Task(in TaskInput) (TaskInput, Errors) {
	in.Categories = model.ClampCategories(in.Categories)

	errs := Errors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "Description is required"
	}
	if strings.TrimSpace(in.Deadline) == "" {
		errs["deadline"] = "Deadline is required"
	}
	if len(in.Categories) == 0 {
		errs["categories"] = "At least one category is required"
	}
	for _, c := range in.Categories {
		if !model.ValidCategory(c) {
			errs["categories"] = fmt.Sprintf("Unknown category %q", c)
			break
		}
	}
	return in, errs
}

// ResetInput carries the forgot-password form fields.
type ResetInput struct {
	Email           string
	Mobile          string
	NewPassword     string
	ConfirmPassword string
}

// Reset checks the forgot-password form. The legacy form stopped at the
// first violation and showed a single message, so this returns an error
// string rather than a field map.
func Reset(in ResetInput) string {
	if strings.TrimSpace(in.Email) == "" || !emailRe.MatchString(in.Email) {
		return "Please enter a valid email address."
	}
	if strings.TrimSpace(in.Mobile) == "" || !mobileRe.MatchString(in.Mobile) {
		return "Please enter a valid mobile number."
	}
	if strings.TrimSpace(in.NewPassword) == "" {
		return "Please enter a new password."
	}
	if in.NewPassword != in.ConfirmPassword {
		return "Passwords do not match."
	}
	return ""
}
