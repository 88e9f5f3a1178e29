package validate

import (
	"strings"
	"testing"
)

func validSignup() SignupInput {
	return SignupInput{
		Username: "bob_1",
		Password: "abcd1234",
		Email:    "b@x.com",
		Mobile:   "1234567890",
	}
}

func TestSignupValid(t *testing.T) {
	t.Parallel()

	if errs := Signup(validSignup()); !errs.Ok() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestSignupFieldRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*SignupInput)
		field  string
	}{
		{"username too short", func(in *SignupInput) { in.Username = "ab" }, "username"},
		{"username too long", func(in *SignupInput) { in.Username = strings.Repeat("a", 16) }, "username"},
		{"username bad char", func(in *SignupInput) { in.Username = "bob-1" }, "username"},
		{"password too short", func(in *SignupInput) { in.Password = "ab1" }, "password"},
		{"password no digit", func(in *SignupInput) { in.Password = "abcdefgh" }, "password"},
		{"password no letter", func(in *SignupInput) { in.Password = "12345678" }, "password"},
		{"email no at", func(in *SignupInput) { in.Email = "bx.com" }, "email"},
		{"email no dot", func(in *SignupInput) { in.Email = "b@xcom" }, "email"},
		{"email whitespace", func(in *SignupInput) { in.Email = "b @x.com" }, "email"},
		{"mobile short", func(in *SignupInput) { in.Mobile = "123456789" }, "mobile"},
		{"mobile letters", func(in *SignupInput) { in.Mobile = "12345678ab" }, "mobile"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validSignup()
			tc.mutate(&in)
			errs := Signup(in)
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			if errs[tc.field] == "" {
				t.Fatalf("expected error on %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestSignupReportsAllFields(t *testing.T) {
	t.Parallel()

	errs := Signup(SignupInput{})
	for _, field := range []string{"username", "password", "email", "mobile"} {
		if errs[field] == "" {
			t.Fatalf("expected error on %q, got %v", field, errs)
		}
	}
}

func TestTaskValid(t *testing.T) {
	t.Parallel()

	in, errs := Task(TaskInput{
		Name:        "Gym",
		Description: "Leg day",
		Deadline:    "2024-01-01",
		Categories:  []string{"Health/Fitness"},
	})
	if !errs.Ok() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(in.Categories) != 1 || in.Categories[0] != "Health/Fitness" {
		t.Fatalf("categories changed: %v", in.Categories)
	}
}

func TestTaskClampsCategories(t *testing.T) {
	t.Parallel()

	in, errs := Task(TaskInput{
		Name:        "Gym",
		Description: "Leg day",
		Deadline:    "2024-01-01",
		Categories:  []string{"Home", "Work", "Personal", "Health/Fitness", "Education"},
	})
	if !errs.Ok() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	want := []string{"Home", "Work", "Personal"}
	if len(in.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %v", len(want), in.Categories)
	}
	for i, c := range want {
		if in.Categories[i] != c {
			t.Fatalf("expected %v, got %v", want, in.Categories)
		}
	}
}

func TestTaskRequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    TaskInput
		field string
		msg   string
	}{
		{"blank name", TaskInput{Name: "  ", Description: "d", Deadline: "x", Categories: []string{"Home"}}, "name", "Name is required"},
		{"blank description", TaskInput{Name: "n", Description: "\t", Deadline: "x", Categories: []string{"Home"}}, "description", "Description is required"},
		{"blank deadline", TaskInput{Name: "n", Description: "d", Deadline: "", Categories: []string{"Home"}}, "deadline", "Deadline is required"},
		{"no categories", TaskInput{Name: "n", Description: "d", Deadline: "x"}, "categories", "At least one category is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := Task(tc.in)
			if errs[tc.field] != tc.msg {
				t.Fatalf("expected %q on %q, got %v", tc.msg, tc.field, errs)
			}
		})
	}
}

func TestTaskRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	_, errs := Task(TaskInput{Name: "n", Description: "d", Deadline: "x", Categories: []string{"Chores"}})
	if errs["categories"] == "" {
		t.Fatalf("expected category error, got %v", errs)
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   ResetInput
		want string
	}{
		{"valid", ResetInput{Email: "b@x.com", Mobile: "1234567890", NewPassword: "pw", ConfirmPassword: "pw"}, ""},
		{"bad email", ResetInput{Email: "nope", Mobile: "1234567890", NewPassword: "pw", ConfirmPassword: "pw"}, "Please enter a valid email address."},
		{"bad mobile", ResetInput{Email: "b@x.com", Mobile: "12", NewPassword: "pw", ConfirmPassword: "pw"}, "Please enter a valid mobile number."},
		{"blank password", ResetInput{Email: "b@x.com", Mobile: "1234567890", NewPassword: " "}, "Please enter a new password."},
		{"mismatch", ResetInput{Email: "b@x.com", Mobile: "1234567890", NewPassword: "pw", ConfirmPassword: "other"}, "Passwords do not match."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Reset(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
