package bot

import (
	"strings"
	"testing"

	"todolist/internal/model"
	"todolist/internal/session"
	"todolist/internal/validate"
)

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	task := model.NewTask("Gym <1>", "d", "2026-09-03", []string{"Health/Fitness"})

	plain := formatEntry(session.Entry{Task: task})
	if !strings.Contains(plain, "Gym &lt;1&gt;") {
		t.Fatalf("names must be escaped:\n%s", plain)
	}
	if strings.Contains(plain, "📌") || strings.Contains(plain, "<s>") {
		t.Fatalf("plain entry carries no markers:\n%s", plain)
	}

	pinned := formatEntry(session.Entry{Task: task, Pinned: true})
	if !strings.HasPrefix(pinned, "📌") {
		t.Fatalf("pinned entry starts with the pin marker:\n%s", pinned)
	}

	done := formatEntry(session.Entry{Task: task, Done: true})
	if !strings.Contains(done, "<s>") || !strings.Contains(done, "✅") {
		t.Fatalf("done entry is struck through:\n%s", done)
	}
}

func TestEntryButtonsLabels(t *testing.T) {
	t.Parallel()

	task := model.NewTask("Gym", "d", "x", []string{"Home"})

	rows := entryButtons(session.Entry{Task: task, Done: true, Pinned: true})
	if len(rows) != 2 {
		t.Fatalf("expected view row and action row, got %d", len(rows))
	}
	actions := rows[1]
	if actions[0].Text != "↩ Undo" {
		t.Fatalf("done task offers undo, got %q", actions[0].Text)
	}
	if actions[1].Text != "📌 Unpin" {
		t.Fatalf("pinned task offers unpin, got %q", actions[1].Text)
	}
	if *actions[0].CallbackData != cbDonePrefix+task.ID {
		t.Fatalf("callback data carries the task id, got %q", *actions[0].CallbackData)
	}
}

func TestShortName(t *testing.T) {
	t.Parallel()

	if got := shortName("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := shortName("a very long task name", 10); got != "a very lo…" {
		t.Fatalf("got %q", got)
	}
	if got := shortName("line\nbreak", 20); got != "line break" {
		t.Fatalf("got %q", got)
	}
}

func TestInputMatchers(t *testing.T) {
	t.Parallel()

	if !isDoneInput("done") || !isDoneInput(btnDone) || !isDoneInput(" DONE ") {
		t.Fatalf("done inputs not recognized")
	}
	if !isCancelInput("cancel") || !isCancelInput(btnCancel) {
		t.Fatalf("cancel inputs not recognized")
	}
	if isDoneInput("do ne") || isCancelInput("stop") {
		t.Fatalf("loose matches must be rejected")
	}
}

func TestRenderErrorsStableOrder(t *testing.T) {
	t.Parallel()

	errs := validate.Errors{
		"mobile":   "Mobile number must be 10 digits long.",
		"username": "Username must be 3-15 characters and can include letters, numbers, and underscores.",
	}
	got := renderErrors(errs)
	if !strings.Contains(got, "Username") || !strings.Contains(got, "Mobile") {
		t.Fatalf("missing messages:\n%s", got)
	}
	if strings.Index(got, "Username") > strings.Index(got, "Mobile") {
		t.Fatalf("username should render before mobile:\n%s", got)
	}
}
