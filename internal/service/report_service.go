package service

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"todolist/internal/model"
	"todolist/internal/session"
)

const deadlineLayout = "2006-01-02"

// ReportService builds human-readable summaries of a session's open tasks.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// DailySummary lists the session's open tasks sorted by deadline, flagging
// overdue and due-soon items. Deadlines are raw strings; ones that do not
// parse as YYYY-MM-DD are listed last, undated. Completed tasks are counted
// but not listed. The session state is copied up front in one Report call,
// so the summary can run from the scheduler goroutine.
func (s *ReportService) DailySummary(sess *session.Session, now time.Time) string {
	var pending []session.Entry
	var completed int
	for _, entry := range sess.Report() {
		if entry.Done {
			completed++
			continue
		}
		pending = append(pending, entry)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		di, iOK := parseDeadline(pending[i].Task.Deadline)
		dj, jOK := parseDeadline(pending[j].Task.Deadline)
		switch {
		case iOK && jOK:
			return di.Before(dj)
		case iOK:
			return true
		case jOK:
			return false
		default:
			return false
		}
	})

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily summary</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format(deadlineLayout)))

	builder.WriteString("🔥 <b>Open tasks</b>\n")
	if len(pending) == 0 {
		builder.WriteString("— no open tasks\n")
	} else {
		for _, entry := range pending {
			builder.WriteString(formatReportTask(entry.Task, entry.Pinned, now))
		}
	}

	if completed > 0 {
		builder.WriteString(fmt.Sprintf("\n✅ Marked done: %d\n", completed))
	}

	return strings.TrimSpace(builder.String())
}

func formatReportTask(task *model.Task, pinned bool, now time.Time) string {
	var sb strings.Builder

	icon := "🟢"
	deadline, ok := parseDeadline(task.Deadline)
	if ok {
		switch {
		case now.After(deadline.Add(24 * time.Hour)):
			icon = "⚠️"
		case deadline.Sub(now) <= 48*time.Hour:
			icon = "⏳"
		}
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(task.Name))))
	if pinned {
		sb.WriteString(" 📌")
	}
	if len(task.Categories) > 0 {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(strings.Join(task.Categories, ", "))))
	}

	if ok {
		if now.After(deadline.Add(24 * time.Hour)) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s — <b>overdue</b>", deadline.Format(deadlineLayout)))
		} else {
			daysLeft := int(deadline.Sub(now).Hours()/24) + 1
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · ≈%d day(s) left", deadline.Format(deadlineLayout), daysLeft))
		}
	} else if strings.TrimSpace(task.Deadline) != "" {
		sb.WriteString(fmt.Sprintf("\n   ⏰ due %s", html.EscapeString(strings.TrimSpace(task.Deadline))))
	}

	if task.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(task.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func parseDeadline(raw string) (time.Time, bool) {
	t, err := time.Parse(deadlineLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
