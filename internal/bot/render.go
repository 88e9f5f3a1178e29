package bot

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"todolist/internal/session"
)

const (
	btnDone   = "✅ Done"
	btnCancel = "⏪ Cancel"
)

// sendTaskList renders the session's current view: pinned tasks first in pin
// order, then the filtered remainder, completed ones struck through. Each
// task row carries its action buttons.
func (b *Bot) sendTaskList(chatID int64, sess *session.Session) error {
	entries := sess.View()
	term := sess.SearchTerm()
	category := sess.FilterCategory()

	var builder strings.Builder
	builder.WriteString("📋 <b>Your tasks</b>\n")
	if term != "" {
		builder.WriteString(fmt.Sprintf("🔍 Search: %s\n", escape(term)))
	}
	if category != "" {
		builder.WriteString(fmt.Sprintf("🏷 Category: %s\n", escape(category)))
	}
	builder.WriteByte('\n')

	if len(entries) == 0 {
		if term != "" || category != "" {
			builder.WriteString("Nothing matches. /search or /filter off to widen the view.")
		} else {
			builder.WriteString("No tasks yet. /newtask adds the first one.")
		}
		return b.sendText(chatID, strings.TrimSpace(builder.String()))
	}

	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, entry := range entries {
		builder.WriteString(formatEntry(entry))
		buttons = append(buttons, entryButtons(entry)...)
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func formatEntry(entry session.Entry) string {
	var sb strings.Builder

	name := escape(entry.Task.Name)
	switch {
	case entry.Pinned && entry.Done:
		sb.WriteString(fmt.Sprintf("📌 <s>%s</s> ✅\n", name))
	case entry.Pinned:
		sb.WriteString(fmt.Sprintf("📌 <b>%s</b>\n", name))
	case entry.Done:
		sb.WriteString(fmt.Sprintf("• <s>%s</s> ✅\n", name))
	default:
		sb.WriteString(fmt.Sprintf("• <b>%s</b>\n", name))
	}

	sb.WriteString(fmt.Sprintf("   ⏰ %s · 🏷 %s\n\n",
		escape(entry.Task.Deadline), escape(strings.Join(entry.Task.Categories, ", "))))
	return sb.String()
}

// entryButtons builds two inline rows per task: a wide view button with the
// task name, then the action row.
func entryButtons(entry session.Entry) [][]tgbotapi.InlineKeyboardButton {
	id := entry.Task.ID

	doneLabel := "✔ Done"
	if entry.Done {
		doneLabel = "↩ Undo"
	}
	pinLabel := "📌 Pin"
	if entry.Pinned {
		pinLabel = "📌 Unpin"
	}

	return [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("👁 %s", shortName(entry.Task.Name, 28)), cbViewPrefix+id),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData(doneLabel, cbDonePrefix+id),
			tgbotapi.NewInlineKeyboardButtonData(pinLabel, cbPinPrefix+id),
			tgbotapi.NewInlineKeyboardButtonData("📄", cbDuplicatePrefix+id),
			tgbotapi.NewInlineKeyboardButtonData("✏️", cbEditPrefix+id),
			tgbotapi.NewInlineKeyboardButtonData("🗑", cbDeletePrefix+id),
		},
	}
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func categoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Home"),
			tgbotapi.NewKeyboardButton("Work"),
			tgbotapi.NewKeyboardButton("Personal"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Health/Fitness"),
			tgbotapi.NewKeyboardButton("Education"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnDone),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func isDoneInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnDone) || value == "done"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "cancel"
}

func shortName(name string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(name, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func escape(s string) string {
	return html.EscapeString(s)
}
