package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"todolist/internal/session"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	chatID := cb.Message.Chat.ID
	sess := b.chatSession(chatID)
	if !sess.LoggedIn() {
		return b.requireSignin(chatID)
	}

	data := cb.Data
	switch {
	case strings.HasPrefix(data, cbDonePrefix):
		return b.toggleDone(chatID, sess, strings.TrimPrefix(data, cbDonePrefix))
	case strings.HasPrefix(data, cbPinPrefix):
		return b.togglePin(chatID, sess, strings.TrimPrefix(data, cbPinPrefix))
	case strings.HasPrefix(data, cbDuplicatePrefix):
		return b.duplicateTask(chatID, sess, strings.TrimPrefix(data, cbDuplicatePrefix))
	case strings.HasPrefix(data, cbEditPrefix):
		return b.editTask(chatID, sess, strings.TrimPrefix(data, cbEditPrefix))
	case strings.HasPrefix(data, cbDeletePrefix):
		return b.deleteTask(chatID, sess, strings.TrimPrefix(data, cbDeletePrefix))
	case strings.HasPrefix(data, cbViewPrefix):
		return b.viewTask(chatID, sess, strings.TrimPrefix(data, cbViewPrefix))
	default:
		return nil
	}
}

func (b *Bot) toggleDone(chatID int64, sess *session.Session, id string) error {
	task := sess.Get(id)
	if task == nil {
		return b.sendText(chatID, "Task not found, it may have been deleted.")
	}

	if sess.ToggleDone(id) {
		log.Printf("[info] task done chat=%d name=%q", chatID, task.Name)
		if err := b.sendText(chatID, fmt.Sprintf("✅ «%s» marked as done.", escape(task.Name))); err != nil {
			return err
		}
	} else {
		if err := b.sendText(chatID, fmt.Sprintf("↩️ «%s» is open again.", escape(task.Name))); err != nil {
			return err
		}
	}
	return b.sendTaskList(chatID, sess)
}

func (b *Bot) togglePin(chatID int64, sess *session.Session, id string) error {
	task := sess.Get(id)
	if task == nil {
		return b.sendText(chatID, "Task not found, it may have been deleted.")
	}

	switch sess.TogglePin(id) {
	case session.PinLimitReached:
		// Soft notice: the pinned set stays as it was.
		return b.sendText(chatID, "You can pin a maximum of 3 tasks.")
	case session.Pinned:
		log.Printf("[info] task pinned chat=%d name=%q", chatID, task.Name)
		if err := b.sendText(chatID, fmt.Sprintf("📌 «%s» pinned.", escape(task.Name))); err != nil {
			return err
		}
	case session.Unpinned:
		if err := b.sendText(chatID, fmt.Sprintf("«%s» unpinned.", escape(task.Name))); err != nil {
			return err
		}
	}
	return b.sendTaskList(chatID, sess)
}

func (b *Bot) duplicateTask(chatID int64, sess *session.Session, id string) error {
	clone := sess.Duplicate(id)
	if clone == nil {
		return b.sendText(chatID, "Task not found, it may have been deleted.")
	}
	log.Printf("[info] task duplicated chat=%d name=%q", chatID, clone.Name)
	if err := b.sendText(chatID, fmt.Sprintf("📄 Added «%s».", escape(clone.Name))); err != nil {
		return err
	}
	return b.sendTaskList(chatID, sess)
}

func (b *Bot) editTask(chatID int64, sess *session.Session, id string) error {
	task := sess.Get(id)
	if task == nil {
		return b.sendText(chatID, "Task not found, it may have been deleted.")
	}
	return b.startEditTask(chatID, task)
}

func (b *Bot) deleteTask(chatID int64, sess *session.Session, id string) error {
	task := sess.Get(id)
	if task == nil {
		return b.sendText(chatID, "Task not found, it may have been deleted.")
	}

	sess.Delete(id)
	log.Printf("[info] task deleted chat=%d name=%q", chatID, task.Name)
	if err := b.sendText(chatID, fmt.Sprintf("🗑 «%s» deleted.", escape(task.Name))); err != nil {
		return err
	}
	return b.sendTaskList(chatID, sess)
}

func (b *Bot) viewTask(chatID int64, sess *session.Session, id string) error {
	task := sess.Get(id)
	if task == nil {
		return b.sendText(chatID, "Task not found, it may have been deleted.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔎 <b>%s</b>", escape(task.Name)))
	if sess.IsPinned(id) {
		sb.WriteString(" 📌")
	}
	if sess.IsDone(id) {
		sb.WriteString(" ✅")
	}
	sb.WriteString(fmt.Sprintf("\n📝 %s", escape(task.Description)))
	sb.WriteString(fmt.Sprintf("\n⏰ Deadline: %s", escape(task.Deadline)))
	sb.WriteString(fmt.Sprintf("\n🏷 %s", escape(strings.Join(task.Categories, ", "))))
	return b.sendText(chatID, sb.String())
}
