package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"todolist/internal/config"
	"todolist/internal/model"
	"todolist/internal/service"
	"todolist/internal/session"
)

const (
	cbDonePrefix      = "done:"
	cbPinPrefix       = "pin:"
	cbDuplicatePrefix = "dup:"
	cbEditPrefix      = "edit:"
	cbDeletePrefix    = "del:"
	cbViewPrefix      = "view:"
)

// Bot aggregates the Telegram API with the account and report services and
// keeps one session per chat.
type Bot struct {
	api        *tgbotapi.BotAPI
	accountSvc *service.AccountService
	reportSvc  *service.ReportService
	config     *config.Config

	sessions      map[int64]*session.Session
	conversations map[int64]*conversationState
	mu            sync.Mutex
}

func New(token string, accountSvc *service.AccountService, reportSvc *service.ReportService, cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		accountSvc:    accountSvc,
		reportSvc:     reportSvc,
		config:        cfg,
		sessions:      make(map[int64]*session.Session),
		conversations: make(map[int64]*conversationState),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelInput(msg.Text) {
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "⏪ Cancelled. Nothing was saved.")
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		b.clearConversation(msg.Chat.ID)
		return b.handleCommand(ctx, msg)
	}

	if b.hasConversation(msg.Chat.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "I did not get that. Try /help for the list of commands.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	sess := b.chatSession(msg.Chat.ID)

	switch msg.Command() {
	case "start":
		return b.handleStart(msg, sess)
	case "help":
		return b.handleHelp(msg)
	case "signup":
		return b.startSignup(msg, sess)
	case "signin":
		return b.startSignin(ctx, msg, sess)
	case "forgot":
		return b.startForgot(msg)
	case "logout":
		return b.handleLogout(msg, sess)
	case "newtask":
		return b.startNewTask(msg, sess)
	case "tasks":
		if !sess.LoggedIn() {
			return b.requireSignin(msg.Chat.ID)
		}
		return b.sendTaskList(msg.Chat.ID, sess)
	case "search":
		return b.handleSearch(msg, sess)
	case "filter":
		return b.handleFilter(msg, sess)
	case "report":
		return b.handleReport(msg, sess)
	case "cancel":
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "⏪ Cancelled. Nothing was saved.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message, sess *session.Session) error {
	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}

	var hint string
	switch {
	case sess.LoggedIn():
		hint = "You are signed in. /tasks shows your list."
	case sess.SignedUp():
		hint = "You already have an account here. /signin to continue."
	default:
		hint = "/signup to create an account, or /signin if you have one."
	}

	text := fmt.Sprintf(
		"👋 Hi, %s!\n<b>I keep your to-do list.</b>\n\n%s\n\nCommands:\n"+
			"• /signup — create an account\n"+
			"• /signin — sign in\n"+
			"• /newtask — add a task\n"+
			"• /tasks — show your tasks\n"+
			"• /search &lt;text&gt; — filter by name\n"+
			"• /filter &lt;category&gt; — filter by category\n"+
			"• /report — summary of open tasks\n"+
			"• /logout — end the session\n"+
			"• /help — all commands",
		escape(name), hint,
	)

	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Commands</b>\n" +
		"• /signup — create an account (username, email, mobile, password)\n" +
		"• /signin — sign in with username and password\n" +
		"• /forgot — forgot-password form\n" +
		"• /logout — end the session and clear the task list\n" +
		"• /newtask — add a task step by step\n" +
		"• /tasks — show pinned tasks first, then the rest\n" +
		"• /search &lt;text&gt; — show tasks whose name contains the text (empty clears)\n" +
		"• /filter &lt;category&gt; — show one category (<code>/filter off</code> clears)\n" +
		"• /report — deadline-sorted summary of open tasks\n" +
		"• /cancel — abort the current form\n\n" +
		"Task buttons: ✔ done · 📌 pin (max 3) · 📄 duplicate · ✏️ edit · 🗑 delete"
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleLogout(msg *tgbotapi.Message, sess *session.Session) error {
	if !sess.LoggedIn() {
		return b.requireSignin(msg.Chat.ID)
	}
	sess.Logout()
	log.Printf("[info] logout chat=%d", msg.Chat.ID)
	return b.sendText(msg.Chat.ID, "👋 Signed out. Your task list was cleared. /signin to start again.")
}

func (b *Bot) handleSearch(msg *tgbotapi.Message, sess *session.Session) error {
	if !sess.LoggedIn() {
		return b.requireSignin(msg.Chat.ID)
	}
	sess.SetSearchTerm(strings.TrimSpace(msg.CommandArguments()))
	if sess.SearchTerm() == "" {
		if err := b.sendText(msg.Chat.ID, "🔍 Search cleared."); err != nil {
			return err
		}
	}
	return b.sendTaskList(msg.Chat.ID, sess)
}

func (b *Bot) handleFilter(msg *tgbotapi.Message, sess *session.Session) error {
	if !sess.LoggedIn() {
		return b.requireSignin(msg.Chat.ID)
	}

	arg := strings.TrimSpace(msg.CommandArguments())
	switch {
	case arg == "" || strings.EqualFold(arg, "off") || strings.EqualFold(arg, "all"):
		sess.SetFilterCategory("")
		if err := b.sendText(msg.Chat.ID, "🏷 Category filter cleared."); err != nil {
			return err
		}
	default:
		matched := ""
		for _, c := range model.Categories {
			if strings.EqualFold(c, arg) {
				matched = c
				break
			}
		}
		if matched == "" {
			return b.sendText(msg.Chat.ID, fmt.Sprintf(
				"Unknown category %q. Available: %s.", escape(arg), strings.Join(model.Categories, ", ")))
		}
		sess.SetFilterCategory(matched)
	}
	return b.sendTaskList(msg.Chat.ID, sess)
}

func (b *Bot) handleReport(msg *tgbotapi.Message, sess *session.Session) error {
	if !sess.LoggedIn() {
		return b.requireSignin(msg.Chat.ID)
	}
	return b.sendText(msg.Chat.ID, b.reportSvc.DailySummary(sess, time.Now()))
}

// SendDailyReports sends an open-task summary to every logged-in chat.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	b.mu.Lock()
	chats := make(map[int64]*session.Session, len(b.sessions))
	for id, sess := range b.sessions {
		if sess.LoggedIn() {
			chats[id] = sess
		}
	}
	b.mu.Unlock()

	now := time.Now()
	for chatID, sess := range chats {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := b.sendText(chatID, b.reportSvc.DailySummary(sess, now)); err != nil {
			log.Printf("send summary to %d: %v", chatID, err)
		}
	}
	return nil
}

func (b *Bot) requireSignin(chatID int64) error {
	return b.sendText(chatID, "🔒 Please /signin first.")
}

// pause waits the configured navigation delay before moving on. It is
// cosmetic, so cancellation just skips it.
func (b *Bot) pause(ctx context.Context) {
	delay := b.config.NavigationDelay
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (b *Bot) chatSession(chatID int64) *session.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	sess, ok := b.sessions[chatID]
	if !ok {
		sess = session.New()
		b.sessions[chatID] = sess
	}
	return sess
}

func (b *Bot) setConversation(chatID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[chatID] = state
}

func (b *Bot) getConversation(chatID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[chatID]
}

func (b *Bot) hasConversation(chatID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[chatID]
	return ok
}

func (b *Bot) clearConversation(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, chatID)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}
