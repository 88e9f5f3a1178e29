package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"todolist/internal/model"
	"todolist/internal/service"
	"todolist/internal/session"
	"todolist/internal/validate"
)

type conversationKind int

const (
	convSignup conversationKind = iota
	convSignin
	convForgot
	convTask
)

const (
	stageUsername = iota
	stageEmail
	stageMobile
	stagePassword
)

const (
	stageName = iota
	stageDescription
	stageDeadline
	stageCategories
)

type conversationState struct {
	kind  conversationKind
	stage int

	signup validate.SignupInput
	reset  validate.ResetInput
	task   validate.TaskInput

	signinUsername string
	// editName is set when the task form replaces an existing task; the
	// replacement is keyed by the name the task had when editing started.
	editName string
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.Chat.ID)
	if state == nil {
		return nil
	}

	switch state.kind {
	case convSignup:
		return b.handleSignupStep(ctx, msg, state)
	case convSignin:
		return b.handleSigninStep(ctx, msg, state)
	case convForgot:
		return b.handleForgotStep(ctx, msg, state)
	case convTask:
		return b.handleTaskStep(msg, state)
	default:
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "Form reset. Try again from /help.")
	}
}

// --- signup ---

func (b *Bot) startSignup(msg *tgbotapi.Message, sess *session.Session) error {
	if sess.LoggedIn() {
		return b.sendText(msg.Chat.ID, "You are already signed in. /tasks shows your list.")
	}
	if sess.SignedUp() {
		return b.sendText(msg.Chat.ID, "You already signed up here. /signin to continue.")
	}
	b.setConversation(msg.Chat.ID, &conversationState{kind: convSignup, stage: stageUsername})
	return b.sendWithReplyMarkup(msg.Chat.ID,
		"🆕 Creating your account.\n<b>Step 1:</b> pick a username (3-15 letters, numbers or underscores).",
		cancelKeyboard())
}

func (b *Bot) handleSignupStep(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	text := strings.TrimSpace(msg.Text)

	switch state.stage {
	case stageUsername:
		state.signup.Username = text
		if m := signupFieldError(state.signup, "username"); m != "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, escape(m), cancelKeyboard())
		}
		state.stage = stageEmail
		return b.sendWithReplyMarkup(msg.Chat.ID, "<b>Step 2:</b> your email address.", cancelKeyboard())
	case stageEmail:
		state.signup.Email = text
		if m := signupFieldError(state.signup, "email"); m != "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, escape(m), cancelKeyboard())
		}
		state.stage = stageMobile
		return b.sendWithReplyMarkup(msg.Chat.ID, "<b>Step 3:</b> your mobile number (10 digits).", cancelKeyboard())
	case stageMobile:
		state.signup.Mobile = text
		if m := signupFieldError(state.signup, "mobile"); m != "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, escape(m), cancelKeyboard())
		}
		state.stage = stagePassword
		return b.sendWithReplyMarkup(msg.Chat.ID,
			"<b>Step 4:</b> a password (8+ characters, at least one letter and one number).",
			cancelKeyboard())
	case stagePassword:
		state.signup.Password = msg.Text
		if m := signupFieldError(state.signup, "password"); m != "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, escape(m), cancelKeyboard())
		}
		return b.finishSignup(ctx, msg, state)
	default:
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "Form reset. Start again with /signup.")
	}
}

func (b *Bot) finishSignup(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	errs, err := b.accountSvc.Signup(ctx, state.signup)
	if err != nil {
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not save the account: %s", escape(err.Error())))
	}
	if !errs.Ok() {
		// Format passed stage by stage, so only email/mobile duplicates
		// remain. Send the user back to the first offending field.
		if _, ok := errs["email"]; ok {
			state.stage = stageEmail
		} else {
			state.stage = stageMobile
		}
		return b.sendWithReplyMarkup(msg.Chat.ID, renderErrors(errs), cancelKeyboard())
	}

	sess := b.chatSession(msg.Chat.ID)
	sess.SignUp(state.signup.Username)
	b.clearConversation(msg.Chat.ID)
	log.Printf("[info] signup chat=%d username=%s", msg.Chat.ID, state.signup.Username)

	b.pause(ctx)
	return b.sendWithReplyMarkup(msg.Chat.ID,
		fmt.Sprintf("✅ Account created, %s. Now /signin to start your session.", escape(state.signup.Username)),
		tgbotapi.NewRemoveKeyboard(true))
}

// --- signin ---

func (b *Bot) startSignin(ctx context.Context, msg *tgbotapi.Message, sess *session.Session) error {
	if sess.LoggedIn() {
		// Already signed in: straight to the task view.
		return b.sendTaskList(msg.Chat.ID, sess)
	}
	b.setConversation(msg.Chat.ID, &conversationState{kind: convSignin, stage: stageUsername})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🔑 Sign in.\nYour username?", cancelKeyboard())
}

func (b *Bot) handleSigninStep(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	text := strings.TrimSpace(msg.Text)

	switch state.stage {
	case stageUsername:
		state.signinUsername = text
		state.stage = stagePassword
		return b.sendWithReplyMarkup(msg.Chat.ID, "Your password?", cancelKeyboard())
	case stagePassword:
		account, err := b.accountSvc.Signin(ctx, state.signinUsername, msg.Text)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				state.stage = stageUsername
				return b.sendWithReplyMarkup(msg.Chat.ID,
					"Invalid username or password\nLet's try again. Your username?", cancelKeyboard())
			}
			b.clearConversation(msg.Chat.ID)
			return b.sendText(msg.Chat.ID, fmt.Sprintf("Sign-in failed: %s", escape(err.Error())))
		}

		sess := b.chatSession(msg.Chat.ID)
		sess.SignIn(account.Username)
		b.clearConversation(msg.Chat.ID)
		log.Printf("[info] signin chat=%d username=%s", msg.Chat.ID, account.Username)

		b.pause(ctx)
		if err := b.sendWithReplyMarkup(msg.Chat.ID,
			fmt.Sprintf("✅ Welcome back, %s!", escape(account.Username)),
			tgbotapi.NewRemoveKeyboard(true)); err != nil {
			return err
		}
		return b.sendTaskList(msg.Chat.ID, sess)
	default:
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "Form reset. Start again with /signin.")
	}
}

// --- forgot password ---

func (b *Bot) startForgot(msg *tgbotapi.Message) error {
	b.setConversation(msg.Chat.ID, &conversationState{kind: convForgot, stage: stageEmail})
	return b.sendWithReplyMarkup(msg.Chat.ID,
		"🔁 Password reset.\nThe email address on the account?", cancelKeyboard())
}

func (b *Bot) handleForgotStep(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	text := strings.TrimSpace(msg.Text)

	// Each step borrows the shared reset rules by probing with the fields
	// collected so far padded out with values that pass the later checks.
	switch state.stage {
	case stageEmail:
		state.reset.Email = text
		probe := validate.ResetInput{Email: text, Mobile: "0000000000", NewPassword: "x", ConfirmPassword: "x"}
		if m := validate.Reset(probe); m != "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, escape(m), cancelKeyboard())
		}
		state.stage = stageMobile
		return b.sendWithReplyMarkup(msg.Chat.ID, "The mobile number on the account?", cancelKeyboard())
	case stageMobile:
		state.reset.Mobile = text
		probe := validate.ResetInput{Email: state.reset.Email, Mobile: text, NewPassword: "x", ConfirmPassword: "x"}
		if m := validate.Reset(probe); m != "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, escape(m), cancelKeyboard())
		}
		state.stage = stagePassword
		return b.sendWithReplyMarkup(msg.Chat.ID, "Your new password?", cancelKeyboard())
	case stagePassword:
		state.reset.NewPassword = msg.Text
		probe := state.reset
		probe.ConfirmPassword = probe.NewPassword
		if m := validate.Reset(probe); m != "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, escape(m), cancelKeyboard())
		}
		state.stage = stagePassword + 1
		return b.sendWithReplyMarkup(msg.Chat.ID, "Type the new password once more to confirm.", cancelKeyboard())
	case stagePassword + 1:
		state.reset.ConfirmPassword = msg.Text
		resetMsg, err := b.accountSvc.ResetPassword(ctx, state.reset)
		if err != nil {
			b.clearConversation(msg.Chat.ID)
			return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not save the password: %s", escape(err.Error())))
		}
		if resetMsg != "" {
			state.stage = stagePassword
			return b.sendWithReplyMarkup(msg.Chat.ID,
				escape(resetMsg)+"\nYour new password?", cancelKeyboard())
		}
		b.clearConversation(msg.Chat.ID)
		log.Printf("[info] password reset submitted chat=%d", msg.Chat.ID)
		return b.sendWithReplyMarkup(msg.Chat.ID,
			"✅ Password saved. /signin to continue.", tgbotapi.NewRemoveKeyboard(true))
	default:
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "Form reset. Start again with /forgot.")
	}
}

// --- task form (add and edit) ---

func (b *Bot) startNewTask(msg *tgbotapi.Message, sess *session.Session) error {
	if !sess.LoggedIn() {
		return b.requireSignin(msg.Chat.ID)
	}
	b.setConversation(msg.Chat.ID, &conversationState{kind: convTask, stage: stageName})
	return b.sendWithReplyMarkup(msg.Chat.ID,
		"🆕 New task.\n<b>Step 1:</b> what is it called?", cancelKeyboard())
}

func (b *Bot) startEditTask(chatID int64, task *model.Task) error {
	state := &conversationState{kind: convTask, stage: stageName, editName: task.Name}
	b.setConversation(chatID, state)
	return b.sendWithReplyMarkup(chatID, fmt.Sprintf(
		"✏️ Editing <b>%s</b>. Every field is re-entered.\n<b>Step 1:</b> task name (was: %s)",
		escape(task.Name), escape(task.Name)), cancelKeyboard())
}

func (b *Bot) handleTaskStep(msg *tgbotapi.Message, state *conversationState) error {
	sess := b.chatSession(msg.Chat.ID)
	if !sess.LoggedIn() {
		b.clearConversation(msg.Chat.ID)
		return b.requireSignin(msg.Chat.ID)
	}

	text := strings.TrimSpace(msg.Text)

	switch state.stage {
	case stageName:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Name is required", cancelKeyboard())
		}
		state.task.Name = text
		state.stage = stageDescription
		return b.sendWithReplyMarkup(msg.Chat.ID, "<b>Step 2:</b> a short description.", cancelKeyboard())
	case stageDescription:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Description is required", cancelKeyboard())
		}
		state.task.Description = text
		state.stage = stageDeadline
		return b.sendWithReplyMarkup(msg.Chat.ID,
			"<b>Step 3:</b> the deadline, e.g. <code>2026-09-30</code>.", cancelKeyboard())
	case stageDeadline:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Deadline is required", cancelKeyboard())
		}
		state.task.Deadline = text
		state.stage = stageCategories
		return b.sendWithReplyMarkup(msg.Chat.ID,
			"<b>Step 4:</b> pick 1-3 categories, then press «Done».", categoryKeyboard())
	case stageCategories:
		return b.handleCategoryPick(msg, state, sess, text)
	default:
		b.clearConversation(msg.Chat.ID)
		return b.sendText(msg.Chat.ID, "Form reset. Start again with /newtask.")
	}
}

func (b *Bot) handleCategoryPick(msg *tgbotapi.Message, state *conversationState, sess *session.Session, text string) error {
	if isDoneInput(text) {
		if len(state.task.Categories) == 0 {
			return b.sendWithReplyMarkup(msg.Chat.ID, "At least one category is required", categoryKeyboard())
		}
		return b.finishTaskForm(msg, state, sess)
	}

	matched := ""
	for _, c := range model.Categories {
		if strings.EqualFold(c, text) {
			matched = c
			break
		}
	}
	if matched == "" {
		return b.sendWithReplyMarkup(msg.Chat.ID,
			"Pick a category from the keyboard or press «Done».", categoryKeyboard())
	}

	for _, c := range state.task.Categories {
		if c == matched {
			return b.sendWithReplyMarkup(msg.Chat.ID,
				fmt.Sprintf("%s is already selected.", escape(matched)), categoryKeyboard())
		}
	}
	if len(state.task.Categories) >= model.MaxCategories {
		// Extra picks are dropped, same as the form's silent truncation.
		return b.sendWithReplyMarkup(msg.Chat.ID, "Maximum 3 categories allowed", categoryKeyboard())
	}

	state.task.Categories = append(state.task.Categories, matched)
	return b.sendWithReplyMarkup(msg.Chat.ID, fmt.Sprintf(
		"🏷 %s (%d/%d). Pick more or press «Done».",
		escape(matched), len(state.task.Categories), model.MaxCategories), categoryKeyboard())
}

func (b *Bot) finishTaskForm(msg *tgbotapi.Message, state *conversationState, sess *session.Session) error {
	input, errs := validate.Task(state.task)
	if !errs.Ok() {
		b.clearConversation(msg.Chat.ID)
		return b.sendWithReplyMarkup(msg.Chat.ID, renderErrors(errs), tgbotapi.NewRemoveKeyboard(true))
	}

	b.clearConversation(msg.Chat.ID)

	var task *model.Task
	if state.editName != "" {
		updated := model.NewTask(input.Name, input.Description, input.Deadline, input.Categories)
		task = sess.Edit(state.editName, updated)
		if task == nil {
			return b.sendWithReplyMarkup(msg.Chat.ID,
				fmt.Sprintf("Task <b>%s</b> is gone, nothing was changed.", escape(state.editName)),
				tgbotapi.NewRemoveKeyboard(true))
		}
		log.Printf("[info] task edited chat=%d name=%q", msg.Chat.ID, input.Name)
	} else {
		task = model.NewTask(input.Name, input.Description, input.Deadline, input.Categories)
		sess.Add(task)
		log.Printf("[info] task added chat=%d name=%q", msg.Chat.ID, input.Name)
	}

	var summary strings.Builder
	if state.editName != "" {
		summary.WriteString("✅ <b>Task updated</b>\n")
	} else {
		summary.WriteString("✅ <b>Task saved</b>\n")
	}
	summary.WriteString(fmt.Sprintf("• <b>Name:</b> %s\n", escape(task.Name)))
	summary.WriteString(fmt.Sprintf("• <b>Description:</b> %s\n", escape(task.Description)))
	summary.WriteString(fmt.Sprintf("• <b>Deadline:</b> %s\n", escape(task.Deadline)))
	summary.WriteString(fmt.Sprintf("• <b>Categories:</b> %s\n", escape(strings.Join(task.Categories, ", "))))

	if err := b.sendWithReplyMarkup(msg.Chat.ID, strings.TrimSpace(summary.String()),
		tgbotapi.NewRemoveKeyboard(true)); err != nil {
		return err
	}
	return b.sendTaskList(msg.Chat.ID, sess)
}

// signupFieldError runs the shared signup rules and returns the message for
// one field, so each conversation step can re-prompt on its own.
func signupFieldError(input validate.SignupInput, field string) string {
	return validate.Signup(input)[field]
}

func renderErrors(errs validate.Errors) string {
	var sb strings.Builder
	for _, field := range errs.Fields() {
		sb.WriteString(fmt.Sprintf("• %s\n", escape(errs[field])))
	}
	return strings.TrimSpace(sb.String())
}
