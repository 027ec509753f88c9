package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"TaskBadger/bot/workflow"
	"TaskBadger/bot/workflow/task"
	"TaskBadger/entity"
	"TaskBadger/internal/lib/sl"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
)

// TaskLister lists a user's saved tasks for the /tasks command.
type TaskLister interface {
	ListTasks(ctx context.Context, conversationID, userID string) ([]entity.Task, error)
}

// TgBot is the Telegram transport. It owns no workflow state: every
// message is converted to a workflow key and routed to the feature
// manager that has an active session for it.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	create      *task.CreateManager
	change      *task.ChangeManager
	lister      TaskLister
}

// NewTgBot creates a new Telegram bot instance.
func NewTgBot(botName, apiKey string, create *task.CreateManager, change *task.ChangeManager, lister TaskLister, log *slog.Logger) (*TgBot, error) {
	bot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		botUsername: botName,
		create:      create,
		change:      change,
		lister:      lister,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	bot.api = api

	return bot, nil
}

// Start begins polling for updates and handling them. Blocks until the
// updater stops.
func (b *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(bot *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", b.handleStart))
	dispatcher.AddHandler(handlers.NewCommand("newtask", b.handleNewTask))
	dispatcher.AddHandler(handlers.NewCommand("changetask", b.handleChangeTask))
	dispatcher.AddHandler(handlers.NewCommand("tasks", b.handleTasks))
	dispatcher.AddHandler(handlers.NewCommand("cancel", b.handleCancel))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, b.handleMessage))

	err := updater.StartPolling(b.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	b.log.Info("bot started", slog.String("username", b.botUsername))

	updater.Idle()

	return nil
}

// messageKey builds the workflow session key from a Telegram update. The
// chat is the conversation; the sender is the user within it.
func messageKey(ctx *ext.Context) workflow.Key {
	return workflow.Key{
		ConversationID: strconv.FormatInt(ctx.EffectiveChat.Id, 10),
		UserID:         strconv.FormatInt(ctx.EffectiveUser.Id, 10),
	}
}

// commandArgs returns everything after the command itself, trimmed.
func commandArgs(text string) string {
	if i := strings.IndexAny(text, " \n"); i >= 0 {
		return strings.TrimSpace(text[i+1:])
	}
	return ""
}

func (b *TgBot) handleStart(bot *tgbotapi.Bot, ctx *ext.Context) error {
	b.plainResponse(ctx.EffectiveChat.Id,
		"Hi! I keep track of your tasks and badger you about them.\n\n"+
			"/newtask — create a task\n"+
			"/changetask <name> — edit a task\n"+
			"/tasks — list your tasks\n"+
			"/cancel — abandon the current conversation")
	return nil
}

func (b *TgBot) handleNewTask(bot *tgbotapi.Bot, ctx *ext.Context) error {
	key := messageKey(ctx)
	seed := commandArgs(ctx.EffectiveMessage.Text)

	resp, err := b.create.Start(context.Background(), key, seed)
	return b.deliver(ctx, key, resp, err)
}

func (b *TgBot) handleChangeTask(bot *tgbotapi.Bot, ctx *ext.Context) error {
	key := messageKey(ctx)
	seed := commandArgs(ctx.EffectiveMessage.Text)

	resp, err := b.change.Start(context.Background(), key, seed)
	return b.deliver(ctx, key, resp, err)
}

func (b *TgBot) handleTasks(bot *tgbotapi.Bot, ctx *ext.Context) error {
	key := messageKey(ctx)

	list, err := b.lister.ListTasks(context.Background(), key.ConversationID, key.UserID)
	if err != nil {
		b.log.Error("listing tasks", slog.String("user_id", key.UserID), sl.Err(err))
		b.plainResponse(ctx.EffectiveChat.Id, "Something went wrong while fetching your tasks.")
		return nil
	}

	if len(list) == 0 {
		b.plainResponse(ctx.EffectiveChat.Id, "You have no tasks yet. Send /newtask to create one.")
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Your tasks:\n")
	for i, t := range list {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, t.Name))
		if t.IsRecurring() {
			sb.WriteString(" (repeats)")
		}
		sb.WriteString("\n")
	}
	b.plainResponse(ctx.EffectiveChat.Id, sb.String())
	return nil
}

func (b *TgBot) handleCancel(bot *tgbotapi.Bot, ctx *ext.Context) error {
	key := messageKey(ctx)

	for _, m := range b.managers() {
		if m.Active(key) {
			if err := m.Abandon(key); err != nil {
				b.log.Error("abandoning workflow",
					slog.String("workflow", m.Tag().String()), sl.Err(err))
				continue
			}
			b.plainResponse(ctx.EffectiveChat.Id, "Okay, I've dropped that. Nothing was saved.")
			return nil
		}
	}

	b.plainResponse(ctx.EffectiveChat.Id, "Nothing to cancel.")
	return nil
}

// featureManager is the common surface of the task workflow managers.
type featureManager interface {
	Tag() workflow.Tag
	Active(key workflow.Key) bool
	Abandon(key workflow.Key) error
	Continue(ctx context.Context, key workflow.Key, text string) (workflow.Response, error)
}

func (b *TgBot) managers() []featureManager {
	return []featureManager{b.create, b.change}
}

// handleMessage routes plain text to whichever manager owns an active
// session for this chat and user.
func (b *TgBot) handleMessage(bot *tgbotapi.Bot, ctx *ext.Context) error {
	key := messageKey(ctx)
	text := strings.TrimSpace(ctx.EffectiveMessage.Text)
	if text == "" {
		return nil
	}

	for _, m := range b.managers() {
		if !m.Active(key) {
			continue
		}
		resp, err := m.Continue(context.Background(), key, text)
		return b.deliver(ctx, key, resp, err)
	}

	b.plainResponse(ctx.EffectiveChat.Id,
		"I'm not in the middle of anything. Send /newtask or /changetask <name>.")
	return nil
}

// deliver renders a workflow response back into the chat.
func (b *TgBot) deliver(ctx *ext.Context, key workflow.Key, resp workflow.Response, err error) error {
	chatId := ctx.EffectiveChat.Id

	if err != nil {
		switch err {
		case workflow.ErrAlreadyInWorkflow:
			b.plainResponse(chatId, "We're already working on something. Finish it or send /cancel first.")
			return nil
		case workflow.ErrNoActiveWorkflow:
			b.plainResponse(chatId, "I'm not in the middle of anything. Send /newtask or /changetask <name>.")
			return nil
		default:
			b.log.Error("workflow turn failed",
				slog.String("user_id", key.UserID), sl.Err(err))
			b.plainResponse(chatId, "Something went wrong on my side. Your progress is kept; try that again.")
			return nil
		}
	}

	text := resp.Text
	if len(resp.Options) > 0 {
		text = workflow.FormatNumbered(text, resp.Options)
	}
	b.plainResponse(chatId, text)
	return nil
}

func (b *TgBot) plainResponse(chatId int64, text string) {
	sanitized := sanitize(text, false)

	if sanitized == "" {
		b.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
		return
	}

	_, err := b.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err != nil {
		b.log.With(
			slog.Int64("id", chatId),
		).Warn("sending message", sl.Err(err))
		_, err = b.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
		if err != nil {
			b.log.With(
				slog.Int64("id", chatId),
			).Error("sending safe message", sl.Err(err))
		}
	}
}

func sanitize(input string, preserveLinks bool) string {
	// Reserved characters that MarkdownV2 requires escaping
	reservedChars := "\\`_{}#+-.!|()[]"
	if preserveLinks {
		reservedChars = "\\`_{}#+-.!|"
	}

	var sanitized strings.Builder
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			sanitized.WriteRune('\\')
		}
		sanitized.WriteRune(char)
	}

	return sanitized.String()
}
