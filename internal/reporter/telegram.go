package reporter

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-linkedin-doppelganger/internal/browser"
	"go-linkedin-doppelganger/internal/config"
)

// Telegram rejects messages longer than 4096 characters. Escaping can
// double a text, so raw chunks are kept well under half of that.
const chunkRunes = 1800

// sender is the part of tgbotapi.BotAPI the reporter uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramReporter struct {
	bot    sender
	chatID int64
	//pause between messages to avoid 429
	delay time.Duration
}

func NewTelegramReporter(cfg config.TelegramConfig) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.ChatID,
		delay:  time.Second,
	}, nil
}

func (t *TelegramReporter) send(text string, markdown bool) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdownV2
	}
	_, err := t.bot.Send(msg)
	return err
}

// SendPosts delivers a summary line followed by one message per post chunk.
// Nothing is stored; the chat is the only copy outside this process.
func (t *TelegramReporter) SendPosts(ctx context.Context, profile string, posts []string) error {
	for i, text := range PostMessages(profile, posts) {
		if i > 0 {
			if err := browser.Sleep(ctx, t.delay); err != nil {
				return err
			}
		}
		if err := t.send(text, true); err != nil {
			return fmt.Errorf("failed to send message %d: %w", i+1, err)
		}
	}
	return nil
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.send(fmt.Sprintf("❌ Error: %v", errReq), false)
}

func (t *TelegramReporter) SendStatus(message string) error {
	return t.send("ℹ️ "+message, false)
}

// PostMessages renders posts as MarkdownV2 messages that fit Telegram's
// size limit.
func PostMessages(profile string, posts []string) []string {
	msgs := []string{fmt.Sprintf("🔎 *%d posts* from %s", len(posts), escapeMarkdown(profile))}
	for i, post := range posts {
		parts := chunk(post, chunkRunes)
		for j, part := range parts {
			header := fmt.Sprintf("📝 *Post %d*", i+1)
			if len(parts) > 1 {
				header += escapeMarkdown(fmt.Sprintf(" (%d/%d)", j+1, len(parts)))
			}
			msgs = append(msgs, header+"\n"+escapeMarkdown(part))
		}
	}
	return msgs
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// chunk splits text into pieces of at most limit runes, preferring to cut
// at the last newline of a piece.
func chunk(text string, limit int) []string {
	r := []rune(text)
	if len(r) <= limit {
		return []string{text}
	}

	var out []string
	for len(r) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if r[i] == '\n' {
				cut = i + 1
				break
			}
		}
		out = append(out, strings.TrimRight(string(r[:cut]), "\n"))
		r = r[cut:]
	}
	if len(r) > 0 {
		out = append(out, string(r))
	}
	return out
}
