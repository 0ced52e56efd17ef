package bot

import (
	"sync"

	"blackjackbot/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// tablePresenter renders controller frames into one Telegram message
// per chat, sending it on the first frame and editing it afterwards.
// The staged dealer reveal therefore plays out as successive edits.
type tablePresenter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	chips  []int
	log    *logrus.Entry

	mu        sync.Mutex
	messageID int
}

func newTablePresenter(bot *tgbotapi.BotAPI, chatID int64, chips []int) *tablePresenter {
	return &tablePresenter{
		bot:    bot,
		chatID: chatID,
		chips:  chips,
		log: logrus.WithFields(logrus.Fields{
			"component": "presenter",
			"chat":      chatID,
		}),
	}
}

func (p *tablePresenter) Render(t session.Table) {
	p.mu.Lock()
	defer p.mu.Unlock()

	text := RenderTable(t)
	keyboard := TableKeyboard(t, p.chips)

	if p.messageID == 0 {
		msg := tgbotapi.NewMessage(p.chatID, text)
		if len(keyboard.InlineKeyboard) > 0 {
			msg.ReplyMarkup = keyboard
		}
		sent, err := p.bot.Send(msg)
		if err != nil {
			p.log.WithError(err).Warn("failed to send table message")
			return
		}
		p.messageID = sent.MessageID
		return
	}

	edit := tgbotapi.NewEditMessageText(p.chatID, p.messageID, text)
	if len(keyboard.InlineKeyboard) > 0 {
		edit.ReplyMarkup = &keyboard
	}
	if _, err := p.bot.Send(edit); err != nil {
		// "message is not modified" is routine when a frame repeats.
		p.log.WithError(err).Debug("failed to edit table message")
	}
}

// Detach makes the next frame start a fresh message instead of editing
// the old one, used when the player re-opens the table.
func (p *tablePresenter) Detach() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messageID = 0
}
