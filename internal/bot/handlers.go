package bot

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"blackjackbot/internal/api"
	"blackjackbot/internal/config"
	"blackjackbot/internal/session"
	"blackjackbot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// chatSession bundles a chat's controller with its presenter so the
// table message can be re-issued on /play.
type chatSession struct {
	ctrl      *session.Controller
	presenter *tablePresenter
}

type Handler struct {
	bot   *tgbotapi.BotAPI
	cfg   *config.Config
	store *storage.Store
	log   *logrus.Entry

	mu       sync.Mutex
	sessions map[int64]*chatSession
}

func NewHandler(bot *tgbotapi.BotAPI, cfg *config.Config, store *storage.Store) *Handler {
	return &Handler{
		bot:      bot,
		cfg:      cfg,
		store:    store,
		log:      logrus.WithField("component", "bot"),
		sessions: make(map[int64]*chatSession),
	}
}

// ============== helpers ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.WithError(err).Warn("failed to send message")
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		h.log.WithError(err).Warn("failed to send message")
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.log.WithError(err).Debug("failed to answer callback")
	}
}

// chat returns the live session for a chat, creating and mounting one
// on first contact. Mounting runs the resume reconciliation against
// the remote service.
func (h *Handler) chat(ctx context.Context, chatID int64) (*chatSession, error) {
	h.mu.Lock()
	if s, ok := h.sessions[chatID]; ok {
		h.mu.Unlock()
		return s, nil
	}
	h.mu.Unlock()

	client, err := api.NewClient(h.cfg.APIBaseURL, h.cfg.Production)
	if err != nil {
		return nil, err
	}

	presenter := newTablePresenter(h.bot, chatID, h.cfg.ChipValues)
	ctrl := session.NewController(chatID, client, h.store, session.WallClock{}, presenter)
	s := &chatSession{ctrl: ctrl, presenter: presenter}

	h.mu.Lock()
	if existing, ok := h.sessions[chatID]; ok {
		h.mu.Unlock()
		return existing, nil
	}
	h.sessions[chatID] = s
	h.mu.Unlock()

	ctrl.Mount(ctx)
	return s, nil
}

func (h *Handler) existing(chatID int64) *chatSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[chatID]
}

// ============== commands ==============

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	ctx := context.Background()

	switch {
	case strings.HasPrefix(msg.Text, "/start"):
		h.send(chatID,
			"🎰 Welcome to Blackjack!\n\n"+
				"/play — open the table\n"+
				"/stats — your stats\n"+
				"/settings — table rules\n"+
				"/help — how to play")
		if _, err := h.chat(ctx, chatID); err != nil {
			h.log.WithError(err).Error("failed to open session")
			h.send(chatID, "❌ The table is unavailable right now. Try again later.")
		}

	case strings.HasPrefix(msg.Text, "/play"):
		s, err := h.chat(ctx, chatID)
		if err != nil {
			h.log.WithError(err).Error("failed to open session")
			h.send(chatID, "❌ The table is unavailable right now. Try again later.")
			return
		}
		// Re-issue the table message at the bottom of the chat.
		s.presenter.Detach()
		s.presenter.Render(s.ctrl.Table())

	case strings.HasPrefix(msg.Text, "/stats"):
		s, err := h.chat(ctx, chatID)
		if err != nil {
			h.send(chatID, "❌ The table is unavailable right now. Try again later.")
			return
		}
		h.sendWithKeyboard(chatID, RenderStats(s.ctrl.Stats()), StatsKeyboard())

	case strings.HasPrefix(msg.Text, "/settings"):
		s, err := h.chat(ctx, chatID)
		if err != nil {
			h.send(chatID, "❌ The table is unavailable right now. Try again later.")
			return
		}
		t := s.ctrl.Table()
		if !t.BettingOpen {
			h.send(chatID, "⏳ Finish the hand first, then change the rules.")
			return
		}
		h.sendWithKeyboard(chatID, "⚙️ Game Settings", SettingsKeyboard(t))

	case strings.HasPrefix(msg.Text, "/help"):
		h.send(chatID,
			"📖 Blackjack:\n\n"+
				"🎯 Beat the dealer without going over 21\n\n"+
				"📊 Cards:\n"+
				"• 2-10 — face value\n"+
				"• J, Q, K — 10\n"+
				"• A — 11 or 1\n\n"+
				"🎮 Actions:\n"+
				"• Hit — take a card\n"+
				"• Stand — stop\n"+
				"• Double — double the bet, one card\n"+
				"• Split — turn a pair into two hands\n"+
				"• Insurance — side bet when the dealer shows an ace")
	}
}

// ============== callbacks ==============

func (h *Handler) HandleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	ctx := context.Background()

	s := h.existing(chatID)
	if s == nil {
		h.answerCallback(cb.ID, "")
		h.send(chatID, "The table is closed. Use /play to open it.")
		return
	}

	data := cb.Data
	switch {
	case strings.HasPrefix(data, chipPrefix):
		amount, err := strconv.Atoi(strings.TrimPrefix(data, chipPrefix))
		if err == nil && amount > 0 {
			s.ctrl.PlaceBet(ctx, amount)
		}

	case data == CallbackDeal:
		s.ctrl.Deal(ctx)

	case data == CallbackHit:
		s.ctrl.Hit(ctx)

	case data == CallbackStand:
		s.ctrl.Stand(ctx)

	case data == CallbackDouble:
		s.ctrl.DoubleDown(ctx)

	case data == CallbackSplit:
		s.ctrl.Split(ctx)

	case data == CallbackResume:
		s.ctrl.Resume()

	case data == CallbackFresh:
		s.ctrl.FreshStart(ctx)

	case data == CallbackInsure:
		s.ctrl.Insure(ctx, s.ctrl.Table().Insurance.Max)

	case data == CallbackDecline:
		s.ctrl.DeclineInsurance(ctx)

	case data == CallbackReset:
		s.ctrl.ResetStats()
		h.editStats(cb, s)

	case strings.HasPrefix(data, decksPrefix):
		if decks, err := strconv.Atoi(strings.TrimPrefix(data, decksPrefix)); err == nil {
			s.ctrl.SetDeckCount(decks)
			h.editSettings(cb, s)
		}

	case data == soft17On:
		s.ctrl.SetDealerRule(true)
		h.editSettings(cb, s)

	case data == soft17Off:
		s.ctrl.SetDealerRule(false)
		h.editSettings(cb, s)

	case data == backRed:
		s.ctrl.SetCardBack("red")
		h.editSettings(cb, s)

	case data == backBlue:
		s.ctrl.SetCardBack("blue")
		h.editSettings(cb, s)
	}

	h.answerCallback(cb.ID, "")
}

func (h *Handler) editStats(cb *tgbotapi.CallbackQuery, s *chatSession) {
	kb := StatsKeyboard()
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, RenderStats(s.ctrl.Stats()))
	edit.ReplyMarkup = &kb
	if _, err := h.bot.Send(edit); err != nil {
		h.log.WithError(err).Debug("failed to edit stats message")
	}
}

func (h *Handler) editSettings(cb *tgbotapi.CallbackQuery, s *chatSession) {
	kb := SettingsKeyboard(s.ctrl.Table())
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, "⚙️ Game Settings")
	edit.ReplyMarkup = &kb
	if _, err := h.bot.Send(edit); err != nil {
		h.log.WithError(err).Debug("failed to edit settings message")
	}
}
