package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"blackjackbot/internal/api"
	"blackjackbot/internal/game"
	"blackjackbot/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	revealStepDelay = 500 * time.Millisecond
	bustRevealDelay = time.Second
)

// pendingState holds the two candidate snapshots while the player
// decides between resuming and starting fresh.
type pendingState struct {
	server *api.GameResponse
	local  *Table
}

// Controller owns one player's view state. The remote service is the
// source of truth for everything but the bust case; the controller
// sequences events through the reducer, paces the dealer reveal, and
// keeps the local snapshot and stats written behind every change.
//
// Methods serialize on the mutex, including through the reveal
// sequence. That is the debounce the UI relies on: a second action
// arriving mid-animation waits and then finds its phase guard closed.
type Controller struct {
	mu sync.Mutex

	chatID    int64
	api       *api.Client
	store     *storage.Store
	clock     Clock
	presenter Presenter
	log       *logrus.Entry

	table      Table
	stats      Stats
	canPersist bool
	pending    *pendingState
}

func NewController(chatID int64, client *api.Client, store *storage.Store, clock Clock, presenter Presenter) *Controller {
	sessionID := uuid.NewString()
	return &Controller{
		chatID:    chatID,
		api:       client,
		store:     store,
		clock:     clock,
		presenter: presenter,
		log: logrus.WithFields(logrus.Fields{
			"component": "session",
			"chat":      chatID,
			"session":   sessionID,
		}),
		table: NewTable(sessionID),
		stats: DefaultStats(1000),
	}
}

func (c *Controller) Table() Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table
}

func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Mount loads stats and the cached snapshot, asks the server for its
// copy, and decides between hydrating directly and prompting the
// player to resume. Runs once per controller.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := DefaultStats(c.table.Balance)
	c.store.Load(c.chatID, storage.KeyStats, &stored)
	c.stats = stored

	var local *Table
	var snapshot Table
	if c.store.Load(c.chatID, storage.KeyGameState, &snapshot) {
		local = &snapshot
	}

	resp, err := c.api.State(ctx)
	if err != nil {
		c.log.WithError(err).Warn("unable to fetch saved state")
		if local != nil {
			c.hydrateLocal(*local)
		} else {
			c.stats = c.stats.ResetSession()
			c.persistStats()
			c.canPersist = true
		}
		c.render()
		return
	}

	if responseHasLiveHand(resp) || (local != nil && local.HasLiveHand()) {
		c.pending = &pendingState{server: resp, local: local}
		c.table.Phase = PhaseAwaitingResumeDecision
		c.render()
		return
	}

	c.stats = c.stats.ResetSession()
	c.persistStats()
	c.hydrateServer(resp, "")
	c.render()
}

// Resume continues the in-progress round, preferring the server's copy
// when it has a live hand.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		c.canPersist = true
		c.render()
		return
	}

	if responseHasLiveHand(c.pending.server) {
		fallback := ""
		if c.pending.local != nil {
			fallback = c.pending.local.Message
		}
		c.hydrateServer(c.pending.server, fallback)
	} else if c.pending.local != nil {
		c.hydrateLocal(*c.pending.local)
	}
	c.pending = nil
	c.render()
}

// FreshStart abandons any saved round: resets the server game, clears
// the session-scoped stats and overwrites the snapshot.
func (c *Controller) FreshStart(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop the saved round first so a failed reset does not re-prompt
	// on the next mount.
	c.store.Delete(c.chatID, storage.KeyGameState)

	resp, err := c.api.Reset(ctx, c.table.NumberOfDecks, c.table.DealerHitsOnSoft17)
	if err != nil {
		c.log.WithError(err).Warn("unable to reset game")
		return
	}

	c.pending = nil
	cardBack := c.table.CardBackColor
	decks := c.table.NumberOfDecks
	hitsSoft17 := c.table.DealerHitsOnSoft17
	c.table = NewTable(c.table.SessionID)
	if cardBack != "" {
		c.table.CardBackColor = cardBack
	}
	c.table.NumberOfDecks = decks
	c.table.DealerHitsOnSoft17 = hitsSoft17
	c.hydrateServer(resp, "")
	if c.table.DeckSize == 0 {
		c.table.DeckSize = decks * 52
	}
	c.stats = c.stats.ResetSession()
	c.stats.MostHandsWon = 0
	c.stats = c.stats.WithBankroll(c.table.Balance)
	c.persistStats()
	c.persistSnapshot()
	c.render()
}

// PlaceBet adds a chip to the standing bet. The over-balance case is a
// purely local rejection; the server is only told about valid bets.
func (c *Controller) PlaceBet(ctx context.Context, amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.table.BettingOpen {
		return
	}
	if c.table.CurrentBet+amount > c.table.Balance {
		c.table = Reduce(c.table, MessageShown{Text: MsgBetTooHigh})
		c.render()
		return
	}

	newBet := c.table.CurrentBet + amount
	resp, err := c.api.PlaceBet(ctx, newBet)
	if err != nil {
		c.log.WithError(err).Warn("unable to place bet")
		return
	}

	c.table = Reduce(c.table, BetPlaced{Amount: newBet, Balance: resp.Balance})
	c.persistSnapshot()
	c.render()
}

// Deal starts the round with the standing bet.
func (c *Controller) Deal(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.table.BettingOpen || c.table.CurrentBet == 0 {
		return
	}

	roundBet := c.table.CurrentBet
	resp, err := c.api.Start(ctx, c.table.NumberOfDecks, c.table.DealerHitsOnSoft17)
	if err != nil {
		c.log.WithError(err).Warn("unable to start game")
		return
	}

	c.table = Reduce(c.table, Dealt{Resp: resp})
	c.stats = c.stats.WithBankroll(c.table.Balance)
	c.persistStats()
	c.persistSnapshot()
	c.render()

	// Dealt blackjack resolves the round before the player ever acts.
	if resp.GameOver && !resp.InsurancePending() {
		c.settleRound(resp, roundBet)
	}
}

// Hit draws one card for the active hand.
func (c *Controller) Hit(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.playerCanAct() {
		return
	}

	roundBet := c.table.CurrentBet
	resp, err := c.api.Hit(ctx)
	if err != nil {
		c.log.WithError(err).Warn("unable to hit")
		return
	}

	c.table = Reduce(c.table, HandsUpdated{Resp: resp})

	// The server drops the turn flag once a hand busts, so a bare
	// single hand is still "the hand that just acted".
	acted := c.table.ActiveHand()
	if acted == nil && len(c.table.PlayerHands) == 1 {
		acted = &c.table.PlayerHands[0]
	}
	busted := acted != nil && acted.Score() > 21

	if busted && (resp.GameOver || len(c.table.PlayerHands) == 1) {
		// The one outcome the client calls on its own.
		c.table = Reduce(c.table, HoleCardRevealed{})
		c.render()
		c.clock.Sleep(bustRevealDelay)
		c.endRound(game.OutcomeLoss, MsgBust, 0, resp.Balance)
		return
	}

	if resp.GameOver {
		c.settleRound(resp, roundBet)
		return
	}

	c.persistSnapshot()
	c.render()
}

// Stand finishes the active hand and plays out the dealer reveal.
func (c *Controller) Stand(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.playerCanAct() {
		return
	}

	roundBet := c.table.CurrentBet
	resp, err := c.api.Stand(ctx)
	if err != nil {
		c.log.WithError(err).Warn("unable to stand")
		return
	}

	c.table = Reduce(c.table, HandsUpdated{Resp: resp})

	if !resp.GameOver {
		// More split hands still to play.
		c.persistSnapshot()
		c.render()
		return
	}

	c.settleRound(resp, roundBet)
}

// DoubleDown doubles the bet, takes exactly one card and stands. This
// is the one action whose server-side rejection message reaches the
// player.
func (c *Controller) DoubleDown(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.playerCanAct() || !c.table.CanDouble() {
		return
	}

	doubledBet := c.table.CurrentBet * 2
	resp, err := c.api.DoubleDown(ctx)
	if err != nil {
		c.log.WithError(err).Warn("unable to double down")
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			c.table = Reduce(c.table, MessageShown{Text: apiErr.Message})
			c.render()
		}
		return
	}

	c.table = Reduce(c.table, HandsUpdated{Resp: resp})
	c.clock.Sleep(revealStepDelay)

	if !resp.GameOver {
		c.persistSnapshot()
		c.render()
		return
	}

	c.settleRound(resp, doubledBet)
}

// Split turns a pair into two hands, each with the original bet.
func (c *Controller) Split(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.playerCanAct() || !c.table.CanSplit() {
		return
	}

	resp, err := c.api.Split(ctx)
	if err != nil {
		c.log.WithError(err).Warn("unable to split")
		return
	}

	c.table = Reduce(c.table, HandsUpdated{Resp: resp})
	if resp.Balance != nil {
		c.stats = c.stats.WithBankroll(*resp.Balance)
		c.persistStats()
	}
	c.persistSnapshot()
	c.render()
}

// Insure places the insurance side bet; zero declines it. Until one or
// the other happens the regular actions stay locked.
func (c *Controller) Insure(ctx context.Context, amount int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.table.Insurance.Pending() {
		return
	}

	resp, err := c.api.ResolveInsurance(ctx, amount)
	if err != nil {
		c.log.WithError(err).Warn("unable to resolve insurance")
		return
	}

	c.table = Reduce(c.table, InsuranceUpdated{Resp: resp})
	if amount > 0 {
		msg := MsgInsuranceLost
		if c.table.Insurance.Outcome == "WON" {
			msg = MsgInsuranceWon
		}
		c.table = Reduce(c.table, MessageShown{Text: msg})
	}
	c.stats = c.stats.WithBankroll(c.table.Balance)
	c.persistStats()
	c.persistSnapshot()
	c.render()

	if resp.GameOver {
		// Dealer blackjack ends the round as soon as insurance settles.
		c.settleRound(resp, c.table.CurrentBet)
	}
}

func (c *Controller) DeclineInsurance(ctx context.Context) {
	c.Insure(ctx, 0)
}

// SetDeckCount, SetDealerRule and SetCardBack edit the table settings;
// all are locked while a round is in progress.
func (c *Controller) SetDeckCount(decks int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.table.BettingOpen || decks < 1 || decks > 8 {
		return
	}
	c.table = Reduce(c.table, DeckCountChanged{Decks: decks})
	c.persistSnapshot()
	c.render()
}

func (c *Controller) SetDealerRule(hitsSoft17 bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.table.BettingOpen {
		return
	}
	c.table = Reduce(c.table, DealerRuleChanged{HitsSoft17: hitsSoft17})
	c.persistSnapshot()
	c.render()
}

func (c *Controller) SetCardBack(color string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if color != "red" && color != "blue" {
		return
	}
	c.table = Reduce(c.table, CardBackChanged{Color: color})
	c.persistSnapshot()
	c.render()
}

// ResetStats restores the defaults, seeding the bankroll high-water
// mark from the current balance.
func (c *Controller) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats = DefaultStats(c.table.Balance)
	c.persistStats()
	c.render()
}

// ---- internals ----

// playerCanAct gates hit/stand/double/split: a live player turn, no
// reveal in flight, no unresolved insurance decision.
func (c *Controller) playerCanAct() bool {
	if c.table.Phase != PhasePlayerTurn || c.table.GameOver {
		return false
	}
	if c.table.Insurance.Pending() {
		return false
	}
	return len(c.table.PlayerHands) > 0
}

// settleRound plays the staged dealer reveal and applies the server's
// verdict: hole card first, then one card per step at a fixed cadence.
func (c *Controller) settleRound(resp *api.GameResponse, roundBet int) {
	final := resp.DealerHand

	c.table = Reduce(c.table, HoleCardRevealed{})
	c.render()
	c.clock.Sleep(revealStepDelay)

	shown := len(final)
	if shown > 2 {
		shown = 2
	}
	c.table = Reduce(c.table, DealerHandSet{Cards: final[:shown]})
	c.render()

	for i := shown; i < len(final); i++ {
		c.clock.Sleep(revealStepDelay)
		c.table = Reduce(c.table, DealerHandSet{Cards: final[:i+1]})
		c.render()
	}

	outcome, message, payout := verdict(resp, c.table.PlayerHands, roundBet)
	balance := resp.Balance
	if balance == nil {
		fallback := c.fallbackBalance(outcome, roundBet)
		balance = &fallback
	}
	c.endRound(outcome, message, payout, balance)
}

// endRound applies outcome bookkeeping and reopens betting.
func (c *Controller) endRound(outcome, message string, payout int, balance *int) {
	c.table = Reduce(c.table, RoundEnded{Message: message, Balance: balance})

	if len(c.table.PlayerHands) > 1 {
		for _, h := range c.table.PlayerHands {
			if h.Outcome == "" {
				continue
			}
			pay := 0
			if h.Outcome == game.OutcomeWin {
				pay = h.Bet
			}
			c.stats = c.stats.ApplyOutcome(h.Outcome, pay, c.table.Balance)
		}
	} else {
		c.stats = c.stats.ApplyOutcome(outcome, payout, c.table.Balance)
	}
	c.persistStats()

	c.table = Reduce(c.table, RoundSettled{})
	c.persistSnapshot()
	c.render()
}

// verdict maps a round-ending response to (outcome, message, payout).
// Split rounds are summarized from the per-hand outcomes.
func verdict(resp *api.GameResponse, hands []game.Hand, roundBet int) (string, string, int) {
	if len(hands) > 1 {
		wins, losses, ties := 0, 0, 0
		for _, h := range hands {
			switch h.Outcome {
			case game.OutcomeWin:
				wins++
			case game.OutcomeLoss:
				losses++
			case game.OutcomeTie:
				ties++
			}
		}
		switch {
		case wins > 0 && losses == 0 && ties == 0:
			return game.OutcomeWin, MsgWin, roundBet
		case losses > 0 && wins == 0 && ties == 0:
			return game.OutcomeLoss, MsgDealerWin, 0
		case ties > 0 && wins == 0 && losses == 0:
			return game.OutcomeTie, MsgTie, 0
		default:
			return mixedOutcome(wins, losses), splitSummary(wins, losses, ties), roundBet
		}
	}

	if resp.PlayerWins {
		return game.OutcomeWin, MsgWin, roundBet
	}
	if resp.Tie {
		return game.OutcomeTie, MsgTie, 0
	}
	return game.OutcomeLoss, MsgDealerWin, 0
}

func mixedOutcome(wins, losses int) string {
	if wins >= losses {
		return game.OutcomeWin
	}
	return game.OutcomeLoss
}

func splitSummary(wins, losses, ties int) string {
	parts := []string{}
	if wins > 0 {
		parts = append(parts, fmt.Sprintf("%d won", wins))
	}
	if losses > 0 {
		parts = append(parts, fmt.Sprintf("%d lost", losses))
	}
	if ties > 0 {
		parts = append(parts, fmt.Sprintf("%d pushed", ties))
	}
	return "Split table: " + strings.Join(parts, ", ")
}

func (c *Controller) fallbackBalance(outcome string, roundBet int) int {
	switch outcome {
	case game.OutcomeWin:
		return c.table.Balance + roundBet*2
	case game.OutcomeTie:
		return c.table.Balance + roundBet
	default:
		return c.table.Balance
	}
}

func (c *Controller) hydrateServer(resp *api.GameResponse, fallbackMessage string) {
	c.table = Reduce(c.table, Hydrated{Resp: resp, FallbackMessage: fallbackMessage})
	c.stats = c.stats.WithBankroll(c.table.Balance)
	c.canPersist = true
	c.persistSnapshot()
}

func (c *Controller) hydrateLocal(snapshot Table) {
	sessionID := c.table.SessionID
	c.table = snapshot
	c.table.SessionID = sessionID
	if c.table.BettingOpen {
		c.table.Phase = PhaseBetting
	} else {
		c.table.Phase = PhasePlayerTurn
	}
	c.canPersist = true
}

func (c *Controller) persistSnapshot() {
	if !c.canPersist {
		return
	}
	c.store.Persist(c.chatID, storage.KeyGameState, c.table)
}

func (c *Controller) persistStats() {
	c.store.Persist(c.chatID, storage.KeyStats, c.stats)
}

func (c *Controller) render() {
	if c.presenter != nil {
		c.presenter.Render(c.table)
	}
}

func responseHasLiveHand(r *api.GameResponse) bool {
	if r == nil {
		return false
	}
	for _, h := range r.PlayerHands {
		if len(h.Cards) > 0 {
			return true
		}
	}
	if len(r.DealerHand) > 0 {
		return true
	}
	if r.CurrentBet != nil && *r.CurrentBet > 0 {
		return true
	}
	return r.BettingOpen != nil && !*r.BettingOpen
}

