package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/games/blackjack"
	engine "github.com/fadedpez/blackjack/pkg/services/blackjack"
)

var suitSymbols = map[entities.Suit]string{
	entities.Spades:   "♠",
	entities.Hearts:   "♥",
	entities.Diamonds: "♦",
	entities.Clubs:    "♣",
}

// renderer turns session views into terminal lines
type renderer struct {
	red    lipgloss.Style
	black  lipgloss.Style
	hidden lipgloss.Style
	label  lipgloss.Style
	win    lipgloss.Style
	lose   lipgloss.Style
	push   lipgloss.Style
}

func newRenderer(color bool) *renderer {
	if !color {
		plain := lipgloss.NewStyle()
		return &renderer{red: plain, black: plain, hidden: plain, label: plain, win: plain, lose: plain, push: plain}
	}
	return &renderer{
		red:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		black:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		hidden: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		label:  lipgloss.NewStyle().Bold(true),
		win:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		lose:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		push:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
}

func (r *renderer) card(c entities.Card, reveal bool) string {
	if !reveal && !c.FaceUp {
		return r.hidden.Render("[??]")
	}
	text := string(c.Rank) + suitSymbols[c.Suit]
	if c.Suit == entities.Hearts || c.Suit == entities.Diamonds {
		return r.red.Render(text)
	}
	return r.black.Render(text)
}

// hand renders a row of cards. With hideHole only the first card can be
// hidden, and only while it is face down.
func (r *renderer) hand(cards []entities.Card, hideHole bool) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.card(c, !hideHole || i > 0)
	}
	return strings.Join(parts, " ")
}

func totals(t engine.Totals, bust bool) string {
	if bust {
		return "bust"
	}
	values := t.Values()
	if len(values) == 2 {
		return fmt.Sprintf("%d/%d", values[0], values[1])
	}
	return fmt.Sprintf("%d", values[0])
}

// table renders both hands. The dealer total is only shown once the hole
// card is turned.
func (r *renderer) table(v *blackjack.View) string {
	var b strings.Builder

	dealerTotal := "?"
	if v.Finished() || holeTurned(v.DealerCards) {
		dealerTotal = totals(v.DealerTotals, v.DealerBust)
	}

	fmt.Fprintf(&b, "%s %s (%s)\n", r.label.Render("Dealer:"), r.hand(v.DealerCards, !v.Finished()), dealerTotal)
	fmt.Fprintf(&b, "%s %s (%s)\n", r.label.Render("You:   "), r.hand(v.PlayerCards, false), totals(v.PlayerTotals, v.PlayerBust))

	if v.Status == entities.StatusBlackjack {
		b.WriteString("Blackjack! Stand to see what the dealer has.\n")
	}
	if v.Settlement != nil {
		b.WriteString(r.outcome(v.Settlement))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Balance: %d  Bet: %d\n", v.Balance, v.Bet)
	return b.String()
}

func (r *renderer) outcome(s *engine.Settlement) string {
	switch {
	case s.EmptyDeck:
		return r.lose.Render("The shoe ran out. Dealer wins.")
	case s.Outcome == engine.OutcomeWin:
		return r.win.Render(fmt.Sprintf("You win %d!", s.Delta))
	case s.Outcome == engine.OutcomePush:
		return r.push.Render("Push. Your bet is returned.")
	case s.Delta == 0:
		return r.lose.Render("Bust. Dealer wins.")
	default:
		return r.lose.Render(fmt.Sprintf("Dealer wins. You lose %d.", -s.Delta))
	}
}

func (r *renderer) history(records []*entities.RoundRecord) string {
	if len(records) == 0 {
		return "No rounds played yet.\n"
	}
	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%s  %-10s  you %2d  dealer %2d  net %+d  balance %d\n",
			rec.CompletedAt.Format("15:04:05"), rec.Status, rec.PlayerTotal, rec.DealerTotal, rec.Net(), rec.BalanceAfter)
	}
	return b.String()
}

func summary(s *entities.RoundSummary) string {
	return fmt.Sprintf("Rounds: %d  Wins: %d  Losses: %d  Pushes: %d  Win rate: %.1f%%  Net: %+d\n",
		s.Rounds, s.Wins, s.Losses, s.Pushes, s.WinRate(), s.Net)
}

func holeTurned(cards []entities.Card) bool {
	return len(cards) > 0 && cards[0].FaceUp
}
