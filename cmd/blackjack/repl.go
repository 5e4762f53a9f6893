package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/games/blackjack"
)

const helpText = `Commands:
  deal (d)          start a round
  hit (h)           take a card
  stand (s)         let the dealer play and settle
  bet <amount>      set the wager for the next deal
  balance (b)       show balance and bet
  history [n]       show the last n rounds (default 10)
  summary           show totals across all rounds
  help              show this text
  quit (q)          leave the table
`

const defaultHistory = 10

// repl reads one command per line and plays it against a session
type repl struct {
	session *blackjack.Session
	out     io.Writer
	render  *renderer
}

func newREPL(session *blackjack.Session, out io.Writer, render *renderer) *repl {
	return &repl{session: session, out: out, render: render}
}

// Run processes commands until quit, end of input or ctx is done
func (r *repl) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	fmt.Fprint(r.out, helpText)
	for {
		fmt.Fprint(r.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := r.exec(ctx, line); quit {
				return nil
			}
		}
	}
}

// exec runs a single command and reports whether the player left
func (r *repl) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "deal", "d":
		r.show(r.session.Deal(ctx))
	case "hit", "h":
		r.show(r.session.Hit(ctx))
	case "stand", "s":
		r.show(r.session.Stand(ctx))
	case "bet":
		r.bet(fields[1:])
	case "balance", "b":
		v := r.session.View()
		fmt.Fprintf(r.out, "Balance: %d  Bet: %d\n", v.Balance, v.Bet)
	case "history":
		r.history(ctx, fields[1:])
	case "summary":
		s, err := r.session.Summary(ctx)
		if err != nil {
			r.error(err)
			return false
		}
		fmt.Fprint(r.out, summary(s))
	case "help", "?":
		fmt.Fprint(r.out, helpText)
	case "quit", "q", "exit":
		return true
	default:
		fmt.Fprintf(r.out, "Unknown command %q. Type help for the list.\n", fields[0])
	}
	return false
}

func (r *repl) show(v *blackjack.View, err error) {
	if err != nil {
		r.error(err)
		// a failed save still settled the round
		if !types.IsGameError(err, types.ErrDatabaseError) {
			return
		}
	}
	fmt.Fprint(r.out, r.render.table(v))
}

func (r *repl) bet(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "Usage: bet <amount>")
		return
	}
	amount, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "Invalid amount %q\n", args[0])
		return
	}
	if err := r.session.SetBet(amount); err != nil {
		r.error(err)
		return
	}
	fmt.Fprintf(r.out, "Bet set to %d\n", amount)
}

func (r *repl) history(ctx context.Context, args []string) {
	limit := defaultHistory
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintf(r.out, "Invalid count %q\n", args[0])
			return
		}
		limit = n
	}
	records, err := r.session.History(ctx, limit)
	if err != nil {
		r.error(err)
		return
	}
	fmt.Fprint(r.out, r.render.history(records))
}

func (r *repl) error(err error) {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		fmt.Fprintln(r.out, gameErr.Message)
		return
	}
	fmt.Fprintf(r.out, "Error: %v\n", err)
}
