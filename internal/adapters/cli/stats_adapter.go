package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/Chiitoi/Aurora/internal/core/action"
	coreship "github.com/Chiitoi/Aurora/internal/core/ship"
	"github.com/Chiitoi/Aurora/internal/models"
	"github.com/Chiitoi/Aurora/internal/ports/primary"
)

// StatsAdapter is a thin adapter that prints ledger and ship lookups for operators.
type StatsAdapter struct {
	ships  primary.ShipService
	ledger primary.LedgerService
	out    io.Writer
}

// NewStatsAdapter creates a new StatsAdapter.
func NewStatsAdapter(ships primary.ShipService, ledger primary.LedgerService, out io.Writer) *StatsAdapter {
	return &StatsAdapter{
		ships:  ships,
		ledger: ledger,
		out:    out,
	}
}

// ShowShip prints the member's ship, or a notice when there is none.
func (a *StatsAdapter) ShowShip(ctx context.Context, guildID models.GuildID, memberID models.UserID) (*primary.ShipView, error) {
	view, err := a.ships.Show(ctx, guildID, memberID)
	if errors.Is(err, primary.ErrNotPaired) {
		fmt.Fprintf(a.out, "%s %s is not shipped in guild %s\n", color.New(color.FgYellow).Sprint("!"), memberID, guildID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to show ship: %w", err)
	}

	fmt.Fprintf(a.out, "\nShip: %s\n", color.New(color.Bold).Sprint(view.Ship.Name))
	fmt.Fprintf(a.out, "Members:  %s, %s\n", view.Ship.MemberOne, view.Ship.MemberTwo)
	fmt.Fprintf(a.out, "Created:  %s\n", view.Ship.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	age := coreship.Humanize(view.AgeMilliseconds)
	if age == "" {
		age = "just now"
	}
	fmt.Fprintf(a.out, "Age:      %s\n", age)
	fmt.Fprintln(a.out)
	a.printCounts(view.Counts)

	return view, nil
}

// CountShips prints how many ships a guild has.
func (a *StatsAdapter) CountShips(ctx context.Context, guildID models.GuildID) (int, error) {
	n, err := a.ships.CountShips(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to count ships: %w", err)
	}
	noun := "ships"
	if n == 1 {
		noun = "ship"
	}
	fmt.Fprintf(a.out, "Guild %s has %s %s\n", guildID, color.New(color.Bold).Sprint(n), noun)
	return n, nil
}

// Counts prints the pair counts between two members.
func (a *StatsAdapter) Counts(ctx context.Context, guildID models.GuildID, userA, userB models.UserID) (*action.PairCounts, error) {
	counts, err := a.ledger.PairCounts(ctx, guildID, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to read counts: %w", err)
	}
	a.printCounts(*counts)
	return counts, nil
}

// Kills prints the kill rivalry between two members.
func (a *StatsAdapter) Kills(ctx context.Context, guildID models.GuildID, userA, userB models.UserID) (aToB, bToA uint16, err error) {
	aToB, bToA, err = a.ledger.DirectionalSums(ctx, guildID, userA, userB, action.KindKill)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read kills: %w", err)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KILLER\tVICTIM\tKILLS")
	fmt.Fprintln(w, "------\t------\t-----")
	fmt.Fprintf(w, "%s\t%s\t%d\n", userA, userB, aToB)
	fmt.Fprintf(w, "%s\t%s\t%d\n", userB, userA, bToA)
	w.Flush()

	switch {
	case aToB > bToA:
		fmt.Fprintf(a.out, "\n%s leads\n", color.New(color.FgGreen).Sprint(userA))
	case bToA > aToB:
		fmt.Fprintf(a.out, "\n%s leads\n", color.New(color.FgGreen).Sprint(userB))
	default:
		fmt.Fprintf(a.out, "\n%s\n", color.New(color.FgYellow).Sprint("tied"))
	}
	return aToB, bToA, nil
}

func (a *StatsAdapter) printCounts(c action.PairCounts) {
	if c.Empty() {
		fmt.Fprintln(a.out, "No counted actions.")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ACTION\tCOUNT")
	fmt.Fprintln(w, "------\t-----")
	for _, k := range action.PairKinds {
		fmt.Fprintf(w, "%s\t%d\n", k, c.Get(k))
	}
	w.Flush()
}
