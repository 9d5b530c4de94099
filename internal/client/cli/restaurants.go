package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tablebook/tablebook/internal/client/services"
)

// Restaurants lists venues. Optional arguments filter the list: a bare word
// is a search term, "cuisine=italian" narrows by cuisine.
func (a *App) Restaurants(ctx context.Context, args []string) error {
	var filter services.RestaurantFilter
	for _, arg := range args {
		if v, ok := strings.CutPrefix(arg, "cuisine="); ok {
			filter.Cuisine = v
		} else {
			filter.Search = arg
		}
	}

	list, err := a.restaurants.List(ctx, filter)
	if err != nil {
		a.printError(err)
		return nil
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No restaurants found.")
		return nil
	}

	for _, r := range list {
		line := fmt.Sprintf("#%d  %s", r.ID, r.Name)
		if r.Cuisine != "" {
			line += "  [" + r.Cuisine + "]"
		}
		if r.Rating > 0 {
			line += fmt.Sprintf("  %.1f", r.Rating)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Restaurant shows one venue in detail.
func (a *App) Restaurant(ctx context.Context, args []string) error {
	id, ok := a.idArg(args, "Usage: restaurant <id>")
	if !ok {
		return nil
	}

	r, err := a.restaurants.Get(ctx, id)
	if err != nil {
		a.printError(err)
		return nil
	}

	fmt.Fprintf(a.out, "%s (#%d)\n", r.Name, r.ID)
	if r.Description != "" {
		fmt.Fprintln(a.out, r.Description)
	}
	if r.Cuisine != "" {
		fmt.Fprintln(a.out, "Cuisine:", r.Cuisine)
	}
	if r.Address != "" {
		fmt.Fprintln(a.out, "Address:", r.Address)
	}
	if r.Phone != "" {
		fmt.Fprintln(a.out, "Phone:  ", r.Phone)
	}
	if r.OpensAt != "" && r.ClosesAt != "" {
		fmt.Fprintf(a.out, "Open:    %s - %s\n", r.OpensAt, r.ClosesAt)
	}
	return nil
}

// Tables shows the tables of a venue, optionally narrowed to a date
// (YYYY-MM-DD) and party size: tables <id> [date] [party].
func (a *App) Tables(ctx context.Context, args []string) error {
	id, ok := a.idArg(args, "Usage: tables <restaurant id> [date] [party size]")
	if !ok {
		return nil
	}

	var (
		date      string
		partySize int
	)
	if len(args) > 1 {
		date = args[1]
	}
	if len(args) > 2 {
		partySize, _ = strconv.Atoi(args[2])
	}

	tables, err := a.restaurants.Tables(ctx, id, date, partySize)
	if err != nil {
		a.printError(err)
		return nil
	}
	if len(tables) == 0 {
		fmt.Fprintln(a.out, "No tables match.")
		return nil
	}

	for _, tbl := range tables {
		line := fmt.Sprintf("#%d  table %s  seats %d  %s", tbl.ID, tbl.Number, tbl.Capacity, tbl.Status)
		if tbl.Location != "" {
			line += "  (" + tbl.Location + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// idArg parses the first argument as a numeric id, printing usage when it is
// missing or malformed.
func (a *App) idArg(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, usage)
		return 0, false
	}
	return id, true
}
