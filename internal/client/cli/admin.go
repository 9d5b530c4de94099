package cli

import (
	"context"
	"fmt"

	"github.com/tablebook/tablebook/internal/client/models"
	"github.com/tablebook/tablebook/internal/client/services"
)

// requireAdmin gates the admin commands on the user's role. The backend
// enforces authorization on its own; this only spares the user a 403.
func (a *App) requireAdmin() bool {
	if !a.isAdmin() {
		fmt.Fprintln(a.out, "Admin access required.")
		return false
	}
	return true
}

// AdminTables lists every table in the restaurant.
func (a *App) AdminTables(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	tables, err := a.admin.Tables(ctx)
	if err != nil {
		a.printError(err)
		return nil
	}
	if len(tables) == 0 {
		fmt.Fprintln(a.out, "No tables yet.")
		return nil
	}
	for _, tbl := range tables {
		fmt.Fprintf(a.out, "#%d  table %s  seats %d  %s\n", tbl.ID, tbl.Number, tbl.Capacity, tbl.Status)
	}
	return nil
}

// AdminAddTable creates a table interactively.
func (a *App) AdminAddTable(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	number, err := getSimpleText(a.reader, "Table number", a.out)
	if err != nil {
		return err
	}
	capacity, err := getInt(a.reader, "Capacity", a.out)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location (optional)", a.out)
	if err != nil {
		return err
	}

	tbl, err := a.admin.CreateTable(ctx, services.TableInput{
		Number: number, Capacity: capacity, Location: location,
	})
	if err != nil {
		a.printError(err)
		return nil
	}
	fmt.Fprintf(a.out, "Table #%d created.\n", tbl.ID)
	return nil
}

// AdminEditTable amends a table. Empty answers leave the field unchanged.
func (a *App) AdminEditTable(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, ok := a.idArg(args, "Usage: admin-edittable <table id>")
	if !ok {
		return nil
	}

	var input services.TableInput
	number, err := getSimpleText(a.reader, "Table number (blank to keep)", a.out)
	if err != nil {
		return err
	}
	input.Number = number

	status, err := getSimpleText(a.reader, "Status: available, occupied or maintenance (blank to keep)", a.out)
	if err != nil {
		return err
	}
	input.Status = status

	tbl, err := a.admin.UpdateTable(ctx, id, input)
	if err != nil {
		a.printError(err)
		return nil
	}
	fmt.Fprintf(a.out, "Table #%d updated (%s).\n", tbl.ID, tbl.Status)
	return nil
}

// AdminDeleteTable removes a table by id.
func (a *App) AdminDeleteTable(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	id, ok := a.idArg(args, "Usage: admin-deltable <table id>")
	if !ok {
		return nil
	}

	if err := a.admin.DeleteTable(ctx, id); err != nil {
		a.printError(err)
		return nil
	}
	fmt.Fprintf(a.out, "Table #%d deleted.\n", id)
	return nil
}

// AdminReservations lists reservations across the restaurant, with the same
// loose filters as the customer command.
func (a *App) AdminReservations(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}

	list, err := a.admin.Reservations(ctx, reservationFilter(args))
	if err != nil {
		a.printError(err)
		return nil
	}
	a.printReservations(list)
	return nil
}

// AdminSetStatus moves a reservation through its lifecycle:
// admin-setstatus <id> <confirmed|seated|completed|cancelled>.
func (a *App) AdminSetStatus(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: admin-setstatus <reservation id> <status>")
		return nil
	}
	id, ok := a.idArg(args[:1], "Usage: admin-setstatus <reservation id> <status>")
	if !ok {
		return nil
	}

	res, err := a.admin.SetReservationStatus(ctx, id, models.ReservationStatus(args[1]))
	if err != nil {
		a.printError(err)
		return nil
	}
	fmt.Fprintf(a.out, "Reservation #%d is now %s.\n", res.ID, res.Status)
	return nil
}

// AdminStats prints the dashboard summary: admin-stats [from] [to].
func (a *App) AdminStats(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return nil
	}

	var r services.StatsRange
	if len(args) > 0 {
		r.From = args[0]
	}
	if len(args) > 1 {
		r.To = args[1]
	}

	stats, err := a.admin.Stats(ctx, r)
	if err != nil {
		a.printError(err)
		return nil
	}

	fmt.Fprintf(a.out, "Reservations: %d total, %d pending, %d confirmed, %d cancelled\n",
		stats.TotalReservations, stats.PendingReservations, stats.ConfirmedReservations, stats.CancelledReservations)
	fmt.Fprintf(a.out, "Tables:       %d total, %d occupied\n", stats.TotalTables, stats.OccupiedTables)
	fmt.Fprintf(a.out, "Guests:       %d\n", stats.TotalGuests)
	fmt.Fprintf(a.out, "Occupancy:    %.0f%%\n", stats.OccupancyRate*100)
	return nil
}
