package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/tablebook/tablebook/internal/client/models"
	"github.com/tablebook/tablebook/internal/client/services"
)

// Book walks the user through creating a reservation.
func (a *App) Book(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first.")
		return nil
	}

	restaurantID, err := getInt(a.reader, "Restaurant id", a.out)
	if err != nil {
		return err
	}
	tableID, err := getInt(a.reader, "Table id", a.out)
	if err != nil {
		return err
	}
	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}
	timeSlot, err := getSimpleText(a.reader, "Time (HH:MM)", a.out)
	if err != nil {
		return err
	}
	partySize, err := getInt(a.reader, "Party size", a.out)
	if err != nil {
		return err
	}
	request, err := getSimpleText(a.reader, "Special request (optional)", a.out)
	if err != nil {
		return err
	}

	res, err := a.reservations.Create(ctx, services.CreateReservationInput{
		RestaurantID:   int64(restaurantID),
		TableID:        int64(tableID),
		Date:           date,
		Time:           timeSlot,
		PartySize:      partySize,
		SpecialRequest: request,
	})
	if err != nil {
		a.printError(err)
		return nil
	}

	fmt.Fprintf(a.out, "Reservation #%d created (%s).\n", res.ID, res.Status)
	return nil
}

// Reservations lists the user's bookings. Arguments filter: a status word
// ("pending", "confirmed", ...) or a date (YYYY-MM-DD).
func (a *App) Reservations(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first.")
		return nil
	}

	filter := reservationFilter(args)
	list, err := a.reservations.List(ctx, filter)
	if err != nil {
		a.printError(err)
		return nil
	}
	a.printReservations(list)
	return nil
}

// CancelReservation cancels one of the user's bookings by id.
func (a *App) CancelReservation(ctx context.Context, args []string) error {
	id, ok := a.idArg(args, "Usage: cancel <reservation id>")
	if !ok {
		return nil
	}

	if err := a.reservations.Cancel(ctx, id); err != nil {
		a.printError(err)
		return nil
	}
	fmt.Fprintf(a.out, "Reservation #%d cancelled.\n", id)
	return nil
}

// reservationFilter interprets loose arguments: dates contain a dash,
// everything else is treated as a status.
func reservationFilter(args []string) services.ReservationFilter {
	var filter services.ReservationFilter
	for _, arg := range args {
		if strings.Contains(arg, "-") {
			filter.Date = arg
		} else {
			filter.Status = arg
		}
	}
	return filter
}

func (a *App) printReservations(list []models.Reservation) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No reservations.")
		return
	}
	for _, r := range list {
		name := r.RestaurantName
		if name == "" {
			name = fmt.Sprintf("restaurant %d", r.RestaurantID)
		}
		fmt.Fprintf(a.out, "#%d  %s  %s %s  party of %d  %s\n",
			r.ID, name, r.Date, r.Time, r.PartySize, r.Status)
	}
}
