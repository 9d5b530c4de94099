package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error

	Restaurants(ctx context.Context, args []string) error
	Restaurant(ctx context.Context, args []string) error
	Tables(ctx context.Context, args []string) error

	Book(ctx context.Context) error
	Reservations(ctx context.Context, args []string) error
	CancelReservation(ctx context.Context, args []string) error

	AdminTables(ctx context.Context) error
	AdminAddTable(ctx context.Context) error
	AdminEditTable(ctx context.Context, args []string) error
	AdminDeleteTable(ctx context.Context, args []string) error
	AdminReservations(ctx context.Context, args []string) error
	AdminSetStatus(ctx context.Context, args []string) error
	AdminStats(ctx context.Context, args []string) error
}

// runREPL reads lines from scanner, treats the first token as the command
// and the rest as arguments, and dispatches to a. Unknown commands are
// reported back. The loop exits on EOF or "exit"/"quit".
//
// Handler errors are not propagated; handlers print their own messages so
// the loop stays alive across failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "tb %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printHelp(out, a)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile", "whoami":
			_ = a.Profile(ctx)

		case "restaurants":
			_ = a.Restaurants(ctx, args)

		case "restaurant":
			_ = a.Restaurant(ctx, args)

		case "tables":
			_ = a.Tables(ctx, args)

		case "book":
			_ = a.Book(ctx)

		case "reservations", "r":
			_ = a.Reservations(ctx, args)

		case "cancel":
			_ = a.CancelReservation(ctx, args)

		case "admin-tables":
			_ = a.AdminTables(ctx)

		case "admin-addtable":
			_ = a.AdminAddTable(ctx)

		case "admin-edittable":
			_ = a.AdminEditTable(ctx, args)

		case "admin-deltable":
			_ = a.AdminDeleteTable(ctx, args)

		case "admin-reservations":
			_ = a.AdminReservations(ctx, args)

		case "admin-setstatus":
			_ = a.AdminSetStatus(ctx, args)

		case "admin-stats":
			_ = a.AdminStats(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}

func printHelp(out io.Writer, a execIface) {
	if !a.isLoggedIn() {
		fmt.Fprintln(out, "Available commands: register, login, restaurants, restaurant <id>, tables <id>, exit")
		return
	}
	fmt.Fprintln(out, "Available commands: restaurants, restaurant <id>, tables <id> [date] [party], book, (r)eservations, cancel <id>, profile, logout, exit")
	if a.isAdmin() {
		fmt.Fprintln(out, "Admin commands: admin-tables, admin-addtable, admin-edittable <id>, admin-deltable <id>, admin-reservations, admin-setstatus <id> <status>, admin-stats [from] [to]")
	}
}
