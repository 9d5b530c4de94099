package cli

import (
	"context"
	"fmt"

	"github.com/tablebook/tablebook/internal/client/services"
	"github.com/tablebook/tablebook/internal/common"
)

// getSimpleText, getInt and getPassword are indirections swapped out in
// tests.
var (
	getSimpleText = GetSimpleText
	getInt        = GetInt
	getPassword   = GetPassword
)

// Register prompts for the account details and creates an account. A
// successful registration signs the user in immediately.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	result := a.session.Register(ctx, services.RegisterInput{
		Name:                 name,
		Email:                email,
		Phone:                phone,
		Password:             string(password),
		PasswordConfirmation: string(confirmation),
	})
	if !result.Success {
		a.fail(result.Message)
		return nil
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", a.session.Snapshot().User.Name)
	return nil
}

// Login prompts for credentials and authenticates through the session
// manager. Failures are shown to the user; the previous session, if any,
// survives them.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result := a.session.Login(ctx, email, string(password))
	if !result.Success {
		a.fail(result.Message)
		return nil
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.session.Snapshot().User.Name)
	return nil
}

// Logout ends the session. Always succeeds locally.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Profile re-fetches and prints the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	a.session.RefreshProfile(ctx)

	u := a.session.Snapshot().User
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\n", u.Name, u.Email)
	if u.Phone != "" {
		fmt.Fprintf(a.out, "Phone: %s\n", u.Phone)
	}
	fmt.Fprintf(a.out, "Role:  %s\n", u.Role)
	return nil
}
