package cli

import (
	"context"
	"fmt"
	"os"

	"notekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account details and creates the account. On
// success the user is signed in and their notes are fetched.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	o := a.authService.Register(ctx, firstName, lastName, email, string(password))
	if !o.IsOk() {
		fmt.Println("Registration failed:", o.Err())
		return o.Err()
	}

	a.userEmail = o.Value().Email
	fmt.Println("Success!")
	return a.fetch(ctx)
}

// Login prompts for credentials and signs in. Locally stored notes stay
// available even when the backend is unreachable.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	o := a.authService.Login(ctx, email, string(password))
	if !o.IsOk() {
		fmt.Println("Login failed:", o.Err())
		return o.Err()
	}

	a.userEmail = o.Value().Email
	fmt.Println("Login successful")
	return a.fetch(ctx)
}

// LoginWithToken signs in with an identity token issued elsewhere.
func (a *App) LoginWithToken(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Paste identity token", os.Stdout)
	if err != nil {
		return err
	}

	o := a.authService.LoginWithToken(ctx, token)
	if !o.IsOk() {
		fmt.Println("Login failed:", o.Err())
		return o.Err()
	}

	a.userEmail = o.Value().Email
	fmt.Println("Login successful")
	return a.fetch(ctx)
}

// Logout pushes pending notes and wipes local state. A failed push keeps the
// session so no notes are lost.
func (a *App) Logout(ctx context.Context) error {
	o := a.authService.Logout(ctx)
	if !o.IsOk() {
		fmt.Println("Logout failed:", o.Err())
		return o.Err()
	}

	a.userEmail = ""
	fmt.Println("Logged out")
	return nil
}
