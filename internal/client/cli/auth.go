package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/userauth/internal/client/api"
	"github.com/dmitrijs2005/userauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account via the API client.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is wiped before returning. Any I/O or API error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.apiClient.Register(ctx, email, password); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	printlnFn("Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// On success the session cookie is kept by the API client and the
// prompt switches to the logged-in command set.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.apiClient.Login(ctx, email, password); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("Incorrect email or password")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.userName = email
	log.Printf("Login successful")
	return nil
}

// Logout destroys the server-side session and clears the local state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.apiClient.Logout(ctx); err != nil {
		log.Printf("Logout unsuccessful: %s", err.Error())
		return err
	}

	a.userName = ""
	log.Printf("Logged out")
	return nil
}

// Profile fetches and prints the logged-in account's email.
func (a *App) Profile(ctx context.Context) error {
	email, err := a.apiClient.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("Not logged in")
		} else {
			log.Printf("Profile request unsuccessful: %s", err.Error())
		}
		return err
	}

	printlnFn("Logged in as:", email)
	return nil
}
