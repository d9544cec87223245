package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/userauth/internal/client/api"
	"github.com/dmitrijs2005/userauth/internal/common"
)

// ResetToken requests a password reset token for an email and prints it.
// In a real deployment the token would be mailed; here it is shown to the
// user so it can be passed to the setpw command.
func (a *App) ResetToken(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	token, err := a.apiClient.ResetToken(ctx, email)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("Unknown email")
		} else {
			log.Printf("Reset request unsuccessful: %s", err.Error())
		}
		return err
	}

	printlnFn("Reset token:", token)
	return nil
}

// UpdatePassword sets a new password using a previously issued reset token.
func (a *App) UpdatePassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	token, err := getSimpleText(a.reader, "Enter reset token", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.apiClient.UpdatePassword(ctx, email, token, password); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("Invalid reset token")
		} else {
			log.Printf("Password update unsuccessful: %s", err.Error())
		}
		return err
	}

	printlnFn("Password updated")
	return nil
}
