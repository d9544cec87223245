// Package cli implements the interactive command-line client for the auth
// server.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/userauth/internal/client/api"
	"github.com/dmitrijs2005/userauth/internal/client/config"
)

type App struct {
	config    *config.Config
	apiClient *api.Client
	userName  string
	reader    *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config:    c,
		apiClient: api.NewClient(c.ServerEndpointAddr),
		reader:    bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return "(" + a.userName + ")"
}
