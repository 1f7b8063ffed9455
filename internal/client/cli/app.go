package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/opsapi/internal/client/client"
	"github.com/dmitrijs2005/opsapi/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return newApp(c, client.NewHTTPClient(c.ServerURL, c.RequestTimeout), os.Stdin, os.Stdout)
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.client.LoggedInAs()
	return ok
}

func (a *App) getStatus() string {
	if u, ok := a.client.LoggedInAs(); ok && u != nil {
		return "(" + u.Username + ")"
	}
	return "(anonymous)"
}

// Run prints a banner, probes the server and runs the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	printlnFn("opsapi CLI (type 'help' for commands), server:", a.config.ServerURL)
	_ = a.Status(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)

	a.client.Logout()
}
