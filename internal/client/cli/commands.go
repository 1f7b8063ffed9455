package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/opsapi/internal/client/client"
)

var errUsage = errors.New("usage")

func report(err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Server unavailable")
	case errors.Is(err, client.ErrNotLoggedIn):
		printlnFn("Please log in first")
	case errors.Is(err, client.ErrUnauthorized):
		printlnFn("Not authorized:", err.Error())
	default:
		printlnFn("Error:", err.Error())
	}
	return err
}

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return report(err)
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return report(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return report(err)
	}

	id, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		if errors.Is(err, client.ErrConflict) {
			printlnFn("Username or email already exists")
			return err
		}
		return report(err)
	}

	printlnFn(fmt.Sprintf("Registered %s (id %d)", username, id))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return report(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return report(err)
	}

	u, err := a.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			printlnFn("Login unsuccessful: invalid credentials")
			return err
		}
		return report(err)
	}

	printlnFn(fmt.Sprintf("Logged in as %s (%s)", u.Username, u.Role))
	return nil
}

// Add records an operation. The payload is the rest of the line or, when
// absent, read as multiple lines.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: add <type> [json]")
		return errUsage
	}
	opType := args[0]

	payload := strings.Join(args[1:], " ")
	if payload == "" {
		var err error
		payload, err = GetMultiline(a.reader, "Enter JSON payload (empty for none)", a.out)
		if err != nil {
			return report(err)
		}
	}

	var raw json.RawMessage
	if payload != "" {
		if !json.Valid([]byte(payload)) {
			printlnFn("Payload is not valid JSON")
			return errUsage
		}
		raw = json.RawMessage(payload)
	}

	id, err := a.client.CreateOperation(ctx, opType, raw)
	if err != nil {
		return report(err)
	}

	printlnFn(fmt.Sprintf("Operation %d recorded", id))
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			printlnFn("Usage: list [n]")
			return errUsage
		}
		limit = n
	}

	ops, err := a.client.ListOperations(ctx, limit)
	if err != nil {
		return report(err)
	}

	if len(ops) == 0 {
		printlnFn("No operations")
		return nil
	}
	for _, op := range ops {
		printlnFn(fmt.Sprintf("#%d %s %s [%s] %s", op.ID, op.CreatedAt, op.Type, op.Status, op.Data))
	}
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.client.Profile(ctx)
	if err != nil {
		return report(err)
	}

	u := p.UserInfo
	printlnFn(fmt.Sprintf("%s <%s> role=%s member since %s", u.Username, u.Email, u.Role, u.MemberSince))
	printlnFn(fmt.Sprintf("operations: %d total, %d in the last 7 days",
		p.Statistics.TotalOperations, p.Statistics.RecentActivity))
	return nil
}

func (a *App) Status(ctx context.Context) error {
	s, err := a.client.Status(ctx)
	if err != nil {
		return report(err)
	}
	printlnFn(fmt.Sprintf("Server %s, version %s", s.Status, s.Version))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	printlnFn("Logged out")
	return nil
}
