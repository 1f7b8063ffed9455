package client

import (
	"context"
	"encoding/json"
)

// Client is the API surface the CLI relies on.
type Client interface {
	Register(ctx context.Context, username, email, password string) (int64, error)
	Login(ctx context.Context, username, password string) (*User, error)
	Logout()
	LoggedInAs() (*User, bool)
	CreateOperation(ctx context.Context, opType string, payload json.RawMessage) (int64, error)
	ListOperations(ctx context.Context, limit int) ([]Operation, error)
	Profile(ctx context.Context) (*Profile, error)
	Status(ctx context.Context) (*Status, error)
}
