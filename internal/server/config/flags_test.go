package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	args := []string{
		"-c", "ignored.json",
		"-a", "127.0.0.1:8080", "-g", ":6000", "-b", "pgx", "-d", "postgres://db",
		"-s", "secret", "-t", "48", "-k", "12", "-m", "50", "-o", "logrus", "-l", "warn",
	}

	c := defaults()
	require.NoError(t, parseFlags(c, args))

	want := defaults()
	want.HTTPAddr = "127.0.0.1:8080"
	want.GRPCHealthAddr = ":6000"
	want.DatabaseDriver = DriverPostgres
	want.DatabaseDSN = "postgres://db"
	want.SecretKey = "secret"
	want.TokenValidityDuration = 48 * time.Hour
	want.BcryptCost = 12
	want.MaxListLimit = 50
	want.LogBackend = "logrus"
	want.LogLevel = "warn"

	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags_KeepsSubHourValidityWhenUnset(t *testing.T) {
	c := defaults()
	c.TokenValidityDuration = 30 * time.Minute

	require.NoError(t, parseFlags(c, []string{"-a", ":1"}))
	assert.Equal(t, 30*time.Minute, c.TokenValidityDuration)
}
