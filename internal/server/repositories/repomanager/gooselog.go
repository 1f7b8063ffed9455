package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/opsapi/internal/logging"
)

// gooseLogger routes goose output through the application logger.
type gooseLogger struct {
	ctx    context.Context
	logger logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.logger.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf is logged at error level; the migration error itself is returned
// to the caller.
func (g *gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}
