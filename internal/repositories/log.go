package repositories

import (
	"strings"

	"github.com/sbilibin2017/gw-wallet-payments/internal/logger"
)

// logQuery logs a query in a single line with its args, result and error.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
