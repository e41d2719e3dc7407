package builder

import (
	"strings"
	"time"

	"github.com/carlosnayan/bemestar/internal/logger"
)

const slowQueryThreshold = 1000 * time.Millisecond

// detectQueryType detecta o tipo de query SQL (SELECT, INSERT, UPDATE, DELETE)
func detectQueryType(query string) string {
	trimmed := strings.TrimSpace(query)
	upper := strings.ToUpper(trimmed)

	for _, kind := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(upper, kind) {
			return kind
		}
	}
	return "UNKNOWN"
}

// logQuery loga query e tempo quando o logging estiver habilitado
func (e *Executor) logQuery(query string, args []interface{}, start time.Time) {
	log := e.getLogger()
	duration := time.Since(start)

	log.Query(query, args, duration)

	queryType := detectQueryType(query)
	if log.Enabled(logger.LogLevelInfo) {
		log.Info("%s executed in %v", queryType, duration)
	}

	if duration > slowQueryThreshold {
		log.Warn("Slow query detected: %s took %v", queryType, duration)
	}
}

func (e *Executor) getLogger() *logger.Logger {
	if e.logger != nil {
		return e.logger
	}
	return logger.GetDefaultLogger()
}

// SetLogLevels configura os níveis de log do logger padrão
func SetLogLevels(levels []string) {
	logger.SetLogLevels(levels)
}
