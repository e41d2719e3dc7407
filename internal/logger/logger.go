package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogLevel representa o nível de log
type LogLevel int

const (
	LogLevelQuery LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String retorna a representação em string do nível de log
func (l LogLevel) String() string {
	switch l {
	case LogLevelQuery:
		return "query"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevels converte os nomes usados em prisma.conf ("query", "info", "warn", "error")
func ParseLevels(levels []string) map[LogLevel]bool {
	parsed := make(map[LogLevel]bool)
	for _, level := range levels {
		switch strings.ToLower(strings.TrimSpace(level)) {
		case "query":
			parsed[LogLevelQuery] = true
		case "info":
			parsed[LogLevelInfo] = true
		case "warn", "warning":
			parsed[LogLevelWarn] = true
		case "error":
			parsed[LogLevelError] = true
		}
	}
	return parsed
}

// Logger filtra por nível do Prisma e escreve via slog
type Logger struct {
	levels map[LogLevel]bool
	log    *slog.Logger
}

type options struct {
	format string
}

// Option configura o logger
type Option func(*options)

// WithFormat escolhe o handler: "json" ou "text" (padrão)
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = strings.ToLower(format)
	}
}

var defaultLogger = NewLogger(nil, os.Stdout)

// NewLogger cria um novo logger
func NewLogger(levels []string, writer io.Writer, opts ...Option) *Logger {
	o := &options{format: "text"}
	for _, opt := range opts {
		opt(o)
	}
	if writer == nil {
		writer = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		// a filtragem é feita pelos níveis do Prisma
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if o.format == "json" {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	return &Logger{
		levels: ParseLevels(levels),
		log:    slog.New(handler).With("component", "prisma"),
	}
}

// FromSlog reaproveita um *slog.Logger da aplicação
func FromSlog(l *slog.Logger, levels []string) *Logger {
	return &Logger{levels: ParseLevels(levels), log: l}
}

// SetDefaultLogger define o logger padrão
func SetDefaultLogger(logger *Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}

// GetDefaultLogger retorna o logger padrão
func GetDefaultLogger() *Logger {
	return defaultLogger
}

// Enabled indica se o nível está ativo
func (l *Logger) Enabled(level LogLevel) bool {
	return l != nil && l.levels[level]
}

// Slog expõe o logger estruturado subjacente
func (l *Logger) Slog() *slog.Logger {
	return l.log
}

// Query loga uma query SQL com argumentos já sanitizados
func (l *Logger) Query(query string, args []interface{}, duration time.Duration) {
	if !l.Enabled(LogLevelQuery) {
		return
	}
	l.log.LogAttrs(context.Background(), slog.LevelDebug, "query",
		slog.String("sql", formatQuery(query, args)),
		slog.Duration("duration", duration),
	)
}

// Info loga uma mensagem informativa
func (l *Logger) Info(format string, args ...interface{}) {
	if !l.Enabled(LogLevelInfo) {
		return
	}
	l.log.Info(fmt.Sprintf(format, args...))
}

// Warn loga um aviso
func (l *Logger) Warn(format string, args ...interface{}) {
	if !l.Enabled(LogLevelWarn) {
		return
	}
	l.log.Warn(fmt.Sprintf(format, args...))
}

// Error loga um erro
func (l *Logger) Error(format string, args ...interface{}) {
	if !l.Enabled(LogLevelError) {
		return
	}
	l.log.Error(fmt.Sprintf(format, args...))
}

// formatQuery substitui os placeholders pelos argumentos formatados
func formatQuery(query string, args []interface{}) string {
	if len(args) == 0 {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + len(args)*8)
	next := 0
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '?' && next < len(args):
			b.WriteString(formatArg(args[next]))
			next++
		case ch == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9':
			j := i + 1
			n := 0
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				n = n*10 + int(query[j]-'0')
				j++
			}
			if n >= 1 && n <= len(args) {
				b.WriteString(formatArg(args[n-1]))
				i = j - 1
				continue
			}
			b.WriteByte(ch)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// formatArg formata um argumento para exibição, escondendo dados sensíveis
func formatArg(arg interface{}) string {
	switch v := arg.(type) {
	case string:
		if isSensitiveData(v) {
			return "'***REDACTED***'"
		}
		if len(v) > 100 {
			return fmt.Sprintf("'%s...' (truncated)", v[:100])
		}
		return fmt.Sprintf("'%s'", v)
	case []byte:
		if len(v) > 0 {
			return "'***REDACTED***'"
		}
		return "''"
	case time.Time:
		return "'" + v.UTC().Format(time.RFC3339) + "'"
	case nil:
		return "NULL"
	default:
		str := fmt.Sprintf("%v", v)
		if isSensitiveData(str) {
			return "***REDACTED***"
		}
		return str
	}
}

var sensitiveKeywords = []string{
	"password", "passwd", "pwd", "senha",
	"secret", "token", "api_key", "apikey",
	"access_token", "refresh_token", "authorization",
	"credential", "private_key", "credit_card", "cvv",
}

// isSensitiveData verifica se uma string pode conter dados sensíveis
func isSensitiveData(s string) bool {
	lower := strings.ToLower(s)
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	// hashes bcrypt/argon2 e tokens conhecidos
	if strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$argon2") {
		return true
	}
	if len(s) > 20 && (strings.HasPrefix(lower, "eyj") ||
		strings.HasPrefix(lower, "sk_") ||
		strings.HasPrefix(lower, "pk_") ||
		strings.HasPrefix(lower, "ghp_") ||
		strings.HasPrefix(lower, "xoxb-") ||
		strings.HasPrefix(lower, "xoxp-")) {
		return true
	}

	return false
}

// Funções globais para facilitar uso
func Query(query string, args []interface{}, duration time.Duration) {
	defaultLogger.Query(query, args, duration)
}

func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

// SetLogLevels configura os níveis de log do logger padrão
func SetLogLevels(levels []string, opts ...Option) {
	defaultLogger = NewLogger(levels, os.Stdout, opts...)
}

// FileLogger cria um logger que escreve em arquivo
func FileLogger(filename string, levels []string, opts ...Option) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo de log: %w", err)
	}
	return NewLogger(levels, file, opts...), nil
}
