package errors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var ProductionMode = os.Getenv("ENV") == "production" || os.Getenv("ENV") == "prod"

// PrismaError é o erro devolvido pelo cliente, com código no formato do Prisma
type PrismaError struct {
	Code    string
	Message string
	// Target é a constraint ou coluna envolvida, quando o driver informa
	Target string
	cause  error
}

func (e *PrismaError) Error() string {
	msg := e.Message
	if e.Target != "" {
		msg += " (" + e.Target + ")"
	}
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	return msg
}

func (e *PrismaError) Unwrap() error {
	return e.cause
}

func (e *PrismaError) Is(target error) bool {
	if t, ok := target.(*PrismaError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrNotFound             = &PrismaError{Code: "P2025", Message: "Record not found"}
	ErrUniqueConstraint     = &PrismaError{Code: "P2002", Message: "Unique constraint violation"}
	ErrForeignKeyConstraint = &PrismaError{Code: "P2003", Message: "Foreign key constraint violation"}
	ErrNullConstraint       = &PrismaError{Code: "P2011", Message: "Not null constraint violation"}
	ErrValueTooLong         = &PrismaError{Code: "P2000", Message: "Value too long for column"}
	ErrInvalidInput         = &PrismaError{Code: "P2009", Message: "Invalid query input"}
	ErrRawQueryFailed       = &PrismaError{Code: "P2010", Message: "Raw query failed"}
	ErrValueOutOfRange      = &PrismaError{Code: "P2020", Message: "Value out of range"}
	ErrTableNotFound        = &PrismaError{Code: "P2021", Message: "Table does not exist"}
	ErrColumnNotFound       = &PrismaError{Code: "P2022", Message: "Column not found"}
	ErrDeadlock             = &PrismaError{Code: "P2034", Message: "Transaction write conflict or deadlock"}

	ErrAuthenticationFailed = &PrismaError{Code: "P1000", Message: "Authentication failed"}
	ErrConnectionFailed     = &PrismaError{Code: "P1001", Message: "Database not reachable"}
	ErrDatabaseNotFound     = &PrismaError{Code: "P1003", Message: "Database does not exist"}
	ErrTimeout              = &PrismaError{Code: "P1008", Message: "Operation timeout"}
	ErrConnectionClosed     = &PrismaError{Code: "P1017", Message: "Connection closed"}
	ErrTooManyConnections   = &PrismaError{Code: "P2037", Message: "Too many connections"}

	ErrValidation       = &PrismaError{Code: "P2007", Message: "Validation error"}
	ErrNoFieldsToUpdate = &PrismaError{Code: "P2007", Message: "No fields to update"}
	ErrNestedTx         = &PrismaError{Code: "P2028", Message: "Transaction API error"}
)

type OperationType string

const (
	OpFindMany   OperationType = "FindMany"
	OpFindFirst  OperationType = "FindFirst"
	OpFindUnique OperationType = "FindUnique"
	OpQuery      OperationType = "Query"
	OpQueryRow   OperationType = "QueryRow"
	OpExec       OperationType = "Exec"
	OpCreate     OperationType = "Create"
	OpUpdate     OperationType = "Update"
	OpDelete     OperationType = "Delete"
	OpAggregate  OperationType = "Aggregate"
)

func NewPrismaError(code, message string, cause error) *PrismaError {
	return &PrismaError{Code: code, Message: message, cause: cause}
}

func WrapPrismaError(sentinel *PrismaError, cause error) *PrismaError {
	return &PrismaError{Code: sentinel.Code, Message: sentinel.Message, cause: cause}
}

func wrapTarget(sentinel *PrismaError, target string, cause error) *PrismaError {
	e := WrapPrismaError(sentinel, cause)
	e.Target = target
	return e
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUniqueConstraint(err error) bool {
	return errors.Is(err, ErrUniqueConstraint)
}

func IsForeignKeyConstraint(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}

func IsNullConstraint(err error) bool {
	return errors.Is(err, ErrNullConstraint)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func IsConnectionFailed(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// MapDriverError converte erros de pgx, lib/pq, go-sql-driver/mysql e SQLite
// para PrismaError. Erros já convertidos passam intactos.
func MapDriverError(err error, op OperationType) error {
	if err == nil {
		return nil
	}

	var prismaErr *PrismaError
	if errors.As(err, &prismaErr) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		switch op {
		case OpFindMany, OpQuery:
			return nil
		default:
			return WrapPrismaError(ErrNotFound, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return WrapPrismaError(ErrTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped := mapSQLState(pgErr.Code, pgErr.ConstraintName, err); mapped != nil {
			return mapped
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if mapped := mapSQLState(string(pqErr.Code), pqErr.Constraint, err); mapped != nil {
			return mapped
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if mapped := mapMySQLNumber(myErr.Number, err); mapped != nil {
			return mapped
		}
	}

	return mapByMessage(err)
}

// mapSQLState cobre os SQLSTATE do PostgreSQL (mesmos códigos em pgx e lib/pq)
func mapSQLState(code, constraint string, err error) error {
	switch code {
	case "23505":
		return wrapTarget(ErrUniqueConstraint, constraint, err)
	case "23503":
		return wrapTarget(ErrForeignKeyConstraint, constraint, err)
	case "23502":
		return wrapTarget(ErrNullConstraint, constraint, err)
	case "22001":
		return WrapPrismaError(ErrValueTooLong, err)
	case "22003":
		return WrapPrismaError(ErrValueOutOfRange, err)
	case "22P02", "22007", "22008":
		return WrapPrismaError(ErrInvalidInput, err)
	case "42P01":
		return WrapPrismaError(ErrTableNotFound, err)
	case "42703":
		return WrapPrismaError(ErrColumnNotFound, err)
	case "40P01", "40001":
		return WrapPrismaError(ErrDeadlock, err)
	case "28P01", "28000":
		return WrapPrismaError(ErrAuthenticationFailed, err)
	case "3D000":
		return WrapPrismaError(ErrDatabaseNotFound, err)
	case "53300":
		return WrapPrismaError(ErrTooManyConnections, err)
	case "57014":
		return WrapPrismaError(ErrTimeout, err)
	}
	return nil
}

func mapMySQLNumber(number uint16, err error) error {
	switch number {
	case 1062:
		return WrapPrismaError(ErrUniqueConstraint, err)
	case 1451, 1452:
		return WrapPrismaError(ErrForeignKeyConstraint, err)
	case 1048, 1364:
		return WrapPrismaError(ErrNullConstraint, err)
	case 1406:
		return WrapPrismaError(ErrValueTooLong, err)
	case 1264:
		return WrapPrismaError(ErrValueOutOfRange, err)
	case 1146:
		return WrapPrismaError(ErrTableNotFound, err)
	case 1054:
		return WrapPrismaError(ErrColumnNotFound, err)
	case 1213:
		return WrapPrismaError(ErrDeadlock, err)
	case 1045:
		return WrapPrismaError(ErrAuthenticationFailed, err)
	case 1049:
		return WrapPrismaError(ErrDatabaseNotFound, err)
	case 1040:
		return WrapPrismaError(ErrTooManyConnections, err)
	}
	return nil
}

// mapByMessage é o fallback para SQLite e drivers sem tipo de erro exportado
func mapByMessage(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") || strings.Contains(msg, "duplicate entry"):
		return WrapPrismaError(ErrUniqueConstraint, err)
	case strings.Contains(msg, "foreign key constraint"):
		return WrapPrismaError(ErrForeignKeyConstraint, err)
	case strings.Contains(msg, "not null constraint") || strings.Contains(msg, "not-null constraint"):
		return WrapPrismaError(ErrNullConstraint, err)
	case strings.Contains(msg, "no such table"):
		return WrapPrismaError(ErrTableNotFound, err)
	case strings.Contains(msg, "no such column"):
		return WrapPrismaError(ErrColumnNotFound, err)
	case strings.Contains(msg, "database is locked") || strings.Contains(msg, "deadlock"):
		return WrapPrismaError(ErrDeadlock, err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return WrapPrismaError(ErrTimeout, err)
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host") || strings.Contains(msg, "network is unreachable"):
		return WrapPrismaError(ErrConnectionFailed, err)
	case strings.Contains(msg, "closed pool") || strings.Contains(msg, "database is closed") || strings.Contains(msg, "conn closed"):
		return WrapPrismaError(ErrConnectionClosed, err)
	}
	return WrapPrismaError(ErrRawQueryFailed, err)
}

// SanitizeError esconde detalhes de SQL em produção
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}

	if !ProductionMode {
		return err
	}

	var prismaErr *PrismaError
	if errors.As(err, &prismaErr) {
		return &PrismaError{Code: prismaErr.Code, Message: prismaErr.Message}
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"table", "relation", "column", "select", "insert", "update", "delete", "where", "syntax", "constraint", "sql"} {
		if strings.Contains(msg, pattern) {
			return fmt.Errorf("database operation failed")
		}
	}
	return err
}

func WrapError(err error, genericMsg string) error {
	if err == nil {
		return nil
	}
	if ProductionMode {
		return fmt.Errorf("%s", genericMsg)
	}
	return fmt.Errorf("%s: %w", genericMsg, err)
}

func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func NewInvalidInputError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func NewNotFoundError(resource string) error {
	if ProductionMode {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s", ErrNotFound, resource)
}
