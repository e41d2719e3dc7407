// Package testdb abre bancos descartáveis para testes de integração.
//
// SQLite roda sempre, num arquivo temporário e sem cgo (modernc.org/sqlite).
// PostgreSQL e MySQL só rodam quando TEST_DATABASE_URL_POSTGRESQL ou
// TEST_DATABASE_URL_MYSQL estão definidas; sem elas o teste é pulado.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/carlosnayan/bemestar/internal/config"
	"github.com/carlosnayan/bemestar/internal/driver"
	"github.com/carlosnayan/bemestar/internal/migrations"
	"github.com/carlosnayan/bemestar/internal/parser"
)

// Provider é o banco escolhido por TEST_PROVIDER; sqlite quando vazio
func Provider() string {
	if p := os.Getenv("TEST_PROVIDER"); p != "" {
		return p
	}
	return config.ProviderSQLite
}

// URL devolve a URL de teste do provider, ou "" se não configurada
func URL(provider string) string {
	switch provider {
	case config.ProviderPostgreSQL:
		return os.Getenv("TEST_DATABASE_URL_POSTGRESQL")
	case config.ProviderMySQL:
		return os.Getenv("TEST_DATABASE_URL_MYSQL")
	}
	return ""
}

// SQLiteURL é um banco SQLite novo dentro de t.TempDir()
func SQLiteURL(t testing.TB) string {
	t.Helper()
	return "file:" + filepath.ToSlash(filepath.Join(t.TempDir(), "bemestar.db"))
}

// Open conecta ao banco de teste do provider e fecha a conexão no fim do teste
func Open(t testing.TB, provider string) driver.DB {
	t.Helper()

	if provider == config.ProviderSQLite {
		sqlDB, err := sql.Open("sqlite", driver.SQLiteDSN("sqlite", SQLiteURL(t)))
		if err != nil {
			t.Fatalf("failed to open sqlite: %v", err)
		}
		// uma conexão só: transações e escritas não disputam o arquivo
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
		return driver.NewSQLDB(sqlDB, config.ProviderSQLite)
	}

	url := URL(provider)
	if url == "" {
		t.Skipf("TEST_DATABASE_URL_%s not set, skipping %s test", strings.ToUpper(provider), provider)
	}
	cfg, err := config.Parse(fmt.Sprintf("[datasource]\nprovider = %q\nurl = %q\n", provider, url))
	if err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	conn, err := driver.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to connect to %s: %v", provider, err)
	}
	t.Cleanup(func() {
		if closer, ok := conn.(driver.Closer); ok {
			_ = closer.Close()
		}
	})
	return conn
}

// PushSchema cria no banco as tabelas do schema em schemaPath. Em bancos
// compartilhados (PostgreSQL, MySQL) as tabelas antigas são removidas antes.
func PushSchema(t testing.TB, conn driver.DB, provider, schemaPath string) *parser.Schema {
	t.Helper()
	ctx := context.Background()

	schema, err := parser.ParseAndValidateFile(schemaPath)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", schemaPath, err)
	}
	manager, err := migrations.NewManagerWithPath(filepath.Join(t.TempDir(), "migrations"), provider, conn)
	if err != nil {
		t.Fatalf("failed to create migration manager: %v", err)
	}
	if provider != config.ProviderSQLite {
		if _, err := manager.Reset(ctx, schema); err != nil {
			t.Fatalf("failed to reset database: %v", err)
		}
	}
	if _, err := manager.Push(ctx, schema); err != nil {
		t.Fatalf("failed to push schema: %v", err)
	}
	return schema
}
