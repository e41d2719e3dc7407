package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/carlosnayan/bemestar/internal/parser"
)

// DevAction é a decisão do "migrate dev": criar migration ou exigir reset
type DevAction struct {
	Tag    string // "createMigration" ou "reset"
	Reason string
}

// DevDiagnosticOutput é o resultado de DevDiagnostic
type DevDiagnosticOutput struct {
	Action DevAction
	// Diff compara o schema com o banco: tabelas e colunas a criar, ou o drift
	Diff *SchemaDiff
}

// DevDiagnostic decide o que o "migrate dev" deve fazer
func DevDiagnostic(ctx context.Context, manager *Manager, schema *parser.Schema) (*DevDiagnosticOutput, error) {
	modified, err := manager.ModifiedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("error checking for modified migrations: %w", err)
	}
	if len(modified) > 0 {
		reason := fmt.Sprintf(
			"The following migration(s) have been modified since they were applied:\n  %s\n\nMigrations that have been applied to the database should not be modified.\nIf you need to change a migration, you must reset the database first.",
			strings.Join(modified, ", "),
		)
		return &DevDiagnosticOutput{Action: DevAction{Tag: "reset", Reason: reason}}, nil
	}

	missing, err := manager.MissingMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("error checking for missing migrations: %w", err)
	}
	if len(missing) > 0 {
		reason := fmt.Sprintf(
			"The following migration(s) are applied to the database but missing from the local migrations directory:\n  %s",
			strings.Join(missing, ", "),
		)
		return &DevDiagnosticOutput{Action: DevAction{Tag: "reset", Reason: reason}}, nil
	}

	db, err := manager.Introspect(ctx)
	if err != nil {
		return nil, err
	}
	diff, err := CompareSchema(schema, db)
	if err != nil {
		return nil, err
	}
	diff.TablesToDrop = unknownTables(schema, db.TableNames())
	if diff.HasDrift() {
		return &DevDiagnosticOutput{
			Action: DevAction{Tag: "reset", Reason: buildDriftReason(diff)},
			Diff:   diff,
		}, nil
	}

	return &DevDiagnosticOutput{Action: DevAction{Tag: "createMigration"}, Diff: diff}, nil
}

// unknownTables são tabelas do banco que nenhum model declara
func unknownTables(schema *parser.Schema, tables []string) []string {
	known := make(map[string]bool, len(schema.Models))
	for _, m := range schema.Models {
		known[strings.ToLower(m.TableName())] = true
	}
	var extra []string
	for _, t := range tables {
		if !known[strings.ToLower(t)] {
			extra = append(extra, t)
		}
	}
	return extra
}

func buildDriftReason(diff *SchemaDiff) string {
	parts := []string{
		"Drift detected: Your database schema is not in sync with your migration history.",
		"",
		"The following is a summary of the differences between the expected database schema given your migrations files, and the actual schema of the database.",
		"",
	}
	return strings.Join(parts, "\n") + FormatDiff(diff)
}
