package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"

	"github.com/carlosnayan/bemestar/internal/config"
	"github.com/carlosnayan/bemestar/internal/parser"
)

func TestInit_CreatesProject(t *testing.T) {
	chdir(t, t.TempDir())

	output, err := runCLI(t, "init", "--provider", "sqlite")
	if err != nil {
		t.Fatalf("init: %v\n%s", err, output)
	}

	for _, path := range []string{"prisma.conf", "prisma/schema.prisma", "prisma/seed.yaml", ".env"} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not created: %v", path, err)
		}
	}
	if info, err := os.Stat("prisma/migrations"); err != nil || !info.IsDir() {
		t.Error("prisma/migrations not created")
	}

	env, err := godotenv.Read(".env")
	if err != nil {
		t.Fatal(err)
	}
	if env["DATABASE_URL"] != "file:prisma/dev.db" {
		t.Errorf("unexpected DATABASE_URL %q", env["DATABASE_URL"])
	}

	if _, _, err := parser.ParseFile("prisma/schema.prisma"); err != nil {
		t.Errorf("generated schema is invalid: %v", err)
	}

	cfg, err := config.Parse(strings.ReplaceAll(readString(t, "prisma.conf"), `env("DATABASE_URL")`, "file:dev.db"))
	if err != nil {
		t.Fatalf("generated prisma.conf is invalid: %v", err)
	}
	if cfg.GetProvider() != config.ProviderSQLite || !cfg.SeedIsYAML() {
		t.Errorf("unexpected config: provider=%s seed=%s", cfg.GetProvider(), cfg.Migrations.Seed)
	}
}

func TestInit_RefusesExistingConfig(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, "prisma.conf", "# meu\n")

	if _, err := runCLI(t, "init"); err == nil {
		t.Fatal("expected error when prisma.conf exists")
	}
	if readString(t, "prisma.conf") != "# meu\n" {
		t.Error("prisma.conf was overwritten without --force")
	}
}

func TestInit_ForceKeepsEnvAndSeed(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, "prisma.conf", "# antigo\n")
	writeFile(t, ".env", "DATABASE_URL=postgresql://real@db/bemestar\n")
	writeFile(t, "prisma/seed.yaml", "usuarios: []\n# meus dados\n")

	output, err := runCLI(t, "init", "--force", "--provider", "postgresql")
	if err != nil {
		t.Fatalf("init --force: %v\n%s", err, output)
	}

	if !strings.Contains(readString(t, "prisma.conf"), `provider = "postgresql"`) {
		t.Error("prisma.conf should be rewritten with --force")
	}
	if readString(t, ".env") != "DATABASE_URL=postgresql://real@db/bemestar\n" {
		t.Error(".env must never be overwritten")
	}
	if !strings.Contains(readString(t, "prisma/seed.yaml"), "meus dados") {
		t.Error("existing seed must be kept")
	}
}

func TestInit_UnknownProvider(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runCLI(t, "init", "-p", "oracle")
	if err == nil || !strings.Contains(err.Error(), "oracle") {
		t.Fatalf("expected unsupported provider error, got %v", err)
	}
}

func readString(t *testing.T, path string) string {
	t.Helper()
	return string(readFixture(t, path))
}
