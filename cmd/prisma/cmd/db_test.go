package cmd

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/carlosnayan/bemestar/internal/migrations"
)

func TestDbPush_CreatesMissingTables(t *testing.T) {
	setupProject(t)

	output, err := runCLI(t, "db", "push", "--skip-generate")
	if err != nil {
		t.Fatalf("db push: %v\n%s", err, output)
	}
	assertContains(t, output, "[+] Added table `receitas`")
	assertContains(t, output, "Banco sincronizado")

	output, err = runCLI(t, "db", "push", "--skip-generate")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, output, "já está sincronizado")
	if len(migrationDirs(t)) != 0 {
		t.Error("db push must not write migrations")
	}
}

func TestDbSeed_YAML(t *testing.T) {
	setupProject(t)
	if _, err := runCLI(t, "db", "push", "--skip-generate"); err != nil {
		t.Fatal(err)
	}

	output, err := runCLI(t, "db", "seed")
	if err != nil {
		t.Fatalf("db seed: %v\n%s", err, output)
	}
	for _, model := range []string{"Usuario", "Receita", "ReceitaFavorita", "LembreteSono"} {
		assertContains(t, output, model)
	}
	assertContains(t, output, "Seed carregado")
}

func TestDbSeed_Command(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses the true command")
	}
	setupProject(t)
	writeFile(t, "prisma.conf", strings.Replace(readString(t, "prisma.conf"), `seed = "prisma/seed.yaml"`, `seed = "true"`, 1))

	output, err := runCLI(t, "db", "seed")
	if err != nil {
		t.Fatalf("db seed: %v\n%s", err, output)
	}
	assertContains(t, output, "Seed executado")
}

func TestDbSeed_NotConfigured(t *testing.T) {
	setupProject(t)
	writeFile(t, "prisma.conf", strings.Replace(readString(t, "prisma.conf"), `seed = "prisma/seed.yaml"`, "", 1))

	_, err := runCLI(t, "db", "seed")
	if err == nil || !strings.Contains(err.Error(), "seed não configurado") {
		t.Fatalf("expected seed not configured error, got %v", err)
	}
}

func TestDbExecute(t *testing.T) {
	setupProject(t)
	if _, err := runCLI(t, "db", "push", "--skip-generate"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, "ajuste.sql", `-- dados de teste
INSERT INTO usuarios (id, nome, email, senha_hash, atualizado_em) VALUES ('u1', 'Ana', 'ana@example.com', 'x', CURRENT_TIMESTAMP);
UPDATE usuarios SET nome = 'Ana Souza' WHERE id = 'u1';
`)

	output, err := runCLI(t, "db", "execute", "--file", "ajuste.sql")
	if err != nil {
		t.Fatalf("db execute: %v\n%s", err, output)
	}
	assertContains(t, output, "2 statement(s)")

	in = strings.NewReader("DELETE FROM usuarios WHERE id = 'u1';")
	if output, err := runCLI(t, "db", "execute", "--stdin"); err != nil {
		t.Fatalf("db execute --stdin: %v\n%s", err, output)
	}

	writeFile(t, "quebrado.sql", "INSERT INTO tabela_que_nao_existe VALUES (1);")
	if _, err := runCLI(t, "db", "execute", "-f", "quebrado.sql"); err == nil {
		t.Error("expected error for invalid SQL")
	}
}

func TestDbExecute_RequiresSource(t *testing.T) {
	setupProject(t)

	if _, err := runCLI(t, "db", "execute"); err == nil {
		t.Error("expected error without --file or --stdin")
	}
	if _, err := runCLI(t, "db", "execute", "--file", "x.sql", "--stdin"); err == nil {
		t.Error("expected error with both --file and --stdin")
	}
}

func TestDbHealth_JSON(t *testing.T) {
	setupProject(t)

	output, err := runCLI(t, "db", "health", "--json", "--timeout", "2s")
	if err != nil {
		t.Fatalf("db health: %v\n%s", err, output)
	}

	var check migrations.HealthCheck
	if err := json.Unmarshal([]byte(output), &check); err != nil {
		t.Fatalf("invalid json %q: %v", output, err)
	}
	if check.Status != "healthy" || check.Provider != "sqlite" {
		t.Errorf("unexpected health check: %+v", check)
	}
}

func TestVersion(t *testing.T) {
	output, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, output, "prisma (bemestar)")

	output, err = runCLI(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, output, "prisma version")
}
