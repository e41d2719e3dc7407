package cmd

import (
	"context"
	"os"
	"testing"
	"time"
)

const invalidSchema = `datasource db {
  provider = "sqlite"
  url      = env("DATABASE_URL")
}

model Receita {
  id     String @id
  autor  Usuario
  tempo  Minutos
}
`

func TestValidate_ValidSchema(t *testing.T) {
	setupProject(t)

	output, err := runCLI(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, output)
	}
	assertContains(t, output, "é válido (10 models")
}

func TestValidate_SchemaFlag(t *testing.T) {
	setupProject(t)
	writeFile(t, "outro.prisma", invalidSchema)

	output, err := runCLI(t, "--schema", "outro.prisma", "validate")
	if err == nil {
		t.Fatalf("expected validation error, got output:\n%s", output)
	}
	assertContains(t, output, "Erros de validação do schema")
	assertContains(t, output, "Minutos")
}

func TestValidate_WithoutConfigUsesDefaultPath(t *testing.T) {
	schema := readFixture(t, schemaFixture)
	chdir(t, t.TempDir())
	writeFile(t, "prisma/schema.prisma", string(schema))

	output, err := runCLI(t, "validate")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, output)
	}
	assertContains(t, output, "prisma/schema.prisma")
}

func TestWatchSchema_RevalidatesOnWrite(t *testing.T) {
	setupProject(t)
	watchDebounce = 10 * time.Millisecond
	t.Cleanup(func() { watchDebounce = 200 * time.Millisecond })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchSchema(ctx, "prisma/schema.prisma", func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// dá tempo do watcher registrar o diretório
	time.Sleep(100 * time.Millisecond)
	data, err := os.ReadFile("prisma/schema.prisma")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("prisma/schema.prisma", append(data, '\n'), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("onChange was not called after writing the schema")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watchSchema returned %v", err)
	}
}

func TestWatchSchema_IgnoresOtherFiles(t *testing.T) {
	setupProject(t)
	watchDebounce = 10 * time.Millisecond
	t.Cleanup(func() { watchDebounce = 200 * time.Millisecond })

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	called := false
	done := make(chan error, 1)
	go func() {
		done <- watchSchema(ctx, "prisma/schema.prisma", func() { called = true })
	}()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, "prisma/seed.yaml", "usuarios: []\n")

	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("onChange should only fire for the watched schema")
	}
}
