package cmd

import (
	"os"
	"strings"
	"testing"
)

const unformattedSchema = `datasource db {
  provider = "sqlite"
  url = env("DATABASE_URL")
}

model Usuario {
  id String @id @default(uuid())
  email String @unique
  metaHidratacaoMl Int @default(2000) @map("meta_hidratacao_ml")
}
`

func TestFormat_CheckThenWrite(t *testing.T) {
	setupProject(t)
	writeFile(t, "prisma/schema.prisma", unformattedSchema)

	output, err := runCLI(t, "format", "--check")
	if err == nil {
		t.Fatalf("expected --check to fail on unformatted schema:\n%s", output)
	}
	if data, _ := os.ReadFile("prisma/schema.prisma"); string(data) != unformattedSchema {
		t.Fatal("--check must not write the file")
	}

	if output, err := runCLI(t, "format"); err != nil {
		t.Fatalf("format: %v\n%s", err, output)
	}
	data, err := os.ReadFile("prisma/schema.prisma")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "  metaHidratacaoMl Int    @default(2000) @map(\"meta_hidratacao_ml\")") {
		t.Errorf("columns not aligned:\n%s", data)
	}

	output, err = runCLI(t, "format", "--check")
	if err != nil {
		t.Fatalf("formatted schema should pass --check: %v\n%s", err, output)
	}
	assertContains(t, output, "já está formatado")
}

func TestFormat_RejectsInvalidSchema(t *testing.T) {
	setupProject(t)
	writeFile(t, "prisma/schema.prisma", invalidSchema)

	if _, err := runCLI(t, "format"); err == nil {
		t.Fatal("expected error for invalid schema")
	}
	if data, _ := os.ReadFile("prisma/schema.prisma"); string(data) != invalidSchema {
		t.Error("invalid schema must not be rewritten")
	}
}
