package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/carlosnayan/bemestar/internal/parser"
)

func loadWellnessSchema(t *testing.T) *parser.Schema {
	t.Helper()
	schema, err := parser.ParseAndValidateFile(filepath.Join("..", "..", "prisma", "schema.prisma"))
	if err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	return schema
}

func parseSchema(t *testing.T, body string) *parser.Schema {
	t.Helper()
	schema, err := parser.ParseAndValidate(`datasource db {
  provider = "sqlite"
  url      = "file:dev.db"
}
` + body)
	if err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}
	return schema
}

func assertMatches(t *testing.T, code, pattern string) {
	t.Helper()
	if !regexp.MustCompile(pattern).MatchString(code) {
		t.Errorf("expected generated code to match %q", pattern)
	}
}

func TestGoName(t *testing.T) {
	tests := map[string]string{
		"id":               "ID",
		"usuarioId":        "UsuarioID",
		"fotoUrl":          "FotoURL",
		"metaHidratacaoMl": "MetaHidratacaoMl",
		"RegistroSono":     "RegistroSono",
		"registro_sono":    "RegistroSono",
		"CAFE_DA_MANHA":    "CafeDaManha",
		"nome":             "Nome",
	}
	for in, want := range tests {
		if got := GoName(in); got != want {
			t.Errorf("GoName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenModels_WellnessSchema(t *testing.T) {
	f, err := genModels(loadWellnessSchema(t), "models")
	if err != nil {
		t.Fatalf("genModels: %v", err)
	}
	code := fmt.Sprintf("%#v", f)

	if !strings.HasPrefix(code, "// "+generatedHeader) {
		t.Error("expected generated header")
	}
	for _, name := range []string{"Usuario", "Refeicao", "RegistroRefeicao", "RegistroHidratacao", "RegistroSono",
		"LembreteSono", "Receita", "Ingrediente", "PassoReceita", "ReceitaFavorita"} {
		assertMatches(t, code, `type `+name+` struct \{`)
	}

	assertMatches(t, code, `UsuarioID\s+string\s+`+"`"+`db:"usuario_id" json:"usuarioId" prisma:"usuarioId"`+"`")
	assertMatches(t, code, `DataNascimento\s+\*time\.Time`)
	assertMatches(t, code, `PesoKg\s+\*float64`)
	assertMatches(t, code, `DiasSemana\s+\[\]int64`)
	assertMatches(t, code, `Tags\s+\[\]string`)
	assertMatches(t, code, `Receitas\s+\[\]Receita\s+`+"`"+`db:"-" json:"receitas,omitempty" prisma:"receitas"`+"`")
	assertMatches(t, code, `Refeicao\s+\*Refeicao\s+`)
	assertMatches(t, code, `// Pessoa usuária do app`)
}

func TestGenMetadata_WellnessSchema(t *testing.T) {
	f, err := genMetadata(loadWellnessSchema(t), "db", "example.com/app/db/models")
	if err != nil {
		t.Fatalf("genMetadata: %v", err)
	}
	code := fmt.Sprintf("%#v", f)

	assertMatches(t, code, `package db`)
	assertMatches(t, code, `"example.com/app/db/models"`)
	assertMatches(t, code, `func modelsMetadata\(\) \[\]\*builder\.Model`)
	assertMatches(t, code, `Type:\s+reflect\.TypeOf\(models\.Usuario\{\}\)`)
	assertMatches(t, code, `Table:\s+"registros_hidratacao"`)
	assertMatches(t, code, `Default:\s+builder\.DefaultUUID`)
	assertMatches(t, code, `Default:\s+builder\.DefaultNow`)
	assertMatches(t, code, `DefaultValue:\s+2000`)
	assertMatches(t, code, `DefaultValue:\s+8\.0`)
	assertMatches(t, code, `UpdatedAt:\s+true`)
	assertMatches(t, code, `UniqueSets:\s+\[\]\[\]string\{\{"receitaId", "ordem"\}\}`)
	assertMatches(t, code, `UniqueSets:\s+\[\]\[\]string\{\{"usuarioId", "receitaId"\}\}`)
	assertMatches(t, code, `OnDelete:\s+"SetNull"`)
	// lado lista: id local casa com a FK do filho
	assertMatches(t, code, `Name:\s+"receitas",\s+Model:\s+"Receita",\s+List:\s+true,\s+Fields:\s+\[\]string\{"id"\},\s+References:\s+\[\]string\{"usuarioId"\}`)
}

func TestGenerate_WritesFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app // app\n\ngo 1.24\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(root, "internal", "db")

	result, err := Generate(loadWellnessSchema(t), Options{Output: out})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 files, got %v", result.Files)
	}

	metadata, err := os.ReadFile(filepath.Join(out, "metadata.go"))
	if err != nil {
		t.Fatal(err)
	}
	assertMatches(t, string(metadata), `"example.com/app/internal/db/models"`)
	assertMatches(t, string(metadata), `package db`)

	if _, err := os.Stat(filepath.Join(out, "models", "models.go")); err != nil {
		t.Errorf("models.go not written: %v", err)
	}
}

func TestGenerate_Errors(t *testing.T) {
	schema := parseSchema(t, `
model Config {
  id    String @id
  dados Json
}
`)
	if _, err := Generate(schema, Options{Output: t.TempDir(), ModulePath: "example.com/x"}); err == nil {
		t.Error("expected error for Json field")
	}

	if _, err := Generate(schema, Options{}); err == nil {
		t.Error("expected error without output")
	}

	// output fora do módulo
	if _, err := calculateImportPath("example.com/app", "/srv/app", "/tmp/fora"); err == nil {
		t.Error("expected error for output outside the module")
	}
}

func TestGenModels_Enum(t *testing.T) {
	schema := parseSchema(t, `
enum Humor {
  BOM
  CANSADO
}

model Diario {
  id    String  @id
  humor Humor?
}
`)
	f, err := genModels(schema, "models")
	if err != nil {
		t.Fatalf("genModels: %v", err)
	}
	code := fmt.Sprintf("%#v", f)
	assertMatches(t, code, `type Humor string`)
	assertMatches(t, code, `HumorCansado\s+Humor = "CANSADO"`)
	assertMatches(t, code, `Humor\s+\*Humor`)

	meta, err := genMetadata(schema, "db", "example.com/app/db/models")
	if err != nil {
		t.Fatalf("genMetadata: %v", err)
	}
	assertMatches(t, fmt.Sprintf("%#v", meta), `Name:\s+"humor",\s+Column:\s+"humor",\s+Type:\s+"String"`)
}
