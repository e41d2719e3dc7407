package parser

import (
	"strings"
	"testing"
)

const header = `
datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}

generator client {
  provider = "bemestar-go"
  output   = "../db"
}
`

func mustParse(t *testing.T, input string) *Schema {
	t.Helper()
	schema, errs, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v (%v)", err, errs)
	}
	return schema
}

func TestParseIndexWithType(t *testing.T) {
	input := `
model book_categories {
  id String @id
  type String
  @@index([type], map: "idx_book_categories_type")
}
`
	p := NewParser(NewLexer(input))
	schema := p.ParseSchema()

	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if len(schema.Models) != 1 {
		t.Fatalf("Expected 1 model, got %d", len(schema.Models))
	}

	model := schema.Models[0]
	if len(model.Attributes) != 1 {
		t.Fatalf("Expected 1 attribute, got %d", len(model.Attributes))
	}

	attr := model.Attributes[0]
	if attr.Name != "index" {
		t.Errorf("Expected attribute name 'index', got '%s'", attr.Name)
	}
	fields, ok := attr.ListArg("fields", 0)
	if !ok || len(fields) != 1 || fields[0] != "type" {
		t.Errorf("fields = %v, want [type]", fields)
	}
	if name, _ := attr.StringArg("map", -1); name != "idx_book_categories_type" {
		t.Errorf("map = %q", name)
	}
}

func TestParseFile_Wellness(t *testing.T) {
	schema, errs, err := ParseFile("../../prisma/schema.prisma")
	if err != nil {
		t.Fatalf("ParseFile() error = %v (%v)", err, errs)
	}

	if got := schema.Provider(); got != "postgresql" {
		t.Errorf("Provider() = %q", got)
	}
	if len(schema.Models) != 10 {
		t.Fatalf("got %d models, want 10", len(schema.Models))
	}

	tables := map[string]string{
		"Usuario":            "usuarios",
		"Refeicao":           "refeicoes",
		"RegistroRefeicao":   "registros_refeicao",
		"RegistroHidratacao": "registros_hidratacao",
		"RegistroSono":       "registros_sono",
		"LembreteSono":       "lembretes_sono",
		"Receita":            "receitas",
		"Ingrediente":        "ingredientes",
		"PassoReceita":       "passos_receita",
		"ReceitaFavorita":    "receitas_favoritas",
	}
	for name, table := range tables {
		m := schema.Model(name)
		if m == nil {
			t.Errorf("model %s not found", name)
			continue
		}
		if m.TableName() != table {
			t.Errorf("%s.TableName() = %q, want %q", name, m.TableName(), table)
		}
	}

	usuario := schema.Model("Usuario")
	if usuario.Doc == "" {
		t.Error("Usuario should carry its /// doc comment")
	}
	if col := usuario.Field("senhaHash").ColumnName(); col != "senha_hash" {
		t.Errorf("senhaHash column = %q", col)
	}
	if def, ok := usuario.Field("id").Default().(*FunctionCall); !ok || def.Name != "uuid" {
		t.Errorf("id default = %#v", usuario.Field("id").Default())
	}
	if def := usuario.Field("metaHidratacaoMl").Default(); def != int64(2000) {
		t.Errorf("metaHidratacaoMl default = %#v", def)
	}
	if def := usuario.Field("altoContraste").Default(); def != false {
		t.Errorf("altoContraste default = %#v", def)
	}
	if !usuario.Field("registrosSono").IsRelation(schema) || !usuario.Field("registrosSono").Type.IsArray {
		t.Error("registrosSono should be a list relation")
	}

	registro := schema.Model("RegistroRefeicao")
	rel := registro.Field("refeicao").Relation()
	if rel.OnDelete != "SetNull" || len(rel.Fields) != 1 || rel.Fields[0] != "refeicaoId" || rel.References[0] != "id" {
		t.Errorf("refeicao relation = %+v", rel)
	}
	if !registro.Field("refeicao").Type.IsOptional {
		t.Error("refeicao should be optional")
	}

	lembrete := schema.Model("LembreteSono")
	dias := lembrete.Field("diasSemana")
	if dias.Type.Name != "Int" || !dias.Type.IsArray {
		t.Errorf("diasSemana type = %+v", dias.Type)
	}
	if !strings.Contains(dias.Doc, "domingo") {
		t.Errorf("diasSemana doc = %q", dias.Doc)
	}

	sets := schema.Model("ReceitaFavorita").UniqueSets()
	if len(sets) != 2 || strings.Join(sets[1], ",") != "usuarioId,receitaId" {
		t.Errorf("ReceitaFavorita unique sets = %v", sets)
	}
}

func TestParse_DatasourceEnvURL(t *testing.T) {
	schema := mustParse(t, header+`
model Usuario {
  id String @id @default(uuid())
}
`)
	url, ok := schema.Datasources[0].Value("url").(*FunctionCall)
	if !ok || url.Name != "env" || url.String() != `env("DATABASE_URL")` {
		t.Errorf("url = %#v", schema.Datasources[0].Value("url"))
	}
	if out := schema.Generators[0].Value("output"); out != "../db" {
		t.Errorf("output = %v", out)
	}
}

func TestParse_Enum(t *testing.T) {
	schema := mustParse(t, header+`
/// Turno do lembrete
enum Turno {
  MANHA
  TARDE
  NOITE
}

model Lembrete {
  id    String @id @default(uuid())
  turno Turno  @default(NOITE)
}
`)
	enum := schema.Enum("Turno")
	if enum == nil || len(enum.Values) != 3 || enum.Doc != "Turno do lembrete" {
		t.Fatalf("enum = %+v", enum)
	}
	if !schema.Model("Lembrete").Field("turno").IsEnum(schema) {
		t.Error("turno should be an enum field")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "missing id",
			input: `
model Nota {
  texto String
}`,
			want: "linha 2: model 'Nota' não tem @id",
		},
		{
			name: "unknown type",
			input: `
model Nota {
  id    String @id
  texto Texto
}`,
			want: "linha 4: tipo desconhecido",
		},
		{
			name: "unterminated string",
			input: `
model Nota {
  id String @id @map("id
}`,
			want: "linha 3:",
		},
		{
			name: "optional list",
			input: `
model Nota {
  id   String   @id
  tags String[]?
}`,
			want: "listas não podem ser opcionais",
		},
		{
			name: "unknown attribute",
			input: `
model Nota {
  id String @id @chave
}`,
			want: "atributo desconhecido @chave",
		},
		{
			name: "default type mismatch",
			input: `
model Nota {
  id     String @id
  ativo  Boolean @default("sim")
}`,
			want: "incompatível com o tipo Boolean",
		},
		{
			name: "updatedAt on string",
			input: `
model Nota {
  id    String @id
  texto String @updatedAt
}`,
			want: "@updatedAt",
		},
		{
			name: "missing opposite side",
			input: `
model Usuario {
  id String @id
}

model Nota {
  id        String  @id
  usuarioId String
  usuario   Usuario @relation(fields: [usuarioId], references: [id])
}`,
			want: "não tem o lado oposto",
		},
		{
			name: "implicit many to many",
			input: `
model Receita {
  id   String @id
  tags Tag[]
}

model Tag {
  id       String    @id
  receitas Receita[]
}`,
			want: "muitos-para-muitos implícita",
		},
		{
			name: "set null on required field",
			input: `
model Usuario {
  id    String @id
  notas Nota[]
}

model Nota {
  id        String  @id
  usuarioId String
  usuario   Usuario @relation(fields: [usuarioId], references: [id], onDelete: SetNull)
}`,
			want: "SetNull exige",
		},
		{
			name: "relation arity",
			input: `
model Usuario {
  id    String @id
  notas Nota[]
}

model Nota {
  id        String  @id
  usuarioId String
  usuario   Usuario @relation(fields: [usuarioId], references: [id, id])
}`,
			want: "mesmo número",
		},
		{
			name: "duplicate table",
			input: `
model A {
  id String @id
  @@map("t")
}

model B {
  id String @id
  @@map("t")
}`,
			want: "mesma tabela 't'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if _, ok := err.(*SchemaError); !ok {
				t.Errorf("error type = %T, want *SchemaError", err)
			}
			for _, e := range errs {
				if strings.Contains(e, tt.want) {
					return
				}
			}
			t.Errorf("errors %v do not contain %q", errs, tt.want)
		})
	}
}

func TestParse_RecoversAfterBadBlock(t *testing.T) {
	p := NewParser(NewLexer(`
bogus {
}

model Nota {
  id String @id
}
`))
	schema := p.ParseSchema()
	if len(p.Errors()) == 0 {
		t.Error("expected a syntax error for 'bogus'")
	}
	if schema.Model("Nota") == nil {
		t.Error("parser should recover and read model Nota")
	}
}

func TestLexer_LineTracking(t *testing.T) {
	l := NewLexer("model A {\n  id String\n}")
	var last Token
	for tok := l.NextToken(); tok.Type != TokenEOF; tok = l.NextToken() {
		last = tok
		if tok.Literal == "id" && tok.Line != 2 {
			t.Errorf("id line = %d, want 2", tok.Line)
		}
	}
	if last.Type != TokenRBrace || last.Line != 3 {
		t.Errorf("last token = %+v", last)
	}
}

func TestSchemaError_Error(t *testing.T) {
	err := &SchemaError{Errors: []string{"linha 1: a", "linha 2: b"}}
	msg := err.Error()
	if !strings.Contains(msg, "2 erro(s)") || !strings.Contains(msg, "2. linha 2: b") {
		t.Errorf("Error() = %q", msg)
	}
}
