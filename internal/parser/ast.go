package parser

import (
	"fmt"
	"strings"
)

// Schema representa o schema completo
type Schema struct {
	Datasources []*Datasource
	Generators  []*Generator
	Models      []*Model
	Enums       []*Enum
}

// Datasource representa um datasource
type Datasource struct {
	Name   string
	Fields []*Field
	Line   int
}

// Generator representa um generator
type Generator struct {
	Name   string
	Fields []*Field
	Line   int
}

// Model representa um model (tabela)
type Model struct {
	Name       string
	Doc        string
	Fields     []*ModelField
	Attributes []*Attribute // @@attributes
	Line       int
}

// ModelField representa um campo de um model
type ModelField struct {
	Name       string
	Doc        string
	Type       *FieldType
	Attributes []*Attribute // @attributes
	Line       int
}

// FieldType representa o tipo de um campo
type FieldType struct {
	Name       string // String, Int, Boolean, nome de enum ou model
	IsArray    bool   // sufixo []
	IsOptional bool   // sufixo ?
}

// Enum representa um enum
type Enum struct {
	Name   string
	Doc    string
	Values []*EnumValue
	Line   int
}

// EnumValue representa um valor de enum
type EnumValue struct {
	Name       string
	Attributes []*Attribute
}

// Attribute representa um atributo (@id, @default(...), @@unique(...))
type Attribute struct {
	Name      string
	Arguments []*AttributeArgument
	Line      int
}

// AttributeArgument representa um argumento de atributo
type AttributeArgument struct {
	Name string // vazio para argumentos posicionais
	// Value é string, int64, float64, bool, []interface{} ou *FunctionCall.
	// Identificadores soltos (Cascade, campos em listas) chegam como string.
	Value interface{}
}

// FunctionCall representa env("X"), now(), uuid(), etc.
type FunctionCall struct {
	Name string
	Args []interface{}
	// ArgNames acompanha Args; "" para argumentos posicionais
	ArgNames []string
}

func (f *FunctionCall) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		if s, ok := a.(string); ok {
			args[i] = fmt.Sprintf("%q", s)
		} else {
			args[i] = fmt.Sprint(a)
		}
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")"
}

// Field representa um campo chave = valor (datasource e generator)
type Field struct {
	Name  string
	Value interface{}
}

// ScalarTypes são os tipos primitivos do Prisma
var ScalarTypes = map[string]bool{
	"String":   true,
	"Int":      true,
	"BigInt":   true,
	"Float":    true,
	"Decimal":  true,
	"Boolean":  true,
	"DateTime": true,
	"Json":     true,
	"Bytes":    true,
}

// Model retorna o model pelo nome
func (s *Schema) Model(name string) *Model {
	for _, m := range s.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Enum retorna o enum pelo nome
func (s *Schema) Enum(name string) *Enum {
	for _, e := range s.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Provider retorna o provider do primeiro datasource
func (s *Schema) Provider() string {
	for _, ds := range s.Datasources {
		if v, ok := ds.Value("provider").(string); ok {
			return v
		}
	}
	return ""
}

// Value retorna o valor de um campo do datasource
func (d *Datasource) Value(name string) interface{} {
	return fieldValue(d.Fields, name)
}

// Value retorna o valor de um campo do generator
func (g *Generator) Value(name string) interface{} {
	return fieldValue(g.Fields, name)
}

func fieldValue(fields []*Field, name string) interface{} {
	for _, f := range fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// Field retorna um campo do model pelo nome
func (m *Model) Field(name string) *ModelField {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Attribute retorna o primeiro @@atributo com o nome
func (m *Model) Attribute(name string) *Attribute {
	return findAttribute(m.Attributes, name)
}

// AttributesNamed retorna todos os @@atributos com o nome (ex: vários @@unique)
func (m *Model) AttributesNamed(name string) []*Attribute {
	var attrs []*Attribute
	for _, a := range m.Attributes {
		if a.Name == name {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

// TableName retorna o nome da tabela (@@map ou o nome do model)
func (m *Model) TableName() string {
	if attr := m.Attribute("map"); attr != nil {
		if name, ok := attr.StringArg("name", 0); ok {
			return name
		}
	}
	return m.Name
}

// IDFields retorna os campos da chave primária (@id ou @@id)
func (m *Model) IDFields() []string {
	for _, f := range m.Fields {
		if f.Attribute("id") != nil {
			return []string{f.Name}
		}
	}
	if attr := m.Attribute("id"); attr != nil {
		fields, _ := attr.ListArg("fields", 0)
		return fields
	}
	return nil
}

// UniqueSets retorna os conjuntos de campos únicos: @id, @unique e @@unique
func (m *Model) UniqueSets() [][]string {
	var sets [][]string
	if id := m.IDFields(); len(id) > 0 {
		sets = append(sets, id)
	}
	for _, f := range m.Fields {
		if f.Attribute("unique") != nil {
			sets = append(sets, []string{f.Name})
		}
	}
	for _, attr := range m.AttributesNamed("unique") {
		if fields, ok := attr.ListArg("fields", 0); ok {
			sets = append(sets, fields)
		}
	}
	return sets
}

// Attribute retorna o atributo do campo com o nome
func (f *ModelField) Attribute(name string) *Attribute {
	return findAttribute(f.Attributes, name)
}

// ColumnName retorna o nome da coluna (@map ou o nome do campo)
func (f *ModelField) ColumnName() string {
	if attr := f.Attribute("map"); attr != nil {
		if name, ok := attr.StringArg("name", 0); ok {
			return name
		}
	}
	return f.Name
}

// IsRelation indica se o tipo do campo é outro model
func (f *ModelField) IsRelation(s *Schema) bool {
	return f.Type != nil && s.Model(f.Type.Name) != nil
}

// IsEnum indica se o tipo do campo é um enum
func (f *ModelField) IsEnum(s *Schema) bool {
	return f.Type != nil && s.Enum(f.Type.Name) != nil
}

// Default retorna o valor de @default, ou nil
func (f *ModelField) Default() interface{} {
	attr := f.Attribute("default")
	if attr == nil || len(attr.Arguments) == 0 {
		return nil
	}
	return attr.Arguments[0].Value
}

// Relation descreve o @relation de um campo
type Relation struct {
	Name       string
	Fields     []string
	References []string
	OnDelete   string
}

// Relation retorna os argumentos de @relation (vazio se não houver)
func (f *ModelField) Relation() Relation {
	var rel Relation
	attr := f.Attribute("relation")
	if attr == nil {
		return rel
	}
	rel.Name, _ = attr.StringArg("name", 0)
	rel.Fields, _ = attr.ListArg("fields", -1)
	rel.References, _ = attr.ListArg("references", -1)
	rel.OnDelete, _ = attr.StringArg("onDelete", -1)
	return rel
}

// OppositeField encontra, no model alvo, o campo que fecha a relação de
// field. Relações nomeadas casam pelo nome.
func (s *Schema) OppositeField(model *Model, field *ModelField) *ModelField {
	if field.Type == nil {
		return nil
	}
	target := s.Model(field.Type.Name)
	if target == nil {
		return nil
	}
	name := field.Relation().Name
	for _, candidate := range target.Fields {
		if candidate == field || candidate.Type == nil || candidate.Type.Name != model.Name {
			continue
		}
		if candidate.Relation().Name == name {
			return candidate
		}
	}
	return nil
}

func findAttribute(attrs []*Attribute, name string) *Attribute {
	for _, a := range attrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Arg retorna o argumento nomeado, ou o posicional em position (-1 para
// aceitar só o nomeado)
func (a *Attribute) Arg(name string, position int) (interface{}, bool) {
	positional := 0
	for _, arg := range a.Arguments {
		if arg.Name == name {
			return arg.Value, true
		}
		if arg.Name == "" {
			if positional == position {
				return arg.Value, true
			}
			positional++
		}
	}
	return nil, false
}

// StringArg é Arg para valores string
func (a *Attribute) StringArg(name string, position int) (string, bool) {
	v, ok := a.Arg(name, position)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ListArg é Arg para listas de identificadores ([a, b])
func (a *Attribute) ListArg(name string, position int) ([]string, bool) {
	v, ok := a.Arg(name, position)
	if !ok {
		return nil, false
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case string:
			out = append(out, it)
		case *FunctionCall:
			// campo com modificador, ex: data(sort: Desc)
			out = append(out, it.Name)
		}
	}
	return out, true
}

// String implementa fmt.Stringer para Schema
func (s *Schema) String() string {
	var b strings.Builder
	b.WriteString("Schema{\n")
	for _, ds := range s.Datasources {
		b.WriteString("  Datasource(" + ds.Name + ")\n")
	}
	for _, gen := range s.Generators {
		b.WriteString("  Generator(" + gen.Name + ")\n")
	}
	for _, model := range s.Models {
		b.WriteString("  Model(" + model.Name + ")\n")
	}
	for _, enum := range s.Enums {
		b.WriteString("  Enum(" + enum.Name + ")\n")
	}
	b.WriteString("}")
	return b.String()
}
