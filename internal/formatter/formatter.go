// Package formatter reescreve um schema.prisma no formato canônico:
// blocos na ordem original, colunas de nome, tipo e atributos alinhadas.
// Comentários "//" não sobrevivem; comentários "///" sim.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carlosnayan/bemestar/internal/parser"
)

const indent = "  "

// FormatSchema formata um schema Prisma parseado
func FormatSchema(schema *parser.Schema) string {
	var blocks []string
	for _, ds := range schema.Datasources {
		blocks = append(blocks, formatKeyValueBlock("datasource", ds.Name, ds.Fields))
	}
	for _, gen := range schema.Generators {
		blocks = append(blocks, formatKeyValueBlock("generator", gen.Name, gen.Fields))
	}
	for _, model := range schema.Models {
		blocks = append(blocks, formatModel(model))
	}
	for _, enum := range schema.Enums {
		blocks = append(blocks, formatEnum(enum))
	}
	return strings.Join(blocks, "\n")
}

func formatKeyValueBlock(kind, name string, fields []*parser.Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s {\n", kind, name)
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Name))
	}
	for _, f := range fields {
		fmt.Fprintf(&b, "%s%-*s = %s\n", indent, width, f.Name, formatValue(f.Value, true))
	}
	b.WriteString("}\n")
	return b.String()
}

func writeDoc(b *strings.Builder, prefix, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		b.WriteString(prefix + "/// " + line + "\n")
	}
}

func formatModel(model *parser.Model) string {
	var b strings.Builder
	writeDoc(&b, "", model.Doc)
	fmt.Fprintf(&b, "model %s {\n", model.Name)

	// grupos separados por linha em branco no original são alinhados à parte
	var groups [][]*parser.ModelField
	prevLine := 0
	for _, f := range model.Fields {
		start := f.Line
		if f.Doc != "" {
			start -= strings.Count(f.Doc, "\n") + 1
		}
		if len(groups) == 0 || (prevLine > 0 && start-prevLine > 1) {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], f)
		prevLine = f.Line
	}

	for i, group := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		nameWidth, typeWidth := 0, 0
		for _, f := range group {
			nameWidth = max(nameWidth, len(f.Name))
			typeWidth = max(typeWidth, len(typeString(f.Type)))
		}
		for _, f := range group {
			writeDoc(&b, indent, f.Doc)
			line := fmt.Sprintf("%s%-*s %-*s", indent, nameWidth, f.Name, typeWidth, typeString(f.Type))
			for _, attr := range f.Attributes {
				line += " @" + formatAttribute(attr, f)
			}
			b.WriteString(strings.TrimRight(line, " ") + "\n")
		}
	}

	if len(model.Attributes) > 0 {
		if len(model.Fields) > 0 {
			b.WriteString("\n")
		}
		for _, attr := range model.Attributes {
			b.WriteString(indent + "@@" + formatAttribute(attr, nil) + "\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func typeString(t *parser.FieldType) string {
	if t == nil {
		return ""
	}
	s := t.Name
	if t.IsArray {
		s += "[]"
	}
	if t.IsOptional {
		s += "?"
	}
	return s
}

// formatAttribute escreve nome(args). O parser entrega identificadores e
// strings do mesmo jeito, então o contexto decide o que leva aspas.
func formatAttribute(attr *parser.Attribute, field *parser.ModelField) string {
	if len(attr.Arguments) == 0 {
		return attr.Name
	}
	args := make([]string, len(attr.Arguments))
	for i, arg := range attr.Arguments {
		value := formatValue(arg.Value, quoteArgument(attr, arg, field))
		if arg.Name != "" {
			args[i] = arg.Name + ": " + value
		} else {
			args[i] = value
		}
	}
	return attr.Name + "(" + strings.Join(args, ", ") + ")"
}

func quoteArgument(attr *parser.Attribute, arg *parser.AttributeArgument, field *parser.ModelField) bool {
	switch arg.Name {
	case "name", "map":
		return true
	case "":
	default:
		// fields, references, onDelete, onUpdate, sort, type...
		return false
	}
	switch attr.Name {
	case "map", "relation":
		return true
	case "default":
		// @default(ATIVO) é enum; em campos String o valor é texto
		return field != nil && field.Type != nil && field.Type.Name == "String"
	}
	return false
}

func formatValue(v interface{}, quote bool) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if quote {
			return strconv.Quote(val)
		}
		return val
	case *parser.FunctionCall:
		return formatCall(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item, quote)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(v)
}

// formatCall escreve env("X"), now() e modificadores como data(sort: Desc)
func formatCall(call *parser.FunctionCall) string {
	args := make([]string, len(call.Args))
	for i, arg := range call.Args {
		name := ""
		if i < len(call.ArgNames) {
			name = call.ArgNames[i]
		}
		if name == "" {
			args[i] = formatValue(arg, true)
		} else {
			args[i] = name + ": " + formatValue(arg, false)
		}
	}
	return call.Name + "(" + strings.Join(args, ", ") + ")"
}

func formatEnum(enum *parser.Enum) string {
	var b strings.Builder
	writeDoc(&b, "", enum.Doc)
	fmt.Fprintf(&b, "enum %s {\n", enum.Name)
	for _, val := range enum.Values {
		line := indent + val.Name
		for _, attr := range val.Attributes {
			line += " @" + formatAttribute(attr, nil)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("}\n")
	return b.String()
}
