package generator

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/carlosnayan/bemestar/internal/parser"
)

const builderPkg = "github.com/carlosnayan/bemestar/builder"

// genMetadata gera a função modelsMetadata, que descreve cada model para o
// builder: colunas, tipos, defaults, chaves únicas e relações
func genMetadata(schema *parser.Schema, pkg, modelsPath string) (*jen.File, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment(generatedHeader)
	f.ImportName(builderPkg, "builder")
	f.ImportName(modelsPath, "models")

	items := make([]jen.Code, 0, len(schema.Models))
	for _, model := range schema.Models {
		item, err := modelLiteral(schema, model, modelsPath)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	f.Comment("modelsMetadata descreve os models do schema para o builder")
	f.Func().Id("modelsMetadata").Params().Index().Op("*").Qual(builderPkg, "Model").Block(
		jen.Return(jen.Index().Op("*").Qual(builderPkg, "Model").Custom(multiline, items...)),
	)
	return f, nil
}

func modelLiteral(schema *parser.Schema, model *parser.Model, modelsPath string) (jen.Code, error) {
	ids := map[string]bool{}
	for _, name := range model.IDFields() {
		ids[name] = true
	}

	var fields, relations []jen.Code
	for _, field := range model.Fields {
		if field.IsRelation(schema) {
			rel, err := relationLiteral(schema, model, field)
			if err != nil {
				return nil, err
			}
			relations = append(relations, rel)
			continue
		}
		lit, err := fieldLiteral(schema, field, ids[field.Name])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", model.Name, field.Name, err)
		}
		fields = append(fields, lit)
	}

	entries := []jen.Code{
		jen.Id("Name").Op(":").Lit(model.Name),
		jen.Id("Table").Op(":").Lit(model.TableName()),
		jen.Id("Type").Op(":").Qual("reflect", "TypeOf").Call(jen.Qual(modelsPath, GoName(model.Name)).Values()),
		jen.Id("Fields").Op(":").Index().Op("*").Qual(builderPkg, "Field").Custom(multiline, fields...),
	}
	if len(relations) > 0 {
		entries = append(entries, jen.Id("Relations").Op(":").Index().Op("*").Qual(builderPkg, "Relation").Custom(multiline, relations...))
	}
	if sets := compositeUniques(model); len(sets) > 0 {
		entries = append(entries, jen.Id("UniqueSets").Op(":").Index().Index().String().ValuesFunc(func(g *jen.Group) {
			for _, set := range sets {
				g.Values(lits(set)...)
			}
		}))
	}
	return jen.Custom(multiline, entries...), nil
}

var multiline = jen.Options{
	Open:      "{",
	Close:     "}",
	Separator: ",",
	Multi:     true,
}

func fieldLiteral(schema *parser.Schema, field *parser.ModelField, id bool) (jen.Code, error) {
	if _, err := goType(schema, field); err != nil {
		return nil, err
	}
	typ := field.Type.Name
	if field.IsEnum(schema) {
		typ = "String"
	}

	entries := []jen.Code{
		jen.Id("Name").Op(":").Lit(field.Name),
		jen.Id("Column").Op(":").Lit(field.ColumnName()),
		jen.Id("Type").Op(":").Lit(typ),
	}
	flag := func(name string, on bool) {
		if on {
			entries = append(entries, jen.Id(name).Op(":").True())
		}
	}
	flag("List", field.Type.IsArray)
	flag("Optional", field.Type.IsOptional)
	flag("ID", id)
	flag("Unique", field.Attribute("unique") != nil)
	flag("UpdatedAt", field.Attribute("updatedAt") != nil)

	switch v := field.Default().(type) {
	case nil:
	case *parser.FunctionCall:
		switch v.Name {
		case "uuid", "cuid":
			entries = append(entries, jen.Id("Default").Op(":").Qual(builderPkg, "DefaultUUID"))
		case "now":
			entries = append(entries, jen.Id("Default").Op(":").Qual(builderPkg, "DefaultNow"))
		case "autoincrement", "dbgenerated":
			// o banco preenche
		default:
			return nil, fmt.Errorf("default %s não é suportado", v)
		}
	default:
		value, err := defaultValue(typ, v)
		if err != nil {
			return nil, err
		}
		entries = append(entries,
			jen.Id("Default").Op(":").Qual(builderPkg, "DefaultValue"),
			jen.Id("DefaultValue").Op(":").Add(value),
		)
	}
	return jen.Values(entries...), nil
}

// defaultValue converte o literal do schema para o tipo Go do campo
func defaultValue(typ string, v interface{}) (*jen.Statement, error) {
	switch typ {
	case "Int":
		if n, ok := v.(int64); ok {
			return jen.Lit(int(n)), nil
		}
	case "Float":
		switch n := v.(type) {
		case int64:
			return jen.Lit(float64(n)), nil
		case float64:
			return jen.Lit(n), nil
		}
	case "Boolean":
		if b, ok := v.(bool); ok {
			return jen.Lit(b), nil
		}
	case "String":
		if s, ok := v.(string); ok {
			return jen.Lit(s), nil
		}
	}
	return nil, fmt.Errorf("default %v não combina com o tipo %s", v, typ)
}

func relationLiteral(schema *parser.Schema, model *parser.Model, field *parser.ModelField) (jen.Code, error) {
	rel := field.Relation()
	entries := []jen.Code{
		jen.Id("Name").Op(":").Lit(field.Name),
		jen.Id("Model").Op(":").Lit(field.Type.Name),
	}
	if field.Type.IsArray {
		entries = append(entries, jen.Id("List").Op(":").True())
	}

	if len(rel.Fields) > 0 {
		if field.Type.IsOptional {
			entries = append(entries, jen.Id("Optional").Op(":").True())
		}
		entries = append(entries,
			jen.Id("Fields").Op(":").Index().String().Values(lits(rel.Fields)...),
			jen.Id("References").Op(":").Index().String().Values(lits(rel.References)...),
		)
		if rel.OnDelete != "" {
			entries = append(entries, jen.Id("OnDelete").Op(":").Lit(rel.OnDelete))
		}
		entries = append(entries, jen.Id("Owner").Op(":").True())
		return jen.Values(entries...), nil
	}

	// lado sem FK: os pares vêm do campo oposto, invertidos
	opposite := schema.OppositeField(model, field)
	if opposite == nil {
		return nil, fmt.Errorf("%s.%s: relação sem lado oposto", model.Name, field.Name)
	}
	orel := opposite.Relation()
	if !field.Type.IsArray {
		entries = append(entries, jen.Id("Optional").Op(":").True())
	}
	entries = append(entries,
		jen.Id("Fields").Op(":").Index().String().Values(lits(orel.References)...),
		jen.Id("References").Op(":").Index().String().Values(lits(orel.Fields)...),
	)
	return jen.Values(entries...), nil
}

func lits(values []string) []jen.Code {
	out := make([]jen.Code, len(values))
	for i, v := range values {
		out[i] = jen.Lit(v)
	}
	return out
}
