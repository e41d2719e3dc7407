package generator

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/carlosnayan/bemestar/internal/parser"
)

// escalares suportados e o tipo Go de cada um
var scalarGoTypes = map[string]func() *jen.Statement{
	"String":   func() *jen.Statement { return jen.String() },
	"Int":      func() *jen.Statement { return jen.Int() },
	"Float":    func() *jen.Statement { return jen.Float64() },
	"Boolean":  func() *jen.Statement { return jen.Bool() },
	"DateTime": func() *jen.Statement { return jen.Qual("time", "Time") },
}

// listas de Int viram []int64, que é o que os drivers devolvem
var listGoTypes = map[string]func() *jen.Statement{
	"String": func() *jen.Statement { return jen.Index().String() },
	"Int":    func() *jen.Statement { return jen.Index().Int64() },
	"Float":  func() *jen.Statement { return jen.Index().Float64() },
}

// genModels gera o pacote models: uma struct por model e um tipo por enum
func genModels(schema *parser.Schema, pkg string) (*jen.File, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment(generatedHeader)
	f.PackageComment("Package " + pkg + " contém as structs geradas a partir do schema.prisma.")

	for _, enum := range schema.Enums {
		genEnum(f, enum)
	}

	for _, model := range schema.Models {
		if err := genModelStruct(f, schema, model); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func genModelStruct(f *jen.File, schema *parser.Schema, model *parser.Model) error {
	name := GoName(model.Name)
	if model.Doc != "" {
		f.Comment(model.Doc)
	} else {
		f.Commentf("%s é o model %s (tabela %s)", name, model.Name, model.TableName())
	}

	var fieldErr error
	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		// escalares primeiro, relações no fim
		for _, field := range model.Fields {
			if field.IsRelation(schema) {
				continue
			}
			typ, err := goType(schema, field)
			if err != nil {
				fieldErr = fmt.Errorf("%s.%s: %w", model.Name, field.Name, err)
				return
			}
			stmt := g.Id(GoName(field.Name)).Add(typ).Tag(map[string]string{
				"json":   field.Name,
				"prisma": field.Name,
				"db":     field.ColumnName(),
			})
			if field.Doc != "" {
				stmt.Comment(field.Doc)
			}
		}
		for _, field := range model.Fields {
			if !field.IsRelation(schema) {
				continue
			}
			target := jen.Id(GoName(field.Type.Name))
			var typ *jen.Statement
			if field.Type.IsArray {
				typ = jen.Index().Add(target)
			} else {
				typ = jen.Op("*").Add(target)
			}
			g.Id(GoName(field.Name)).Add(typ).Tag(map[string]string{
				"json":   field.Name + ",omitempty",
				"prisma": field.Name,
				"db":     "-",
			})
		}
	})
	return fieldErr
}

// goType devolve o tipo Go de um campo escalar ou enum
func goType(schema *parser.Schema, field *parser.ModelField) (*jen.Statement, error) {
	t := field.Type
	if field.IsEnum(schema) {
		switch {
		case t.IsArray:
			return jen.Index().Id(GoName(t.Name)), nil
		case t.IsOptional:
			return jen.Op("*").Id(GoName(t.Name)), nil
		}
		return jen.Id(GoName(t.Name)), nil
	}

	if t.IsArray {
		list, ok := listGoTypes[t.Name]
		if !ok {
			return nil, fmt.Errorf("listas de %s não são suportadas", t.Name)
		}
		return list(), nil
	}
	scalar, ok := scalarGoTypes[t.Name]
	if !ok {
		return nil, fmt.Errorf("tipo %s não é suportado pelo gerador", t.Name)
	}
	if t.IsOptional {
		return jen.Op("*").Add(scalar()), nil
	}
	return scalar(), nil
}

// genEnum gera type X string e uma constante por valor
func genEnum(f *jen.File, enum *parser.Enum) {
	name := GoName(enum.Name)
	if enum.Doc != "" {
		f.Comment(enum.Doc)
	}
	f.Type().Id(name).String()
	f.Const().DefsFunc(func(g *jen.Group) {
		for _, v := range enum.Values {
			g.Id(name + GoName(v.Name)).Id(name).Op("=").Lit(v.Name)
		}
	})
}
