package generator

import (
	"strings"

	"github.com/carlosnayan/bemestar/internal/parser"
)

type UniqueConstraint struct {
	Fields       []string
	Name         string
	IsComposite  bool
	IsPrimaryKey bool
}

// Key é o nome da chave composta nos inputs únicos, ex: receitaId_ordem
func (c UniqueConstraint) Key() string {
	return strings.Join(c.Fields, "_")
}

func getUniqueConstraints(model *parser.Model) []UniqueConstraint {
	var constraints []UniqueConstraint

	for _, field := range model.Fields {
		if field.Attribute("id") != nil {
			constraints = append(constraints, UniqueConstraint{
				Fields:       []string{field.Name},
				IsPrimaryKey: true,
			})
		}
		if field.Attribute("unique") != nil {
			constraints = append(constraints, UniqueConstraint{
				Fields: []string{field.Name},
			})
		}
	}

	for _, attr := range model.Attributes {
		if attr.Name != "unique" && attr.Name != "id" {
			continue
		}
		fields, ok := attr.ListArg("fields", 0)
		if !ok || len(fields) == 0 {
			continue
		}
		constraint := UniqueConstraint{
			Fields:       fields,
			IsComposite:  len(fields) > 1,
			IsPrimaryKey: attr.Name == "id",
		}
		constraint.Name, _ = attr.StringArg("map", -1)
		constraints = append(constraints, constraint)
	}

	return constraints
}

// compositeUniques retorna só os @@unique de mais de um campo
func compositeUniques(model *parser.Model) [][]string {
	var sets [][]string
	for _, c := range getUniqueConstraints(model) {
		if c.IsComposite && !c.IsPrimaryKey {
			sets = append(sets, c.Fields)
		}
	}
	return sets
}
