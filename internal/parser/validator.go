package parser

import (
	"fmt"
)

// Validator valida um schema
type Validator struct {
	schema *Schema
	errors []string
}

// Validate valida o schema completo e devolve os erros com a linha de origem
func Validate(schema *Schema) []string {
	v := &Validator{
		schema: schema,
		errors: []string{},
	}

	v.validateSchema()
	return v.errors
}

func (v *Validator) errorf(line int, format string, args ...interface{}) {
	v.errors = append(v.errors, fmt.Sprintf("linha %d: %s", line, fmt.Sprintf(format, args...)))
}

var validProviders = map[string]bool{
	"postgresql": true,
	"mysql":      true,
	"sqlite":     true,
}

var validReferentialActions = map[string]bool{
	"Cascade":    true,
	"Restrict":   true,
	"NoAction":   true,
	"SetNull":    true,
	"SetDefault": true,
}

// validateSchema valida o schema completo
func (v *Validator) validateSchema() {
	for _, ds := range v.schema.Datasources {
		v.validateDatasource(ds)
	}
	for _, gen := range v.schema.Generators {
		if gen.Value("provider") == nil {
			v.errorf(gen.Line, "generator '%s' deve ter um campo 'provider'", gen.Name)
		}
	}

	// models e enums dividem o mesmo espaço de nomes
	names := make(map[string]int)
	for _, model := range v.schema.Models {
		if line, dup := names[model.Name]; dup {
			v.errorf(model.Line, "nome '%s' já declarado na linha %d", model.Name, line)
		}
		names[model.Name] = model.Line
	}
	for _, enum := range v.schema.Enums {
		if line, dup := names[enum.Name]; dup {
			v.errorf(enum.Line, "nome '%s' já declarado na linha %d", enum.Name, line)
		}
		names[enum.Name] = enum.Line
		v.validateEnum(enum)
	}

	tables := make(map[string]string)
	for _, model := range v.schema.Models {
		v.validateModel(model)
		if other, dup := tables[model.TableName()]; dup {
			v.errorf(model.Line, "models '%s' e '%s' usam a mesma tabela '%s'", other, model.Name, model.TableName())
		}
		tables[model.TableName()] = model.Name
	}

	v.validateRelationSides()
}

// validateDatasource valida um datasource
func (v *Validator) validateDatasource(ds *Datasource) {
	provider, ok := ds.Value("provider").(string)
	if !ok {
		v.errorf(ds.Line, "datasource '%s' deve ter um campo 'provider'", ds.Name)
	} else if !validProviders[provider] {
		v.errorf(ds.Line, "provider inválido no datasource '%s': %s", ds.Name, provider)
	}

	switch url := ds.Value("url").(type) {
	case string:
	case *FunctionCall:
		if url.Name != "env" || len(url.Args) != 1 {
			v.errorf(ds.Line, "url do datasource '%s' deve ser uma string ou env(\"VAR\")", ds.Name)
		}
	default:
		v.errorf(ds.Line, "datasource '%s' deve ter um campo 'url'", ds.Name)
	}
}

// validateModel valida um model
func (v *Validator) validateModel(model *Model) {
	fieldNames := make(map[string]bool)
	columns := make(map[string]string)

	for _, field := range model.Fields {
		if fieldNames[field.Name] {
			v.errorf(field.Line, "campo '%s' duplicado no model '%s'", field.Name, model.Name)
		}
		fieldNames[field.Name] = true

		if !v.validateFieldType(field, model) {
			continue
		}

		if !field.IsRelation(v.schema) {
			col := field.ColumnName()
			if other, dup := columns[col]; dup {
				v.errorf(field.Line, "campos '%s' e '%s' usam a mesma coluna '%s'", other, field.Name, col)
			}
			columns[col] = field.Name
		}

		for _, attr := range field.Attributes {
			v.validateFieldAttribute(attr, field, model)
		}
	}

	if len(model.IDFields()) == 0 {
		v.errorf(model.Line, "model '%s' não tem @id nem @@id", model.Name)
	}

	for _, attr := range model.Attributes {
		v.validateModelAttribute(attr, model)
	}
}

// validateFieldType confere se o tipo é escalar, enum ou model conhecido
func (v *Validator) validateFieldType(field *ModelField, model *Model) bool {
	t := field.Type
	if t == nil || t.Name == "" {
		v.errorf(field.Line, "campo '%s' no model '%s' não tem tipo", field.Name, model.Name)
		return false
	}
	if ScalarTypes[t.Name] || field.IsEnum(v.schema) {
		return true
	}
	if field.IsRelation(v.schema) {
		if t.IsArray && t.IsOptional {
			v.errorf(field.Line, "relação '%s' não pode ser lista opcional", field.Name)
		}
		return true
	}
	v.errorf(field.Line, "tipo desconhecido '%s' no campo '%s' do model '%s'", t.Name, field.Name, model.Name)
	return false
}

// validateFieldAttribute valida um atributo de campo
func (v *Validator) validateFieldAttribute(attr *Attribute, field *ModelField, model *Model) {
	switch attr.Name {
	case "id":
		if field.Type.IsOptional || field.Type.IsArray {
			v.errorf(attr.Line, "@id no campo '%s' não pode ser opcional nem lista", field.Name)
		}
	case "default":
		if len(attr.Arguments) == 0 {
			v.errorf(attr.Line, "@default no campo '%s' do model '%s' deve ter um valor", field.Name, model.Name)
			return
		}
		v.validateDefault(attr, field)
	case "updatedAt":
		if field.Type.Name != "DateTime" {
			v.errorf(attr.Line, "@updatedAt só pode ser usado em campos DateTime ('%s')", field.Name)
		}
	case "map":
		if _, ok := attr.StringArg("name", 0); !ok {
			v.errorf(attr.Line, "@map no campo '%s' exige um nome entre aspas", field.Name)
		}
	case "relation":
		v.validateRelation(attr, field, model)
	case "unique", "ignore":
	default:
		if len(attr.Name) > 3 && attr.Name[:3] == "db." {
			return
		}
		v.errorf(attr.Line, "atributo desconhecido @%s no campo '%s'", attr.Name, field.Name)
	}
}

// validateDefault confere o tipo do valor de @default
func (v *Validator) validateDefault(attr *Attribute, field *ModelField) {
	value := attr.Arguments[0].Value
	typeName := field.Type.Name

	if call, ok := value.(*FunctionCall); ok {
		valid := map[string]map[string]bool{
			"uuid":          {"String": true},
			"cuid":          {"String": true},
			"now":           {"DateTime": true},
			"autoincrement": {"Int": true, "BigInt": true},
		}
		types, known := valid[call.Name]
		if !known {
			v.errorf(attr.Line, "função desconhecida %s() em @default", call.Name)
		} else if !types[typeName] {
			v.errorf(attr.Line, "%s() não pode ser default de um campo %s", call.Name, typeName)
		}
		return
	}

	if field.Type.IsArray {
		if _, ok := value.([]interface{}); !ok {
			v.errorf(attr.Line, "default do campo lista '%s' deve ser uma lista", field.Name)
		}
		return
	}

	ok := false
	switch typeName {
	case "String":
		_, ok = value.(string)
	case "Int", "BigInt":
		_, ok = value.(int64)
	case "Float", "Decimal":
		switch value.(type) {
		case int64, float64:
			ok = true
		}
	case "Boolean":
		_, ok = value.(bool)
	default:
		// enum: o valor é o identificador
		if enum := v.schema.Enum(typeName); enum != nil {
			if s, isStr := value.(string); isStr {
				for _, ev := range enum.Values {
					ok = ok || ev.Name == s
				}
			}
		}
	}
	if !ok {
		v.errorf(attr.Line, "valor default %v incompatível com o tipo %s do campo '%s'", value, typeName, field.Name)
	}
}

// validateRelation valida @relation: campos locais, referências e aridade
func (v *Validator) validateRelation(attr *Attribute, field *ModelField, model *Model) {
	target := v.schema.Model(field.Type.Name)
	if target == nil {
		v.errorf(attr.Line, "@relation no campo '%s' exige um model como tipo", field.Name)
		return
	}

	rel := field.Relation()
	if (len(rel.Fields) > 0) != (len(rel.References) > 0) {
		v.errorf(attr.Line, "@relation no campo '%s' do model '%s' deve ter ambos 'fields' e 'references' ou nenhum", field.Name, model.Name)
		return
	}
	if len(rel.Fields) != len(rel.References) {
		v.errorf(attr.Line, "@relation no campo '%s' do model '%s' deve ter o mesmo número de 'fields' e 'references'", field.Name, model.Name)
	}

	for _, name := range rel.Fields {
		local := model.Field(name)
		if local == nil {
			v.errorf(attr.Line, "@relation do campo '%s' referencia campo local inexistente '%s'", field.Name, name)
			continue
		}
		if local.IsRelation(v.schema) {
			v.errorf(attr.Line, "@relation do campo '%s': '%s' deve ser um campo escalar", field.Name, name)
		}
		if !field.Type.IsOptional && local.Type.IsOptional {
			v.errorf(attr.Line, "relação obrigatória '%s' usa campo opcional '%s'", field.Name, name)
		}
	}
	for _, name := range rel.References {
		if target.Field(name) == nil {
			v.errorf(attr.Line, "@relation do campo '%s' referencia '%s.%s', que não existe", field.Name, target.Name, name)
		}
	}

	if rel.OnDelete != "" {
		if !validReferentialActions[rel.OnDelete] {
			v.errorf(attr.Line, "onDelete inválido '%s' no campo '%s'", rel.OnDelete, field.Name)
		}
		if rel.OnDelete == "SetNull" {
			for _, name := range rel.Fields {
				if local := model.Field(name); local != nil && !local.Type.IsOptional {
					v.errorf(attr.Line, "onDelete: SetNull exige que '%s' seja opcional", name)
				}
			}
		}
	}
}

// validateModelAttribute valida um atributo de model
func (v *Validator) validateModelAttribute(attr *Attribute, model *Model) {
	switch attr.Name {
	case "id", "unique", "index":
		fields, ok := attr.ListArg("fields", 0)
		if !ok || len(fields) == 0 {
			v.errorf(attr.Line, "@@%s no model '%s' exige uma lista de campos", attr.Name, model.Name)
			return
		}
		for _, name := range fields {
			field := model.Field(name)
			if field == nil {
				v.errorf(attr.Line, "@@%s no model '%s' referencia campo inexistente '%s'", attr.Name, model.Name, name)
			} else if field.IsRelation(v.schema) {
				v.errorf(attr.Line, "@@%s no model '%s' não aceita o campo de relação '%s'", attr.Name, model.Name, name)
			}
		}
	case "map":
		if _, ok := attr.StringArg("name", 0); !ok {
			v.errorf(attr.Line, "@@map no model '%s' exige um nome entre aspas", model.Name)
		}
	case "ignore":
	default:
		v.errorf(attr.Line, "atributo desconhecido @@%s no model '%s'", attr.Name, model.Name)
	}
}

// validateEnum valida um enum
func (v *Validator) validateEnum(enum *Enum) {
	if len(enum.Values) == 0 {
		v.errorf(enum.Line, "enum '%s' não tem valores", enum.Name)
	}

	valueNames := make(map[string]bool)
	for _, value := range enum.Values {
		if valueNames[value.Name] {
			v.errorf(enum.Line, "valor '%s' duplicado no enum '%s'", value.Name, enum.Name)
		}
		valueNames[value.Name] = true
	}
}

// validateRelationSides exige um lado oposto para cada relação de lista,
// e que o lado com @relation(fields) exista em toda relação 1-N
func (v *Validator) validateRelationSides() {
	for _, model := range v.schema.Models {
		for _, field := range model.Fields {
			if !field.IsRelation(v.schema) {
				continue
			}
			target := v.schema.Model(field.Type.Name)
			opposite := v.schema.OppositeField(model, field)

			if opposite == nil {
				v.errorf(field.Line, "relação '%s.%s' não tem o lado oposto em '%s'", model.Name, field.Name, target.Name)
				continue
			}

			owns := len(field.Relation().Fields) > 0
			otherOwns := len(opposite.Relation().Fields) > 0
			switch {
			case field.Type.IsArray && opposite.Type.IsArray:
				v.errorf(field.Line, "relação muitos-para-muitos implícita '%s.%s' não é suportada; use um model de junção", model.Name, field.Name)
			case owns && otherOwns:
				v.errorf(field.Line, "apenas um lado da relação '%s.%s' pode declarar fields/references", model.Name, field.Name)
			case !owns && !otherOwns:
				v.errorf(field.Line, "relação '%s.%s' precisa de @relation(fields: [...], references: [...]) em um dos lados", model.Name, field.Name)
			case field.Type.IsArray && owns:
				v.errorf(field.Line, "o lado lista '%s.%s' não pode declarar fields/references", model.Name, field.Name)
			}
		}
	}
}

