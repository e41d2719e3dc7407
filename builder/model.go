package builder

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// DefaultKind indica como o cliente preenche um campo omitido no create
type DefaultKind int

const (
	DefaultNone DefaultKind = iota
	DefaultUUID
	DefaultNow
	DefaultValue
)

// Field descreve uma coluna escalar de um model
type Field struct {
	Name      string
	Column    string
	Type      string // String, Int, Float, Boolean, DateTime
	List      bool
	Optional  bool
	ID        bool
	Unique    bool
	UpdatedAt bool

	Default      DefaultKind
	DefaultValue interface{}

	// Normalize, quando definido, é aplicado aos valores gravados e aos
	// valores usados em filtros sobre o campo
	Normalize func(interface{}) interface{}

	index []int
}

// Relation descreve um campo de relação. Fields são os campos locais e
// References os campos correspondentes no model alvo, par a par.
type Relation struct {
	Name       string
	Model      string
	List       bool
	Optional   bool
	Fields     []string
	References []string
	OnDelete   string
	// Owner indica que a FK está neste model
	Owner bool

	target *Model
	index  []int
}

// Target retorna o model alvo, resolvido por NewSchema
func (r *Relation) Target() *Model {
	return r.target
}

// Model descreve uma tabela e a struct Go que a representa
type Model struct {
	Name       string
	Table      string
	Fields     []*Field
	Relations  []*Relation
	UniqueSets [][]string
	Type       reflect.Type

	// BeforeWrite roda antes de INSERT e UPDATE com os dados já convertidos
	// (nome do campo -> valor). Pode alterar o mapa ou recusar a escrita.
	// Em updates roda uma vez por linha afetada, com os valores atuais
	// sobrepostos pelas alterações.
	BeforeWrite func(op string, data map[string]interface{}) error

	fields     map[string]*Field
	relations  map[string]*Relation
	uniqueSets [][]string
	dependents []string
}

// Field retorna o campo escalar pelo nome
func (m *Model) Field(name string) *Field {
	return m.fields[name]
}

// Relation retorna a relação pelo nome
func (m *Model) Relation(name string) *Relation {
	return m.relations[name]
}

// IDFields retorna os campos da chave primária
func (m *Model) IDFields() []*Field {
	var ids []*Field
	for _, f := range m.Fields {
		if f.ID {
			ids = append(ids, f)
		}
	}
	return ids
}

// AllUniqueSets retorna @id, @unique e @@unique, nessa ordem
func (m *Model) AllUniqueSets() [][]string {
	return m.uniqueSets
}

// coversUnique diz se o where fixa, por igualdade, todos os campos de
// algum conjunto único
func (m *Model) coversUnique(w Where) bool {
	for _, set := range m.uniqueSets {
		covered := true
		for _, name := range set {
			if !isEquality(w[name]) {
				covered = false
				break
			}
		}
		if covered {
			return true
		}
	}
	return false
}

func isEquality(v interface{}) bool {
	switch v := v.(type) {
	case nil, []WhereOperator, Where, []Where:
		return false
	case WhereOperator:
		return v.op == "=" && v.value != nil
	}
	return !isNilPointer(v)
}

// Schema reúne os models e resolve as relações entre eles
type Schema struct {
	models map[string]*Model
	order  []*Model
}

// NewSchema valida os models, liga os campos às structs Go pela tag
// `prisma` e resolve os alvos das relações
func NewSchema(models ...*Model) (*Schema, error) {
	s := &Schema{models: make(map[string]*Model, len(models))}
	for _, m := range models {
		if _, dup := s.models[m.Name]; dup {
			return nil, fmt.Errorf("model '%s' declarado duas vezes", m.Name)
		}
		if err := m.init(); err != nil {
			return nil, err
		}
		s.models[m.Name] = m
		s.order = append(s.order, m)
	}

	for _, m := range s.order {
		for _, rel := range m.Relations {
			target, ok := s.models[rel.Model]
			if !ok {
				return nil, fmt.Errorf("relação %s.%s aponta para model desconhecido '%s'", m.Name, rel.Name, rel.Model)
			}
			if len(rel.Fields) == 0 || len(rel.Fields) != len(rel.References) {
				return nil, fmt.Errorf("relação %s.%s sem pares fields/references", m.Name, rel.Name)
			}
			for _, f := range rel.Fields {
				if m.fields[f] == nil {
					return nil, fmt.Errorf("relação %s.%s: campo local '%s' não existe", m.Name, rel.Name, f)
				}
			}
			for _, f := range rel.References {
				if target.fields[f] == nil {
					return nil, fmt.Errorf("relação %s.%s: campo '%s' não existe em %s", m.Name, rel.Name, f, target.Name)
				}
			}
			rel.target = target

			want := reflect.PointerTo(target.Type)
			if rel.List {
				want = reflect.SliceOf(target.Type)
			}
			if got := m.Type.FieldByIndex(rel.index).Type; got != want {
				return nil, fmt.Errorf("relação %s.%s: campo Go é %s, esperava %s", m.Name, rel.Name, got, want)
			}
		}
	}

	// uma escrita em X invalida também o cache de quem tem FK para X,
	// por causa de cascade e SetNull
	for _, m := range s.order {
		seen := map[string]bool{m.Table: true}
		var visit func(*Model)
		visit = func(parent *Model) {
			for _, child := range s.order {
				for _, rel := range child.Relations {
					if rel.Owner && rel.target == parent && !seen[child.Table] {
						seen[child.Table] = true
						visit(child)
					}
				}
			}
		}
		visit(m)
		m.dependents = m.dependents[:0]
		for table := range seen {
			m.dependents = append(m.dependents, table)
		}
		sort.Strings(m.dependents)
	}
	return s, nil
}

// Model retorna o model pelo nome
func (s *Schema) Model(name string) *Model {
	return s.models[name]
}

// Models retorna os models na ordem de declaração
func (s *Schema) Models() []*Model {
	return s.order
}

func (m *Model) init() error {
	if m.Type == nil || m.Type.Kind() != reflect.Struct {
		return fmt.Errorf("model '%s' sem struct Go associada", m.Name)
	}

	tags := make(map[string][]int, m.Type.NumField())
	for i := 0; i < m.Type.NumField(); i++ {
		sf := m.Type.Field(i)
		name, _ := parseTag(sf.Tag.Get("prisma"))
		if name == "" || name == "-" {
			continue
		}
		tags[name] = sf.Index
	}

	m.fields = make(map[string]*Field, len(m.Fields))
	for _, f := range m.Fields {
		idx, ok := tags[f.Name]
		if !ok {
			return fmt.Errorf("model '%s': struct %s não tem campo com tag prisma:\"%s\"", m.Name, m.Type.Name(), f.Name)
		}
		f.index = idx
		if f.Column == "" {
			f.Column = f.Name
		}
		m.fields[f.Name] = f
	}

	m.relations = make(map[string]*Relation, len(m.Relations))
	for _, r := range m.Relations {
		idx, ok := tags[r.Name]
		if !ok {
			return fmt.Errorf("model '%s': struct %s não tem campo para a relação '%s'", m.Name, m.Type.Name(), r.Name)
		}
		if m.fields[r.Name] != nil {
			return fmt.Errorf("model '%s': '%s' é campo e relação ao mesmo tempo", m.Name, r.Name)
		}
		r.index = idx
		m.relations[r.Name] = r
	}

	m.uniqueSets = nil
	var ids []string
	for _, f := range m.IDFields() {
		ids = append(ids, f.Name)
	}
	if len(ids) == 0 {
		return fmt.Errorf("model '%s' não tem campo @id", m.Name)
	}
	m.uniqueSets = append(m.uniqueSets, ids)
	for _, f := range m.Fields {
		if f.Unique {
			m.uniqueSets = append(m.uniqueSets, []string{f.Name})
		}
	}
	for _, set := range m.UniqueSets {
		for _, name := range set {
			if m.fields[name] == nil {
				return fmt.Errorf("model '%s': @@unique com campo desconhecido '%s'", m.Name, name)
			}
		}
		m.uniqueSets = append(m.uniqueSets, set)
	}
	return nil
}

// parseTag separa `nome,opcao1,opcao2`
func parseTag(tag string) (string, map[string]bool) {
	if tag == "" {
		return "", nil
	}
	parts := strings.Split(tag, ",")
	opts := make(map[string]bool, len(parts)-1)
	for _, p := range parts[1:] {
		opts[strings.TrimSpace(p)] = true
	}
	return strings.TrimSpace(parts[0]), opts
}
