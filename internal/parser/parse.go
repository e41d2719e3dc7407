package parser

import (
	"fmt"
	"os"
	"strings"
)

// ParseFile parseia um arquivo schema.prisma e retorna a AST
func ParseFile(filePath string) (*Schema, []string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao ler arquivo: %w", err)
	}

	return Parse(string(data))
}

// Parse parseia uma string contendo o schema.prisma e retorna a AST.
// Erros de sintaxe e de validação são devolvidos juntos, já com a linha.
func Parse(input string) (*Schema, []string, error) {
	p := NewParser(NewLexer(input))
	schema := p.ParseSchema()

	errs := p.Errors()
	// validar uma AST incompleta só geraria ruído
	if len(errs) == 0 {
		errs = Validate(schema)
	}

	if len(errs) > 0 {
		return schema, errs, &SchemaError{Errors: errs}
	}
	return schema, nil, nil
}

// ParseAndValidate parseia e valida um schema, devolvendo um único erro
func ParseAndValidate(input string) (*Schema, error) {
	schema, _, err := Parse(input)
	return schema, err
}

// ParseAndValidateFile é ParseAndValidate para um arquivo
func ParseAndValidateFile(filePath string) (*Schema, error) {
	schema, _, err := ParseFile(filePath)
	return schema, err
}

// SchemaError agrupa os erros de um schema inválido
type SchemaError struct {
	Errors []string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema inválido (%d erro(s)):\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err)
	}
	return strings.TrimRight(b.String(), "\n")
}
