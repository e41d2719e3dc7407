// Package generator gera, a partir do schema.prisma, as structs dos models
// e a metadata que o builder usa para montar as queries.
package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"github.com/carlosnayan/bemestar/internal/parser"
)

const generatedHeader = "Code generated by prisma generate. DO NOT EDIT."

// Options controla onde e com que pacote o código é gerado
type Options struct {
	// Output é o diretório do pacote do cliente, ex: ./db
	Output string
	// Package é o nome do pacote do cliente; vazio usa o nome do diretório
	Package string
	// ModulePath força o import path de Output em vez de ler o go.mod
	ModulePath string
}

// Result lista os arquivos escritos
type Result struct {
	Files []string
}

// Generate escreve <output>/models/models.go e <output>/metadata.go
func Generate(schema *parser.Schema, opts Options) (*Result, error) {
	if opts.Output == "" {
		return nil, fmt.Errorf("output não definido")
	}
	pkg := opts.Package
	if pkg == "" {
		pkg = filepath.Base(filepath.Clean(opts.Output))
	}

	importPath := opts.ModulePath
	if importPath == "" {
		module, root, err := detectUserModule(opts.Output)
		if err != nil {
			return nil, fmt.Errorf("failed to detect user module: %w", err)
		}
		importPath, err = calculateImportPath(module, root, opts.Output)
		if err != nil {
			return nil, err
		}
	}
	modelsPath := importPath + "/models"

	models, err := genModels(schema, "models")
	if err != nil {
		return nil, err
	}
	metadata, err := genMetadata(schema, pkg, modelsPath)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, out := range []struct {
		path string
		file *jen.File
	}{
		{filepath.Join(opts.Output, "models", "models.go"), models},
		{filepath.Join(opts.Output, "metadata.go"), metadata},
	} {
		if err := os.MkdirAll(filepath.Dir(out.path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		if err := out.file.Save(out.path); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", out.path, err)
		}
		result.Files = append(result.Files, out.path)
	}
	return result, nil
}
