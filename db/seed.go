package db

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/db/inputs"
)

// SeedData é o conteúdo de um arquivo de seed. As seções seguem a ordem
// das dependências: quem tem FK vem depois do alvo.
type SeedData struct {
	Usuarios            []inputs.UsuarioCreateInput            `yaml:"usuarios"`
	Refeicoes           []inputs.RefeicaoCreateInput           `yaml:"refeicoes"`
	RegistrosRefeicao   []inputs.RegistroRefeicaoCreateInput   `yaml:"registrosRefeicao"`
	RegistrosHidratacao []inputs.RegistroHidratacaoCreateInput `yaml:"registrosHidratacao"`
	RegistrosSono       []inputs.RegistroSonoCreateInput       `yaml:"registrosSono"`
	LembretesSono       []inputs.LembreteSonoCreateInput       `yaml:"lembretesSono"`
	Receitas            []inputs.ReceitaCreateInput            `yaml:"receitas"`
	Ingredientes        []inputs.IngredienteCreateInput        `yaml:"ingredientes"`
	PassosReceita       []inputs.PassoReceitaCreateInput       `yaml:"passosReceita"`
	ReceitasFavoritas   []inputs.ReceitaFavoritaCreateInput    `yaml:"receitasFavoritas"`
}

// SeedCount é quantos registros de um model o seed inseriu
type SeedCount struct {
	Model string
	Count int64
}

// ParseSeed decodifica um seed YAML. Chaves desconhecidas são erro.
func ParseSeed(r io.Reader) (*SeedData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data SeedData
	if err := dec.Decode(&data); err != nil && err != io.EOF {
		return nil, fmt.Errorf("seed inválido: %w", err)
	}
	return &data, nil
}

// Seed carrega o arquivo em path e insere tudo numa única transação
func Seed(ctx context.Context, client *Client, path string) ([]SeedCount, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir seed: %w", err)
	}
	defer f.Close()

	data, err := ParseSeed(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data.Apply(ctx, client)
}

// Apply insere os dados numa única transação; qualquer falha desfaz tudo
func (s *SeedData) Apply(ctx context.Context, client *Client) ([]SeedCount, error) {
	var counts []SeedCount
	err := client.Transaction(ctx, func(tx *Client) error {
		counts = counts[:0]
		steps := []struct {
			model string
			run   func() (int64, error)
		}{
			{"Usuario", func() (int64, error) { return createAll(ctx, tx.Usuario, s.Usuarios) }},
			{"Refeicao", func() (int64, error) { return createAll(ctx, tx.Refeicao, s.Refeicoes) }},
			{"RegistroRefeicao", func() (int64, error) { return createAll(ctx, tx.RegistroRefeicao, s.RegistrosRefeicao) }},
			{"RegistroHidratacao", func() (int64, error) { return createAll(ctx, tx.RegistroHidratacao, s.RegistrosHidratacao) }},
			{"RegistroSono", func() (int64, error) { return createAll(ctx, tx.RegistroSono, s.RegistrosSono) }},
			{"LembreteSono", func() (int64, error) { return createAll(ctx, tx.LembreteSono, s.LembretesSono) }},
			{"Receita", func() (int64, error) { return createAll(ctx, tx.Receita, s.Receitas) }},
			{"Ingrediente", func() (int64, error) { return createAll(ctx, tx.Ingrediente, s.Ingredientes) }},
			{"PassoReceita", func() (int64, error) { return createAll(ctx, tx.PassoReceita, s.PassosReceita) }},
			{"ReceitaFavorita", func() (int64, error) { return createAll(ctx, tx.ReceitaFavorita, s.ReceitasFavoritas) }},
		}
		for _, step := range steps {
			n, err := step.run()
			if err != nil {
				return fmt.Errorf("seed de %s: %w", step.model, err)
			}
			if n > 0 {
				counts = append(counts, SeedCount{Model: step.model, Count: n})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

type batchCreator[C any] interface {
	CreateMany(ctx context.Context, data []C, opts ...builder.CreateManyOption) (builder.BatchPayload, error)
}

func createAll[C any](ctx context.Context, d batchCreator[C], rows []C) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	payload, err := d.CreateMany(ctx, rows)
	return payload.Count, err
}
