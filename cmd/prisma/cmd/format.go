package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/carlosnayan/bemestar/cli"
	"github.com/carlosnayan/bemestar/internal/formatter"
	"github.com/carlosnayan/bemestar/internal/parser"
)

var formatCheckFlag bool

var formatCmd = &cli.Command{
	Name:  "format",
	Short: "Formata o schema.prisma",
	Long: `Reescreve o schema.prisma no formato canônico: colunas de nome, tipo e
atributos alinhadas, dois espaços de indentação. Comentários "//" são
descartados; comentários de documentação "///" são mantidos.`,
	Usage: "prisma format [--check]",
	Flags: []*cli.Flag{
		{
			Name:  "check",
			Usage: "Só verifica se o arquivo está formatado, sem gravar",
			Value: &formatCheckFlag,
		},
	},
	Run: runFormat,
}

func runFormat(args []string) error {
	start := time.Now()
	path := resolveSchemaPath()

	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("erro ao ler schema: %w", err)
	}
	schema, errs, err := parser.Parse(string(original))
	if err != nil {
		if len(errs) > 0 {
			printSchemaErrors(errs)
		}
		return fmt.Errorf("corrija os erros do schema antes de formatar")
	}

	formatted := formatter.FormatSchema(schema)
	if _, _, err := parser.Parse(formatted); err != nil {
		return fmt.Errorf("o schema formatado ficou inválido: %w", err)
	}

	if normalize(string(original)) == normalize(formatted) {
		printf("O schema em %s já está formatado\n", relPath(path))
		return nil
	}
	if formatCheckFlag {
		printf("%s não está formatado. Rode 'prisma format'.\n", relPath(path))
		return fmt.Errorf("schema não formatado")
	}

	if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("erro ao gravar schema: %w", err)
	}
	printf("%s formatado em %dms\n", relPath(path), time.Since(start).Milliseconds())
	return nil
}

// normalize ignora espaços no fim das linhas e linhas em branco nas pontas
func normalize(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
