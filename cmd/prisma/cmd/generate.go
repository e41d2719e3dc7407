package cmd

import (
	"fmt"
	"time"

	"github.com/carlosnayan/bemestar/cli"
	"github.com/carlosnayan/bemestar/internal/config"
	"github.com/carlosnayan/bemestar/internal/generator"
)

var (
	generateWatchFlag  bool
	generateModuleFlag string
)

var generateCmd = &cli.Command{
	Name:  "generate",
	Short: "Gera os models e a metadata do cliente a partir do schema",
	Long: `Gera, no diretório [generator].output do prisma.conf:
  - models/models.go com uma struct por model
  - metadata.go com a descrição de campos e relações usada pelo builder`,
	Usage: "prisma generate [--watch] [--module path]",
	Flags: []*cli.Flag{
		{
			Name:  "watch",
			Short: "w",
			Usage: "Gera de novo a cada alteração do schema",
			Value: &generateWatchFlag,
		},
		{
			Name:  "module",
			Usage: "Import path do diretório de saída (padrão: lido do go.mod)",
			Value: &generateModuleFlag,
		},
	},
	Run: runGenerate,
}

func runGenerate(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := generatorOptions(cfg)

	if !generateWatchFlag {
		return generateOnce(cfg.GetSchemaPath(), opts)
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := generateOnce(cfg.GetSchemaPath(), opts); err != nil {
		printLine(Warning(err.Error()))
	}
	printLine(Info(fmt.Sprintf("Observando %s (Ctrl+C para sair)", relPath(cfg.GetSchemaPath()))))
	return watchSchema(ctx, cfg.GetSchemaPath(), func() {
		printLine()
		if err := generateOnce(cfg.GetSchemaPath(), opts); err != nil {
			printLine(Warning(err.Error()))
		}
	})
}

func generatorOptions(cfg *config.Config) generator.Options {
	return generator.Options{
		Output:     cfg.Generator.Output,
		Package:    cfg.Generator.Package,
		ModulePath: generateModuleFlag,
	}
}

func generateOnce(path string, opts generator.Options) error {
	start := time.Now()
	schema, err := loadSchema(path)
	if err != nil {
		return fmt.Errorf("não é possível gerar o cliente: %w", err)
	}

	result, err := generator.Generate(schema, opts)
	if err != nil {
		return err
	}

	printf("Cliente gerado em %s (%d models) em %s\n", relPath(opts.Output), len(schema.Models),
		time.Since(start).Round(time.Millisecond))
	for _, f := range result.Files {
		printLine(Info("  " + relPath(f)))
	}
	return nil
}
