package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/carlosnayan/bemestar/cli"
	"github.com/carlosnayan/bemestar/internal/parser"
)

var validateWatchFlag bool

// watchDebounce agrupa as várias escritas que um editor faz ao salvar
var watchDebounce = 200 * time.Millisecond

var validateCmd = &cli.Command{
	Name:  "validate",
	Short: "Valida o schema.prisma",
	Long: `Valida a sintaxe e a consistência do schema.prisma: tipos, relações,
atributos e defaults. Com --watch, valida de novo a cada alteração do arquivo.`,
	Usage: "prisma validate [--watch]",
	Flags: []*cli.Flag{
		{
			Name:  "watch",
			Short: "w",
			Usage: "Fica observando o arquivo e revalida a cada alteração",
			Value: &validateWatchFlag,
		},
	},
	Run: runValidate,
}

func runValidate(args []string) error {
	path := resolveSchemaPath()
	if !validateWatchFlag {
		return validateOnce(path)
	}

	ctx, cancel := commandContext()
	defer cancel()

	// no modo watch um schema inválido não encerra o comando
	if err := validateOnce(path); err != nil {
		printLine(Warning(err.Error()))
	}
	printLine(Info(fmt.Sprintf("Observando %s (Ctrl+C para sair)", relPath(path))))

	return watchSchema(ctx, path, func() {
		printLine()
		if err := validateOnce(path); err != nil {
			printLine(Warning(err.Error()))
		}
	})
}

func validateOnce(path string) error {
	printf("Schema carregado de %s\n\n", relPath(path))

	schema, errs, err := parser.ParseFile(path)
	if err != nil {
		if len(errs) > 0 {
			printSchemaErrors(errs)
			return fmt.Errorf("schema inválido")
		}
		return err
	}

	printf("O schema em %s é válido (%d models, %d enums)\n", relPath(path), len(schema.Models), len(schema.Enums))
	return nil
}

// watchSchema chama onChange depois de cada alteração em path, até ctx
// terminar. Observa o diretório porque editores costumam salvar com rename.
func watchSchema(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("erro ao criar watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("erro ao observar %s: %w", filepath.Dir(abs), err)
	}

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			trigger = timer.C

		case <-trigger:
			trigger = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printLine(Warning(fmt.Sprintf("erro no watcher: %v", err)))
		}
	}
}
