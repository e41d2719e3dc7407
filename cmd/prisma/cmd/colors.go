package cmd

import (
	"os"
	"runtime"
)

// Códigos ANSI
const (
	Reset = "\033[0m"
	Gray  = "\033[90m"
	Cyan  = "\033[36m"
	Red   = "\033[31m"
	Green = "\033[32m"
)

// colorsEnabled: -1 ainda não verificado, 0 não, 1 sim
var colorsEnabled = -1

// supportsColor respeita NO_COLOR e TERM=dumb e só colore quando a saída
// é o terminal
func supportsColor() bool {
	if colorsEnabled != -1 {
		return colorsEnabled == 1
	}
	colorsEnabled = 0

	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if out != os.Stdout {
		return false
	}
	if runtime.GOOS == "windows" && os.Getenv("TERM") == "" {
		colorsEnabled = 1
		return true
	}

	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		colorsEnabled = 1
	}
	return colorsEnabled == 1
}

func colorize(color, text string) string {
	if !supportsColor() {
		return text
	}
	return color + text + Reset
}

// Info é texto secundário, em cinza
func Info(text string) string { return colorize(Gray, text) }

// Warning destaca erros e avisos em vermelho
func Warning(text string) string { return colorize(Red, text) }

// Success é a mensagem final de um comando bem-sucedido
func Success(text string) string { return colorize(Green, text) }

// MigrationName destaca nomes de migrations
func MigrationName(text string) string { return colorize(Cyan, text) }
