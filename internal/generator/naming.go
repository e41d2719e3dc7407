package generator

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// siglas que o Go escreve em maiúsculas
var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uuid": "UUID",
	"api":  "API",
	"json": "JSON",
	"html": "HTML",
	"http": "HTTP",
	"sql":  "SQL",
}

// GoName converte um nome do schema em identificador Go exportado:
// usuarioId -> UsuarioID, fotoUrl -> FotoURL, registro_sono -> RegistroSono
func GoName(name string) string {
	// CAFE_DA_MANHA, ID: tudo maiúsculo separaria letra por letra
	if strings.ToUpper(name) == name {
		name = strings.ToLower(name)
	}
	var b strings.Builder
	for _, word := range strings.Split(inflect.Underscore(name), "_") {
		if word == "" {
			continue
		}
		if upper, ok := initialisms[word]; ok {
			b.WriteString(upper)
			continue
		}
		b.WriteString(inflect.Capitalize(word))
	}
	return b.String()
}
