package db

import (
	"time"

	"github.com/carlosnayan/bemestar/builder"
	"github.com/carlosnayan/bemestar/internal/errors"
	"github.com/carlosnayan/bemestar/internal/textutil"
)

// applyHooks completa a metadata gerada com as regras do domínio que o
// schema não expressa
func applyHooks(models []*builder.Model) []*builder.Model {
	for _, m := range models {
		switch m.Name {
		case "Receita":
			for _, f := range m.Fields {
				if f.Name == "tags" || f.Name == "categoria" {
					f.Normalize = foldValue
				}
			}
		case "RegistroSono":
			m.BeforeWrite = checkSleepInterval
		}
	}
	return models
}

// foldValue normaliza tags e categorias, tanto na escrita quanto nos filtros
func foldValue(v interface{}) interface{} {
	switch v := v.(type) {
	case string:
		return textutil.Fold(v)
	case []string:
		return textutil.FoldAll(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = foldValue(item)
		}
		return out
	}
	return v
}

// checkSleepInterval recusa registros de sono que terminam antes de começar.
// Em updates o mapa já traz a linha inteira, então alterar só fim ou só
// início também é checado.
func checkSleepInterval(op string, data map[string]interface{}) error {
	inicio, okInicio := data["inicio"].(time.Time)
	fim, okFim := data["fim"].(time.Time)
	if !okInicio || !okFim {
		return nil
	}
	if fim.Before(inicio) {
		return errors.NewValidationError("fim do sono deve ser depois do início")
	}
	return nil
}
