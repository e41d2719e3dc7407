package builder

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/carlosnayan/bemestar/internal/errors"
)

// ValidationErrors representa erros de validação
type ValidationErrors struct {
	Errors []ValidationError
}

func (ve *ValidationErrors) Error() string {
	var messages []string
	for _, err := range ve.Errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Is faz errors.Is(err, errors.ErrValidation) reconhecer ValidationErrors
func (ve *ValidationErrors) Is(target error) bool {
	return stderrors.Is(errors.ErrValidation, target)
}

// ValidationError representa um erro de validação individual
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance monta o validator uma vez: nomes de campo vêm da tag
// prisma, Nullable é validado pelo valor que carrega e "hhmm" aceita
// horários de 00:00 a 23:59
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _ := parseTag(f.Tag.Get("prisma"))
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterCustomTypeFunc(nullableInner,
			Nullable[string]{}, Nullable[int]{}, Nullable[int64]{},
			Nullable[float64]{}, Nullable[bool]{}, Nullable[time.Time]{})
		_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return fl.Field().Kind() == reflect.String && isValidClock(fl.Field().String())
		})
	})
	return validate
}

// nullableInner devolve o valor de um Nullable, ou nil quando ele não
// foi definido ou grava NULL. Com omitempty o campo é ignorado.
func nullableInner(field reflect.Value) interface{} {
	n, ok := field.Interface().(nullableValue)
	if !ok {
		return nil
	}
	inner, _ := n.nullable()
	return inner
}

// ValidateStruct valida uma struct pelas tags validate (sintaxe do
// go-playground/validator). Campos opcionais usam omitempty.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("ValidateStruct espera uma struct, recebeu %s", v.Kind())
	}

	err := validatorInstance().Struct(v.Interface())
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{Field: fe.Field(), Message: ruleMessage(fe)})
	}
	return &ValidationErrors{Errors: errs}
}

// ruleMessage traduz a regra que falhou
func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "é obrigatório"
	case "min", "max":
		bound := "mínimo"
		if fe.Tag() == "max" {
			bound = "máximo"
		}
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("deve ter no %s %s caracteres", bound, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("deve ter no %s %s itens", bound, fe.Param())
		}
		return fmt.Sprintf("deve ser no %s %s", bound, fe.Param())
	case "oneof":
		return fmt.Sprintf("deve ser um de [%s]", fe.Param())
	case "hhmm":
		return "deve estar no formato HH:MM"
	case "email":
		return "deve ser um email válido"
	}
	if fe.Param() != "" {
		return fmt.Sprintf("falhou na regra %s=%s", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("falhou na regra %s", fe.Tag())
}

// isValidClock aceita "HH:MM" entre 00:00 e 23:59
func isValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return false
	}
	return h >= 0 && h < 24 && m >= 0 && m < 60
}
