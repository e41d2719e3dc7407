package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosnayan/bemestar/internal/errors"
)

type lembreteInput struct {
	Horario    string           `prisma:"horario" validate:"required,hhmm"`
	DiasSemana []int64          `prisma:"diasSemana" validate:"min=1,max=7,dive,min=0,max=6"`
	Tipo       string           `prisma:"tipo" validate:"oneof=CAFE ALMOCO JANTAR LANCHE"`
	Mensagem   Nullable[string] `prisma:"mensagem" validate:"omitempty,max=10"`
	Meta       *float64         `prisma:"meta" validate:"required,min=0"`
	Email      *string          `prisma:"email" validate:"omitempty,email"`
}

type lembreteUpdate struct {
	Ativo      *bool   `prisma:"ativo"`
	DiasSemana []int64 `prisma:"diasSemana" validate:"omitempty,min=1,max=7,dive,min=0,max=6"`
}

func validLembrete() lembreteInput {
	return lembreteInput{
		Horario:    "22:30",
		DiasSemana: []int64{1, 3, 5},
		Tipo:       "JANTAR",
		Meta:       Ptr(8.0),
	}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	out := map[string]string{}
	for _, e := range ve.Errors {
		out[e.Field] = e.Message
	}
	return out
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.NoError(t, ValidateStruct(validLembrete()))

	in := validLembrete()
	assert.NoError(t, ValidateStruct(&in))

	var nilPtr *lembreteInput
	assert.NoError(t, ValidateStruct(nilPtr))
}

func TestValidateStruct_Clock(t *testing.T) {
	for _, bad := range []string{"24:00", "7:30", "12:60", "ab:cd", "12h30"} {
		in := validLembrete()
		in.Horario = bad
		fields := validationFields(t, ValidateStruct(in))
		assert.Contains(t, fields, "horario", bad)
	}

	in := validLembrete()
	in.Horario = "00:00"
	assert.NoError(t, ValidateStruct(in))
}

func TestValidateStruct_Dive(t *testing.T) {
	in := validLembrete()
	in.DiasSemana = []int64{0, 7, 2}
	fields := validationFields(t, ValidateStruct(in))
	assert.Equal(t, map[string]string{"diasSemana[1]": "deve ser no máximo 6"}, fields)

	in.DiasSemana = nil
	fields = validationFields(t, ValidateStruct(in))
	assert.Equal(t, "deve ter no mínimo 1 itens", fields["diasSemana"])
}

func TestValidateStruct_OneOf(t *testing.T) {
	in := validLembrete()
	in.Tipo = "CEIA"
	fields := validationFields(t, ValidateStruct(in))
	assert.Equal(t, "deve ser um de [CAFE ALMOCO JANTAR LANCHE]", fields["tipo"])
}

func TestValidateStruct_Nullable(t *testing.T) {
	in := validLembrete()
	in.Mensagem = Null[string]()
	assert.NoError(t, ValidateStruct(in))

	in.Mensagem = Set("hora de dormir")
	fields := validationFields(t, ValidateStruct(in))
	assert.Contains(t, fields, "mensagem")
}

func TestValidateStruct_Pointers(t *testing.T) {
	in := validLembrete()
	in.Meta = nil
	fields := validationFields(t, ValidateStruct(in))
	assert.Equal(t, "é obrigatório", fields["meta"])

	in = validLembrete()
	in.Meta = Ptr(-1.5)
	in.Email = Ptr("sem-arroba")
	fields = validationFields(t, ValidateStruct(in))
	assert.Equal(t, "deve ser no mínimo 0", fields["meta"])
	assert.Equal(t, "deve ser um email válido", fields["email"])
}

func TestValidateStruct_IsValidationError(t *testing.T) {
	in := validLembrete()
	in.Horario = ""
	err := ValidateStruct(in)
	assert.ErrorIs(t, err, errors.ErrValidation)

	assert.Error(t, ValidateStruct(42))
}

func TestValidateStruct_Email(t *testing.T) {
	in := validLembrete()
	in.Email = Ptr("ana@exemplo.com")
	assert.NoError(t, ValidateStruct(in))

	for _, bad := range []string{"ana", "ana@", "Ana <ana@exemplo.com>"} {
		in.Email = Ptr(bad)
		fields := validationFields(t, ValidateStruct(in))
		assert.Equal(t, "deve ser um email válido", fields["email"], bad)
	}
}

func TestValidateStruct_UpdateLeavesUnsetListAlone(t *testing.T) {
	assert.NoError(t, ValidateStruct(lembreteUpdate{Ativo: Ptr(false)}))

	fields := validationFields(t, ValidateStruct(lembreteUpdate{DiasSemana: []int64{9}}))
	assert.Equal(t, "deve ser no máximo 6", fields["diasSemana[0]"])
}
