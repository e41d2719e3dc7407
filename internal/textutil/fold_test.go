package textutil

import (
	"reflect"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Café da Manhã", "cafe da manha"},
		{"  SEM   GLÚTEN ", "sem gluten"},
		{"Pão de Açúcar", "pao de acucar"},
		{"vegano", "vegano"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldAll(t *testing.T) {
	got := FoldAll([]string{"Doce", "doce", " ", "Rápido"})
	want := []string{"doce", "rapido"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FoldAll() = %v, want %v", got, want)
	}

	if FoldAll(nil) != nil {
		t.Error("FoldAll(nil) should stay nil")
	}
}
