package cache

import (
	"testing"
	"time"
)

type registro struct {
	ID           string
	QuantidadeMl int
	RegistradoEm time.Time
	Observacoes  *string
}

func TestResultCache_RoundTrip(t *testing.T) {
	c := New(10, time.Minute)

	obs := "depois do treino"
	now := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	in := []registro{{ID: "r1", QuantidadeMl: 300, RegistradoEm: now, Observacoes: &obs}}

	key, err := Key(`SELECT * FROM "registros_hidratacao" WHERE "usuario_id" = $1`, []interface{}{"u1"})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if err := c.Set(key, []string{"registros_hidratacao"}, in); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out []registro
	if !c.Get(key, &out) {
		t.Fatal("expected a cache hit")
	}
	if len(out) != 1 || out[0].QuantidadeMl != 300 || *out[0].Observacoes != obs || !out[0].RegistradoEm.Equal(now) {
		t.Errorf("decoded = %+v", out)
	}

	size, hits, misses := c.Stats()
	if size != 1 || hits != 1 || misses != 0 {
		t.Errorf("Stats() = %d, %d, %d", size, hits, misses)
	}
}

func TestResultCache_KeyDependsOnArgs(t *testing.T) {
	a, _ := Key("SELECT 1", []interface{}{"u1", 10})
	b, _ := Key("SELECT 1", []interface{}{"u1", 11})
	c, _ := Key("SELECT 1", []interface{}{"u1", 10})

	if a == b {
		t.Error("different args must produce different keys")
	}
	if a != c {
		t.Error("same query and args must produce the same key")
	}
}

func TestResultCache_InvalidateByTable(t *testing.T) {
	c := New(10, time.Minute)

	_ = c.Set("receitas", []string{"receitas"}, 1)
	_ = c.Set("receitas+ingredientes", []string{"receitas", "ingredientes"}, 2)
	_ = c.Set("usuarios", []string{"usuarios"}, 3)

	c.Invalidate("ingredientes")

	var v int
	if c.Get("receitas+ingredientes", &v) {
		t.Error("entry touching ingredientes should be gone")
	}
	if !c.Get("receitas", &v) || v != 1 {
		t.Error("entry on receitas only should survive")
	}

	c.Invalidate("receitas")
	if c.Get("receitas", &v) {
		t.Error("entry on receitas should be gone")
	}
	if !c.Get("usuarios", &v) || v != 3 {
		t.Error("unrelated entry should survive")
	}
}

func TestResultCache_TTLAndEviction(t *testing.T) {
	c := New(2, 20*time.Millisecond)

	_ = c.Set("a", []string{"t"}, 1)
	_ = c.Set("b", []string{"t"}, 2)
	_ = c.Set("c", []string{"t"}, 3)

	if size, _, _ := c.Stats(); size != 2 {
		t.Errorf("size = %d, want 2 after eviction", size)
	}

	time.Sleep(30 * time.Millisecond)

	var v int
	if c.Get("c", &v) {
		t.Error("expired entry must not be returned")
	}

	c.Cleanup()
	if size, _, _ := c.Stats(); size != 0 {
		t.Errorf("size = %d after cleanup, want 0", size)
	}
}
