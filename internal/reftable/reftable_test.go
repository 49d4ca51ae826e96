package reftable

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTable creates a temp CSV reference table and returns its path.
func writeTable(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "foods.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const tableHeader = "Alimento,Calorias (kcal),Carboidratos (g),Açúcar (g),Contém Lactose"

func TestLoad_Basic(t *testing.T) {
	path := writeTable(t,
		tableHeader,
		"Leite,60,5,5,Sim",
		"Arroz,130,28,0.1,Não",
	)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}

	p, ok := table.Lookup("Leite")
	if !ok {
		t.Fatal("Lookup(Leite) not found")
	}
	if p.CaloriesPer100 != 60 || p.CarbsPer100 != 5 || p.SugarPer100 != 5 {
		t.Errorf("Leite profile = %+v, want 60/5/5", p)
	}
	if p.Lactose != "Sim" {
		t.Errorf("Lactose = %q, want Sim", p.Lactose)
	}
}

func TestLoad_NamesKeepFileOrder(t *testing.T) {
	path := writeTable(t,
		tableHeader,
		"Zebu,100,0,0,Não",
		"Arroz,130,28,0.1,Não",
		"Leite,60,5,5,Sim",
	)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Zebu", "Arroz", "Leite"}
	got := table.Names()
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoad_DuplicateKeepsFirst(t *testing.T) {
	path := writeTable(t,
		tableHeader,
		"Leite,60,5,5,Sim",
		"Leite,999,999,999,Não",
	)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1", table.Len())
	}
	p, _ := table.Lookup("Leite")
	if p.CaloriesPer100 != 60 {
		t.Errorf("CaloriesPer100 = %v, want 60 (first occurrence wins)", p.CaloriesPer100)
	}
}

func TestLoad_DecimalComma(t *testing.T) {
	path := writeTable(t,
		tableHeader,
		`Iogurte,"61,5","4,7","4,7",Sim`,
	)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, ok := table.Lookup("Iogurte")
	if !ok {
		t.Fatal("Lookup(Iogurte) not found")
	}
	if p.CaloriesPer100 != 61.5 {
		t.Errorf("CaloriesPer100 = %v, want 61.5", p.CaloriesPer100)
	}
}

func TestLoad_ColumnOrderIndependent(t *testing.T) {
	path := writeTable(t,
		"Contém Lactose,Açúcar (g),Carboidratos (g),Calorias (kcal),Alimento",
		"Sim,5,5,60,Leite",
	)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, ok := table.Lookup("Leite")
	if !ok {
		t.Fatal("Lookup(Leite) not found")
	}
	if p.CaloriesPer100 != 60 || p.Lactose != "Sim" {
		t.Errorf("profile = %+v, columns mapped wrong", p)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeTable(t,
		"Alimento,Calorias (kcal)",
		"Leite,60",
	)

	_, err := Load(path)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestLoad_BadNumber(t *testing.T) {
	path := writeTable(t,
		tableHeader,
		"Leite,sixty,5,5,Sim",
	)

	_, err := Load(path)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable", err)
	}
	if err != nil && !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want line number in message", err)
	}
}

func TestLoad_EmptyTable(t *testing.T) {
	path := writeTable(t, tableHeader)

	_, err := Load(path)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("err = %v, want ErrSourceUnavailable for header-only file", err)
	}
}

func TestLookup_CaseSensitive(t *testing.T) {
	path := writeTable(t,
		tableHeader,
		"Leite,60,5,5,Sim",
	)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := table.Lookup("leite"); ok {
		t.Error("Lookup(leite) found; names are exact-match")
	}
}
