package tui

import (
	"testing"
	"time"

	"nutlog/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestHistoryScrollStopsAtLastPage(t *testing.T) {
	a := NewApp(nil, model.DefaultTargets)
	a.width = 100
	a.height = 20 // page size 6
	a.loaded = true
	a.activeTab = 1

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	a.entries = make([]model.ConsumptionEntry, 10)
	for i := range a.entries {
		a.entries[i] = model.ConsumptionEntry{
			Time: base.AddDate(0, 0, i),
			Food: "Arroz",
		}
	}

	for i := 0; i < 30; i++ {
		m, _ := a.Update(keyPress('j'))
		a = m.(App)
	}

	wantMax := len(a.entries) - a.historyPageSize()
	if a.histScroll != wantMax {
		t.Errorf("histScroll = %d, want %d (last page fully visible)", a.histScroll, wantMax)
	}

	for i := 0; i < 30; i++ {
		m, _ := a.Update(keyPress('k'))
		a = m.(App)
	}
	if a.histScroll != 0 {
		t.Errorf("histScroll = %d after scrolling back up, want 0", a.histScroll)
	}
}

func TestHistoryScrollShortList(t *testing.T) {
	a := NewApp(nil, model.DefaultTargets)
	a.width = 100
	a.height = 20
	a.loaded = true
	a.activeTab = 1
	a.entries = make([]model.ConsumptionEntry, 3) // fits on one page

	for i := 0; i < 5; i++ {
		m, _ := a.Update(keyPress('j'))
		a = m.(App)
	}
	if a.histScroll != 0 {
		t.Errorf("histScroll = %d for a single-page list, want 0", a.histScroll)
	}
}

func TestValidateQuantityInput(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"100", true},
		{"0", true},
		{" 12.5 ", true},
		{"-5", false},
		{"abc", false},
		{"", false},
		{"NaN", false},
		{"+Inf", false},
		{"-Inf", false},
	}

	for _, tt := range tests {
		err := validateQuantityInput(tt.in)
		if tt.ok && err != nil {
			t.Errorf("validateQuantityInput(%q) = %v, want nil", tt.in, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("validateQuantityInput(%q) = nil, want error", tt.in)
		}
	}
}
