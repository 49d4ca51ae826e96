// Package tui provides the interactive Bubble Tea dashboard for nutlog.
package tui

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"nutlog/internal/cli"
	"nutlog/internal/ledger"
	"nutlog/internal/model"
	"nutlog/internal/pipeline"
	"nutlog/internal/tui/components"
	"nutlog/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// HistoryMsg is sent when the ledger history load finishes.
type HistoryMsg struct {
	Entries []model.ConsumptionEntry
	Err     error
}

// entryValues holds the log-entry form inputs.
type entryValues struct {
	Food     string
	Quantity string
}

// App is the root Bubble Tea model.
type App struct {
	ledger  *ledger.Ledger
	targets model.DailyTargets

	// Data
	entries []model.ConsumptionEntry
	loaded  bool
	loadErr error // non-nil means history is unavailable; recording still works

	// Pre-computed for the current data set
	todayEntries []model.ConsumptionEntry
	totals       model.DayTotals
	balance      []model.NutrientBalance
	months       []model.MonthTotals

	// Entries recorded during this TUI session, newest last. Shown as a
	// local echo on the Today tab; the persisted ledger stays the source
	// of truth for everything else.
	session []model.ConsumptionEntry

	// UI state
	width      int
	height     int
	activeTab  int
	histScroll int
	status     string

	// Log-entry form (huh)
	form     *huh.Form
	formVals entryValues
}

const minTerminalWidth = 72

// NewApp creates a new TUI app model.
func NewApp(lg *ledger.Ledger, targets model.DailyTargets) App {
	return App{
		ledger:  lg,
		targets: targets,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return loadHistoryCmd(a.ledger)
}

func loadHistoryCmd(lg *ledger.Ledger) tea.Cmd {
	return func() tea.Msg {
		entries, err := lg.History()
		return HistoryMsg{Entries: entries, Err: err}
	}
}

func (a *App) recompute() {
	now := time.Now()
	a.todayEntries = pipeline.FilterByDay(a.entries, now)
	a.totals = pipeline.AggregateDay(a.entries, now)
	a.balance = pipeline.Balance(a.totals, a.targets)
	a.months = pipeline.AggregateMonths(a.entries)

	// Stop scrolling once the final page is fully visible.
	maxScroll := len(a.entries) - a.historyPageSize()
	if a.histScroll > maxScroll {
		a.histScroll = maxScroll
	}
	if a.histScroll < 0 {
		a.histScroll = 0
	}
}

func (a App) historyPageSize() int {
	size := a.height - 14
	if size < 5 {
		size = 5
	}
	return size
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case HistoryMsg:
		a.loaded = true
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.entries = msg.Entries
		}
		a.recompute()
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// The entry form intercepts all other keys while open.
		if a.form != nil {
			return a.updateForm(msg)
		}

		switch key {
		case "q", "esc":
			return a, tea.Quit
		case "a":
			a.formVals = entryValues{}
			a.form = newEntryForm(a.ledger.Foods(), &a.formVals)
			if a.width > 0 {
				a.form = a.form.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.form.Init()
		case "r":
			a.status = "reloading..."
			return a, loadHistoryCmd(a.ledger)
		case "j", "down":
			if a.activeTab == 1 {
				a.histScroll++
				a.recompute()
			}
			return a, nil
		case "k", "up":
			if a.activeTab == 1 && a.histScroll > 0 {
				a.histScroll--
			}
			return a, nil
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil
	}

	if a.form != nil {
		return a.updateForm(msg)
	}

	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		food := a.formVals.Food
		quantity, err := strconv.ParseFloat(strings.TrimSpace(a.formVals.Quantity), 64)
		a.form = nil

		if err != nil {
			a.status = "quantity was not a number"
			return a, nil
		}

		entry, recErr := a.ledger.Record(food, quantity)
		if recErr != nil {
			a.status = fmt.Sprintf("not recorded: %v", recErr)
			return a, nil
		}

		a.session = append(a.session, entry)
		a.status = fmt.Sprintf("recorded %s of %s", cli.FormatQuantity(entry.Quantity), entry.Food)
		return a, loadHistoryCmd(a.ledger)
	}

	if a.form.State == huh.StateAborted {
		a.form = nil
		return a, nil
	}

	return a, cmd
}

func newEntryForm(foods []string, vals *entryValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Food").
				Description("What did you eat or drink?").
				Options(huh.NewOptions(foods...)...).
				Value(&vals.Food),
			huh.NewInput().
				Title("Quantity (g/ml)").
				Placeholder("100").
				Validate(validateQuantityInput).
				Value(&vals.Quantity),
		),
	)
}

func validateQuantityInput(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("must be zero or positive")
	}
	return nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return fmt.Sprintf(
			"\n  Terminal too narrow (%d cols)\n\n  nutlog needs at least %d columns.\n",
			a.width, minTerminalWidth,
		)
	}

	if !a.loaded {
		return "\n  Loading ledger..."
	}

	if a.form != nil {
		return a.form.View()
	}

	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(titleStyle.Render("◈ nutlog"))
	b.WriteString(subtitleStyle.Render(" · " + time.Now().Format("Mon 2006-01-02")))
	b.WriteString("\n\n")
	b.WriteString(components.RenderTabBar(a.activeTab))
	b.WriteString("\n\n")

	if a.loadErr != nil {
		warn := lipgloss.NewStyle().Foreground(t.Orange)
		b.WriteString(warn.Render(fmt.Sprintf("  History unavailable: %v", a.loadErr)))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("  New entries can still be recorded with [a]."))
		b.WriteString("\n")
	} else {
		switch a.activeTab {
		case 0:
			b.WriteString(a.renderToday())
		case 1:
			b.WriteString(a.renderHistory())
		default:
			b.WriteString(a.renderMonthly())
		}
	}

	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(a.width, a.status))

	return b.String()
}

func (a App) renderToday() string {
	var b strings.Builder

	cw := a.width - 2
	if cw > 90 {
		cw = 90
	}

	cards := []components.Card{
		{
			Label:  "Calories",
			Value:  cli.FormatKcal(a.totals.Calories),
			Detail: fmt.Sprintf("of %s", cli.FormatKcal(a.targets.Calories)),
		},
		{
			Label:  "Carbohydrates",
			Value:  cli.FormatGrams(a.totals.Carbs),
			Detail: fmt.Sprintf("of %s", cli.FormatGrams(a.targets.Carbs)),
		},
		{
			Label:  "Sugar",
			Value:  cli.FormatGrams(a.totals.Sugar),
			Detail: fmt.Sprintf("of %s", cli.FormatGrams(a.targets.Sugar)),
		},
	}
	b.WriteString(" ")
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n\n")

	barWidth := cw - 26
	if barWidth < 10 {
		barWidth = 10
	}
	for _, nb := range a.balance {
		pct := 0.0
		if nb.Target > 0 {
			pct = nb.Consumed / nb.Target
		}
		b.WriteString("  ")
		b.WriteString(components.TargetBar(nb.Nutrient, pct, 13, barWidth))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(a.todayEntries) == 0 {
		muted := lipgloss.NewStyle().Foreground(theme.Active.TextMuted)
		b.WriteString(muted.Render("  Nothing logged today yet. Press [a] to add an entry."))
		b.WriteString("\n")
	} else {
		b.WriteString(indent(cli.RenderTable(entriesTable("TODAY'S ENTRIES", a.todayEntries))))
	}

	if len(a.session) > 0 {
		muted := lipgloss.NewStyle().Foreground(theme.Active.TextDim)
		b.WriteString("\n")
		b.WriteString(muted.Render(fmt.Sprintf("  Logged this session: %d", len(a.session))))
		b.WriteString("\n")
	}

	return b.String()
}

func (a App) renderHistory() string {
	if len(a.entries) == 0 {
		muted := lipgloss.NewStyle().Foreground(theme.Active.TextMuted)
		return muted.Render("  No entries recorded yet.") + "\n"
	}

	// Most recent first for display; the ledger itself stays append-ordered.
	sorted := make([]model.ConsumptionEntry, len(a.entries))
	copy(sorted, a.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.After(sorted[j].Time)
	})

	pageSize := a.historyPageSize()

	start := a.histScroll
	if start > len(sorted)-1 {
		start = len(sorted) - 1
	}
	end := start + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}

	var b strings.Builder
	b.WriteString(indent(cli.RenderTable(historyTable(sorted[start:end]))))

	muted := lipgloss.NewStyle().Foreground(theme.Active.TextDim)
	b.WriteString(muted.Render(fmt.Sprintf("  %d–%d of %d  (j/k to scroll)", start+1, end, len(sorted))))
	b.WriteString("\n")

	return b.String()
}

func (a App) renderMonthly() string {
	if len(a.months) == 0 {
		muted := lipgloss.NewStyle().Foreground(theme.Active.TextMuted)
		return muted.Render("  No entries recorded yet.") + "\n"
	}

	rows := make([][]string, 0, len(a.months))
	for _, m := range a.months {
		rows = append(rows, []string{
			m.Month.Format("2006-01"),
			cli.FormatNumber(int64(m.Entries)),
			cli.FormatAmount(m.Calories),
			cli.FormatAmount(m.Carbs),
			cli.FormatAmount(m.Sugar),
		})
	}

	return indent(cli.RenderTable(cli.Table{
		Title:   "MONTHLY SUMMARY",
		Headers: []string{"Month", "Entries", "Kcal", "Carbs (g)", "Sugar (g)"},
		Rows:    rows,
	}))
}

func entriesTable(title string, entries []model.ConsumptionEntry) cli.Table {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Time.Format("15:04"),
			e.Food,
			cli.FormatQuantity(e.Quantity),
			cli.FormatAmount(e.Calories),
			cli.FormatAmount(e.Carbs),
			cli.FormatAmount(e.Sugar),
			cli.FormatLactose(e.Lactose),
		})
	}

	return cli.Table{
		Title:   title,
		Headers: []string{"Time", "Food", "Qty", "Kcal", "Carbs", "Sugar", "Lactose"},
		Rows:    rows,
	}
}

func historyTable(entries []model.ConsumptionEntry) cli.Table {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Time.Format("2006-01-02 15:04"),
			e.Food,
			cli.FormatQuantity(e.Quantity),
			cli.FormatAmount(e.Calories),
			cli.FormatAmount(e.Carbs),
			cli.FormatAmount(e.Sugar),
			cli.FormatLactose(e.Lactose),
		})
	}

	return cli.Table{
		Headers: []string{"When", "Food", "Qty", "Kcal", "Carbs", "Sugar", "Lactose"},
		Rows:    rows,
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
