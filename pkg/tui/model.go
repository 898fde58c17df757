package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/counterline/till/pkg/goal"
	"github.com/counterline/till/pkg/ledger"
	"github.com/counterline/till/pkg/report"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// Form fields, in tab order. The goal field sits below the registration
// form and shares the same focus cycle.
const (
	fieldCustomer = iota
	fieldOrder
	fieldPrice
	fieldDate
	fieldObservations
	fieldGoal
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Customer",
	"Order",
	"Price",
	"Order Date",
	"Observations",
	"Goal",
}

// Model is the Bubble Tea model for the order-logging TUI.
type Model struct {
	store   *ledger.Store
	tracker *goal.Tracker
	keys    KeyMap
	width   int
	height  int

	inputs [fieldCount]textinput.Model
	focus  int

	progressBar progress.Model

	records []ledger.Record
	total   decimal.Decimal

	// Dashboard output from the last search / report action
	searchName     string
	searchResults  []string
	searched       bool
	lastReportPath string

	statusMsg     string
	statusIsError bool
	statusTimeout time.Time
}

// NewModel creates a new TUI model over the given store.
func NewModel(s *ledger.Store) Model {
	m := Model{
		store:       s,
		tracker:     &goal.Tracker{},
		keys:        DefaultKeyMap(),
		progressBar: progress.New(progress.WithDefaultGradient()),
	}

	placeholders := [fieldCount]string{
		"customer name",
		"order description",
		"e.g. 10.50 or 10,50",
		"YYYYMMDD (empty = today)",
		"optional notes",
		"target amount, then ctrl+g",
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		m.inputs[i] = ti
	}
	m.inputs[fieldCustomer].Focus()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.WindowSize())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - msg.Width/2 - 4
		if barWidth < 20 {
			barWidth = 20
		}
		m.progressBar.Width = barWidth
		for i := range m.inputs {
			m.inputs[i].Width = msg.Width/2 - 20
		}
		m.reload()
		return m, tea.ClearScreen

	case FileChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Route everything else (cursor blinks) to the focused input.
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.SaveGoal):
		m.saveGoal()

	case key.Matches(msg, m.keys.Search):
		m.search()

	case key.Matches(msg, m.keys.Report):
		m.writeReport()

	case key.Matches(msg, m.keys.Refresh):
		m.reload()
		m.setStatus("Refreshed", false)

	case key.Matches(msg, m.keys.Submit):
		if m.focus == fieldGoal {
			m.saveGoal()
		} else {
			m.register()
		}

	default:
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// register collects the form fields into a Record and persists it.
// Validation failures re-prompt via the status line; nothing is written.
func (m *Model) register() {
	customer := strings.TrimSpace(m.inputs[fieldCustomer].Value())
	order := strings.TrimSpace(m.inputs[fieldOrder].Value())
	priceStr := strings.TrimSpace(m.inputs[fieldPrice].Value())

	if customer == "" || order == "" || priceStr == "" {
		m.setStatus("Customer, order and price must all be filled out", true)
		return
	}

	price, err := ledger.ParsePrice(priceStr)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}

	orderDate := ledger.Day(time.Now())
	if dateStr := strings.TrimSpace(m.inputs[fieldDate].Value()); dateStr != "" {
		d, err := time.Parse("20060102", dateStr)
		if err != nil {
			m.setStatus("Order date must be YYYYMMDD", true)
			return
		}
		orderDate = ledger.Day(d)
	}

	r := ledger.Record{
		Customer:     customer,
		Order:        order,
		Price:        price,
		Date:         orderDate,
		Observations: strings.TrimSpace(m.inputs[fieldObservations].Value()),
	}

	name, err := m.store.Register(r, time.Now())
	if err != nil {
		m.setStatus("Register failed: "+err.Error(), true)
		return
	}

	m.setStatus("Registered "+name, false)
	m.clearForm()
	m.reload()
}

func (m *Model) clearForm() {
	for i := fieldCustomer; i <= fieldObservations; i++ {
		m.inputs[i].Reset()
	}
	m.setFocus(fieldCustomer)
}

func (m *Model) saveGoal() {
	input := strings.TrimSpace(m.inputs[fieldGoal].Value())
	if err := m.tracker.Set(input); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	target, _ := m.tracker.Target()
	m.setStatus("Goal of "+ledger.FormatPrice(target)+" saved", false)
}

// search looks up record files for the customer currently in the form.
func (m *Model) search() {
	name := strings.TrimSpace(m.inputs[fieldCustomer].Value())
	if name == "" {
		m.setStatus("Enter a customer name to search", true)
		return
	}

	names, err := m.store.SearchFiles(name)
	if err != nil {
		m.setStatus("Search failed: "+err.Error(), true)
		return
	}

	m.searchName = name
	m.searchResults = names
	m.searched = true
}

// writeReport persists the weekly report for the week of the form's order
// date (today when the field is empty).
func (m *Model) writeReport() {
	path, err := report.Write(m.store, m.store.Root, m.anchorDate())
	if errors.Is(err, report.ErrNoRecords) {
		m.setStatus("No records found for this week", true)
		return
	}
	if err != nil {
		m.setStatus("Report failed: "+err.Error(), true)
		return
	}

	m.lastReportPath = path
	m.setStatus("Weekly report written", false)
}

// anchorDate returns the date the dashboard week is anchored on: the form's
// order date when it parses, today otherwise.
func (m Model) anchorDate() time.Time {
	if dateStr := strings.TrimSpace(m.inputs[fieldDate].Value()); dateStr != "" {
		if d, err := time.Parse("20060102", dateStr); err == nil {
			return ledger.Day(d)
		}
	}
	return ledger.Day(time.Now())
}

func (m *Model) reload() {
	records, err := m.store.LoadAll()
	if err != nil {
		m.setStatus("Load error: "+err.Error(), true)
		return
	}
	m.records = records
	m.total = report.TotalOf(records)
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
	m.statusTimeout = time.Now().Add(4 * time.Second)
}
