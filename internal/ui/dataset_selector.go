package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/eraptis/eustat-cli/internal/apperr"
)

// DatasetEntry is one selectable row in the interactive selector. The
// caller maps its own catalogue records into this shape.
type DatasetEntry struct {
	Code       string
	Title      string
	LastUpdate string
	Values     int
}

// SearchFunc resolves a query to dataset entries. It is called off the UI
// goroutine, so it may block.
type SearchFunc func(query string) ([]DatasetEntry, error)

// datasetItem represents a dataset in the list
type datasetItem struct {
	entry    DatasetEntry
	selected bool
}

func (i datasetItem) Title() string {
	var checkbox string
	if i.selected {
		checkbox = Success.Render("[✓] ")
	} else {
		checkbox = Dim.Render("[ ] ")
	}
	return checkbox + i.entry.Code
}

func (i datasetItem) Description() string {
	desc := i.entry.Title
	if i.entry.LastUpdate != "" {
		desc += Dim.Render(fmt.Sprintf(" · updated %s", i.entry.LastUpdate))
	}
	if i.entry.Values > 0 {
		desc += Dim.Render(fmt.Sprintf(" · %s values", formatNumber(i.entry.Values)))
	}
	return desc
}

func (i datasetItem) FilterValue() string { return i.entry.Code }

// datasetSelectorModel is the Bubble Tea model for the interactive selector
type datasetSelectorModel struct {
	textInput textinput.Model
	list      list.Model
	search    SearchFunc

	filteredItems []list.Item
	selected      map[string]bool
	searching     bool
	searchQuery   string
	err           error
	quitting      bool
	confirmed     bool
	width         int
	height        int
}

type searchResultMsg struct {
	results []DatasetEntry
	err     error
}

type searchDebounceMsg struct{}

// NewDatasetSelector creates a new interactive dataset selector
func NewDatasetSelector(search SearchFunc, initialQuery string) *datasetSelectorModel {
	ti := textinput.New()
	ti.Placeholder = "Search Eurostat datasets..."
	ti.Focus()
	ti.CharLimit = 156
	ti.SetWidth(50)
	ti.SetValue(initialQuery)

	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(3)
	delegate.SetSpacing(0)

	// Customize delegate styles
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorHighlight).
		BorderForeground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorTextDim).
		BorderForeground(ColorPrimary)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Select Datasets"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false) // We handle our own filtering
	l.SetShowHelp(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)

	return &datasetSelectorModel{
		textInput:   ti,
		list:        l,
		search:      search,
		searchQuery: initialQuery,
		selected:    make(map[string]bool),
		width:       80,
		height:      24,
	}
}

// Init initializes the model
func (m *datasetSelectorModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.performSearch(m.searchQuery),
	)
}

// Update handles messages
func (m *datasetSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't match space when typing in text input
		if m.textInput.Focused() {
			switch msg.String() {
			case "ctrl+c", "esc":
				m.quitting = true
				return m, tea.Quit
			case "enter":
				if m.textInput.Value() != "" {
					// Unfocus text input and focus list
					m.textInput.Blur()
					return m, nil
				}
			case "down", "up":
				// If we have items, switch to list navigation
				if len(m.filteredItems) > 0 {
					m.textInput.Blur()
					var cmd tea.Cmd
					m.list, cmd = m.list.Update(msg)
					return m, cmd
				}
			default:
				// Update text input and trigger debounced search
				var cmd tea.Cmd
				m.textInput, cmd = m.textInput.Update(msg)

				query := m.textInput.Value()
				if query != m.searchQuery {
					m.searchQuery = query
					// Debounce search: wait 300ms after last keystroke
					cmds = append(cmds, m.debounceSearch())
				}
				cmds = append(cmds, cmd)
				return m, tea.Batch(cmds...)
			}
		} else {
			// List is focused
			switch msg.String() {
			case "ctrl+c", "esc":
				m.quitting = true
				return m, tea.Quit
			case "enter":
				m.confirmed = true
				m.quitting = true
				return m, tea.Quit
			case "s":
				// Toggle selection
				if i, ok := m.list.SelectedItem().(datasetItem); ok {
					m.selected[i.entry.Code] = !m.selected[i.entry.Code]
					m.updateItemSelection(i.entry.Code, m.selected[i.entry.Code])
				}
				return m, nil
			case "/", "i":
				// Focus back on search input
				m.textInput.Focus()
				return m, textinput.Blink
			default:
				// Let list handle other keys (arrow keys, etc.)
				var cmd tea.Cmd
				m.list, cmd = m.list.Update(msg)
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case searchDebounceMsg:
		// Perform the search
		return m, m.performSearch(m.searchQuery)

	case searchResultMsg:
		m.searching = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		// Convert results to list items
		items := make([]list.Item, len(msg.results))
		for i, result := range msg.results {
			items[i] = datasetItem{
				entry:    result,
				selected: m.selected[result.Code],
			}
		}
		m.filteredItems = items
		m.list.SetItems(items)
		return m, nil
	}

	// Update list
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the model
func (m *datasetSelectorModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(1, 0)
	b.WriteString(titleStyle.Render("Eurostat Dataset Selector"))
	b.WriteString("\n\n")

	// Search input
	searchLabel := Dim.Render("Search: ")
	b.WriteString(searchLabel)
	b.WriteString(m.textInput.View())

	if m.searching {
		b.WriteString(Dim.Render(" (searching...)"))
	}
	b.WriteString("\n\n")

	// List of datasets
	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	// Selected datasets
	var selectedCodes []string
	for code, selected := range m.selected {
		if selected {
			selectedCodes = append(selectedCodes, code)
		}
	}

	if len(selectedCodes) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n",
			Success.Render("Selected:"),
			Highlight.Render(fmt.Sprintf("%d dataset(s)", len(selectedCodes)))))
	}

	// Help text
	helpStyle := lipgloss.NewStyle().Foreground(ColorTextDim)
	if m.textInput.Focused() {
		b.WriteString(helpStyle.Render("↑/↓: move to list · enter: finish search · esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("s: select · ↑/↓: navigate · enter: confirm · /: search · esc: cancel"))
	}

	// Error display
	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(Error.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return tea.NewView(b.String())
}

// debounceSearch returns a command that triggers search after a delay
func (m *datasetSelectorModel) debounceSearch() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(300 * time.Millisecond)
		return searchDebounceMsg{}
	}
}

// performSearch executes the search
func (m *datasetSelectorModel) performSearch(query string) tea.Cmd {
	m.searching = true
	return func() tea.Msg {
		results, err := m.search(query)
		return searchResultMsg{results: results, err: err}
	}
}

// updateItemSelection updates the selected state of an item
func (m *datasetSelectorModel) updateItemSelection(code string, selected bool) {
	for i, item := range m.filteredItems {
		if di, ok := item.(datasetItem); ok && di.entry.Code == code {
			m.filteredItems[i] = datasetItem{entry: di.entry, selected: selected}
			break
		}
	}
	m.list.SetItems(m.filteredItems)
}

// GetSelectedDatasets returns the list of selected dataset codes
func (m *datasetSelectorModel) GetSelectedDatasets() []string {
	var codes []string
	for code, selected := range m.selected {
		if selected {
			codes = append(codes, code)
		}
	}
	return codes
}

// WasConfirmed returns true if the user confirmed the selection
func (m *datasetSelectorModel) WasConfirmed() bool {
	return m.confirmed
}

// RunDatasetSelector runs the interactive dataset selector and returns
// selected dataset codes
func RunDatasetSelector(search SearchFunc, initialQuery string) ([]string, error) {
	p := tea.NewProgram(NewDatasetSelector(search, initialQuery))
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	model := m.(*datasetSelectorModel)
	if !model.WasConfirmed() {
		return nil, apperr.ErrCancelled
	}

	return model.GetSelectedDatasets(), nil
}

// formatNumber formats a number with commas for thousands
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var result []rune
	for i, r := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, r)
	}
	return string(result)
}
