// Package tui is the interactive surface: a Bubble Tea list over the store
// with an inline add form and a confetti stage.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/confetti"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// ------- styles -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	frameStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// listItem adapts model.Item to list.Item.
type listItem struct {
	it model.Item
}

func (i listItem) Title() string {
	return fmt.Sprintf("%s %s", accentStyle.Render(fmt.Sprintf("#%d", i.it.ID)), i.it.Title)
}

func (i listItem) Description() string {
	return strings.Join(strings.Fields(i.it.Description), " ")
}

func (i listItem) FilterValue() string { return i.it.Title + " " + i.it.Description }

const (
	fieldTitle = iota
	fieldDescription
)

// Model is the Bubble Tea model. It holds no list state of its own: every
// operation goes through the store and the list is rebuilt from Items().
type Model struct {
	store  *store.Store
	logger *log.Logger
	keys   keyMap
	list   list.Model

	// inline add form
	adding  bool
	focus   int
	title   textinput.Model
	desc    textarea.Model
	formErr string

	status string

	field     *confetti.Field
	animating bool

	width, height int
}

// New builds the model. field may be nil when celebrations are off; when set
// it must be the field the store's Confetti celebrator fires into.
func New(s *store.Store, field *confetti.Field, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := defaultKeys()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "To Do List"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("todo", "todos")
	l.FilterInput.Prompt = "/ "
	l.KeyMap.Quit = keys.Quit
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.Add, keys.Finish} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{keys.Add, keys.Finish} }

	ti := textinput.New()
	ti.Prompt = "Title > "
	ti.Placeholder = "Title"
	ti.CharLimit = model.MaxTitleLen

	ta := textarea.New()
	ta.Placeholder = "Description"
	ta.ShowLineNumbers = false
	ta.SetHeight(3)

	m := Model{
		store:  s,
		logger: logger,
		keys:   keys,
		list:   l,
		title:  ti,
		desc:   ta,
		field:  field,
		width:  80,
		height: 24,
	}
	m.refresh()
	m.resize()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// refresh rebuilds the list from the store snapshot.
func (m *Model) refresh() {
	items := m.store.Items()
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{it: it})
	}
	m.list.SetItems(li)
}

func (m *Model) resize() {
	listHeight := m.height - 4
	if m.adding {
		listHeight -= 8
	}
	if m.field != nil {
		m.field.Resize(m.width-4, stageHeight)
		if m.animating {
			listHeight -= stageHeight
		}
	}
	m.list.SetSize(m.width-4, max(listHeight, 3))
	m.title.Width = m.width - 14
	m.desc.SetWidth(m.width - 8)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case frameMsg:
		cmd := m.stepAnimation()
		m.resize()
		return m, cmd
	}

	if m.adding {
		return m.updateForm(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(km, m.keys.Add):
			return m, m.openForm()
		case key.Matches(km, m.keys.Finish):
			return m, m.finishSelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) openForm() tea.Cmd {
	m.adding = true
	m.formErr = ""
	m.focus = fieldTitle
	m.desc.Blur()
	m.resize()
	return m.title.Focus()
}

func (m *Model) closeForm() {
	m.adding = false
	m.title.Blur()
	m.desc.Blur()
	m.resize()
}

func (m *Model) switchField() tea.Cmd {
	if m.focus == fieldTitle {
		m.focus = fieldDescription
		m.title.Blur()
		return m.desc.Focus()
	}
	m.focus = fieldTitle
	m.desc.Blur()
	return m.title.Focus()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case km.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(km, m.keys.Cancel):
			m.closeForm()
			return m, nil
		case key.Matches(km, m.keys.Next):
			return m, m.switchField()
		case key.Matches(km, m.keys.Submit),
			m.focus == fieldTitle && km.Type == tea.KeyEnter:
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}

// submit forwards the add intent. On a validation failure the draft stays;
// on success both inputs are cleared.
func (m *Model) submit() {
	it, err := m.store.Add(m.title.Value(), m.desc.Value())
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			m.formErr = ve.Message
		} else {
			m.formErr = err.Error()
		}
		m.logger.Debug("add rejected", "err", err)
		return
	}
	m.title.SetValue("")
	m.desc.SetValue("")
	m.formErr = ""
	m.status = fmt.Sprintf("added #%d", it.ID)
	m.closeForm()
	m.refresh()
	m.list.Select(len(m.list.Items()) - 1)
}

// finishSelected forwards the remove intent for the highlighted item.
func (m *Model) finishSelected() tea.Cmd {
	sel, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return nil
	}
	m.store.Remove(sel.it.ID)
	m.status = fmt.Sprintf("finished #%d %s", sel.it.ID, sel.it.Title)
	m.refresh()
	cmd := m.startAnimation()
	m.resize()
	return cmd
}

func (m Model) View() string {
	var sections []string

	if m.animating && m.field != nil {
		sections = append(sections, m.field.Render())
	}

	if len(m.list.Items()) == 0 && m.list.FilterState() == list.Unfiltered {
		sections = append(sections,
			titleStyle.Render("To Do List"),
			"",
			mutedStyle.Render("Go ahead and add a new item"),
			"",
			helpStyle.Render("a add • q quit"),
		)
	} else {
		sections = append(sections, m.list.View())
	}

	if m.status != "" && !m.adding {
		sections = append(sections, successStyle.Render("✔ "+m.status))
	}

	if m.adding {
		head := "Add new item"
		if m.formErr != "" {
			head += "  " + errorStyle.Render(m.formErr)
		}
		form := strings.Join([]string{
			head,
			m.title.View(),
			m.desc.View(),
			helpStyle.Render("tab switch field • enter/ctrl+s add • esc cancel"),
		}, "\n")
		sections = append(sections, frameStyle.Render(form))
	}

	return frameStyle.Render(strings.Join(sections, "\n"))
}
