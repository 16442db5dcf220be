package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Norgate-AV/scssc/internal/ui"
)

// keyMap holds the picker key bindings
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "q"),
			key.WithHelp("esc/q", "cancel"),
		),
	}
}

// pickerModel is a single-choice list
type pickerModel struct {
	question  string
	choices   []string
	cursor    int
	chosen    string
	cancelled bool
	keys      keyMap
	styles    ui.Styles
}

func newPicker(question string, choices []string, def string, styles ui.Styles) pickerModel {
	m := pickerModel{
		question: question,
		choices:  choices,
		keys:     defaultKeyMap(),
		styles:   styles,
	}

	for i, c := range choices {
		if c == def {
			m.cursor = i
			break
		}
	}

	return m
}

// Init implements tea.Model.
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		m.chosen = m.choices[m.cursor]
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Question.Render(m.question))
	b.WriteString("\n")

	if m.chosen != "" {
		b.WriteString("  " + m.styles.Comment.Render(m.chosen) + "\n")
		return b.String()
	}

	for i, c := range m.choices {
		line := fmt.Sprintf("[%d] %s", i, c)
		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Muted.Render("↑/↓ move • enter select • esc cancel"))
	b.WriteString("\n")

	return b.String()
}

// confirmModel is a yes/no question
type confirmModel struct {
	question  string
	answer    bool
	done      bool
	cancelled bool
	keys      keyMap
	styles    ui.Styles
}

func newConfirm(question string, def bool, styles ui.Styles) confirmModel {
	return confirmModel{question: question, answer: def, keys: defaultKeyMap(), styles: styles}
}

// Init implements tea.Model.
func (m confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answer, m.done = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No):
		m.answer, m.done = false, true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Select):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m confirmModel) View() string {
	hint := "Y/n"
	if !m.answer {
		hint = "y/N"
	}

	if m.done {
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n", m.styles.Question.Render(m.question), m.styles.Comment.Render(answer))
	}

	return fmt.Sprintf("%s %s ", m.styles.Question.Render(m.question), m.styles.Muted.Render("("+hint+")"))
}

// TeaPrompter asks questions with Bubble Tea programs, for interactive terminals
type TeaPrompter struct {
	in     io.Reader
	out    io.Writer
	styles ui.Styles
}

// NewTeaPrompter creates a prompter bound to the given terminal streams
func NewTeaPrompter(in io.Reader, out io.Writer, styles ui.Styles) *TeaPrompter {
	return &TeaPrompter{in: in, out: out, styles: styles}
}

func (p *TeaPrompter) Choose(question string, choices []string, def string) (string, error) {
	final, err := p.run(newPicker(question, choices, def, p.styles))
	if err != nil {
		return "", err
	}

	m := final.(pickerModel)
	if m.cancelled || m.chosen == "" {
		return "", ErrCancelled
	}

	return m.chosen, nil
}

func (p *TeaPrompter) Confirm(question string, def bool) (bool, error) {
	final, err := p.run(newConfirm(question, def, p.styles))
	if err != nil {
		return false, err
	}

	m := final.(confirmModel)
	if m.cancelled || !m.done {
		return false, ErrCancelled
	}

	return m.answer, nil
}

func (p *TeaPrompter) run(model tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out)).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}

	return final, nil
}
