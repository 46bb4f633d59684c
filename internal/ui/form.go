package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldSpec describes one text field in a form.
type fieldSpec struct {
	label       string
	placeholder string
	secret      bool
}

// form is a vertical stack of labelled text inputs with tab cycling. Pages
// that need extra focusable rows (toggles, buttons) declare them as extras;
// extras focus after the last text input and the page renders them itself.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
	extras int
}

func newForm(specs []fieldSpec) form {
	f := form{
		labels: make([]string, len(specs)),
		inputs: make([]textinput.Model, len(specs)),
	}
	for i, spec := range specs {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.CharLimit = 64
		ti.Width = 32
		if spec.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		f.labels[i] = spec.label
		f.inputs[i] = ti
	}
	f.refocus()
	return f
}

// slots is the number of focusable rows, text inputs plus extras.
func (f *form) slots() int {
	return len(f.inputs) + f.extras
}

// onInput reports whether focus currently sits on a text input.
func (f *form) onInput() bool {
	return f.focus < len(f.inputs)
}

// Next advances focus and returns the input index that lost focus, or -1
// when focus was on an extra row.
func (f *form) Next() int {
	left := -1
	if f.onInput() {
		left = f.focus
	}
	f.focus = (f.focus + 1) % f.slots()
	f.refocus()
	return left
}

// Prev moves focus backwards and returns the input index that lost focus,
// or -1 when focus was on an extra row.
func (f *form) Prev() int {
	left := -1
	if f.onInput() {
		left = f.focus
	}
	f.focus = (f.focus - 1 + f.slots()) % f.slots()
	f.refocus()
	return left
}

func (f *form) SetFocus(i int) {
	if i < 0 || i >= f.slots() {
		return
	}
	f.focus = i
	f.refocus()
}

func (f *form) refocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// Update forwards a message to the focused text input.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	if !f.onInput() {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) Value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) SetValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

// Reset clears all inputs and returns focus to the first field.
func (f *form) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.focus = 0
	f.refocus()
}

// View renders the labelled input rows. Extra rows are rendered by the page.
func (f *form) View(styles Styles) string {
	var b strings.Builder
	for i := range f.inputs {
		b.WriteString(styles.Label.Render(f.labels[i]))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}
