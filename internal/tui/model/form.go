package model

import (
	"fmt"
	"strings"
	"watchdash/internal/provider"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ProviderForm edits the declared fields of one provider.
type ProviderForm struct {
	Provider ProviderChoice
	Fields   []provider.Field
	Inputs   []textinput.Model
	Focus    int
	Err      string
}

// NewProviderForm builds one input per field, pre-filled with the stored
// value. The default is shown as placeholder.
func NewProviderForm(choice ProviderChoice, fields []provider.Field, stored map[string]string) *ProviderForm {
	f := &ProviderForm{Provider: choice, Fields: fields}
	for _, field := range fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = field.Default
		ti.CharLimit = 512
		ti.SetValue(stored[field.Key])
		f.Inputs = append(f.Inputs, ti)
	}
	f.focus(0)
	return f
}

func (f *ProviderForm) focus(i int) {
	if len(f.Inputs) == 0 {
		f.Focus = 0
		return
	}
	if i < 0 {
		i = len(f.Inputs) - 1
	}
	if i >= len(f.Inputs) {
		i = 0
	}
	for j := range f.Inputs {
		if j == i {
			f.Inputs[j].Focus()
		} else {
			f.Inputs[j].Blur()
		}
	}
	f.Focus = i
}

// Next moves focus to the following field, wrapping around.
func (f *ProviderForm) Next() { f.focus(f.Focus + 1) }

// Prev moves focus to the previous field, wrapping around.
func (f *ProviderForm) Prev() { f.focus(f.Focus - 1) }

// OnLastField reports whether the focused input is the last one.
func (f *ProviderForm) OnLastField() bool {
	return len(f.Inputs) == 0 || f.Focus == len(f.Inputs)-1
}

// Update forwards a message to the focused input.
func (f *ProviderForm) Update(msg tea.Msg) tea.Cmd {
	if len(f.Inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.Inputs[f.Focus], cmd = f.Inputs[f.Focus].Update(msg)
	return cmd
}

// Values returns the entered values. Empty inputs fall back to the field
// default.
func (f *ProviderForm) Values() map[string]string {
	values := make(map[string]string, len(f.Fields))
	for i, field := range f.Fields {
		v := strings.TrimSpace(f.Inputs[i].Value())
		if v == "" {
			v = field.Default
		}
		if v != "" {
			values[field.Key] = v
		}
	}
	return values
}

// Validate checks required fields. On failure it records an inline error,
// focuses the offending field and returns false.
func (f *ProviderForm) Validate() bool {
	values := f.Values()
	for i, field := range f.Fields {
		if field.Required && values[field.Key] == "" {
			f.Err = fmt.Sprintf("%s is required", field.Label)
			f.focus(i)
			return false
		}
	}
	f.Err = ""
	return true
}
