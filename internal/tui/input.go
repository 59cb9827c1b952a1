package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xonecas/catnip/internal/constants"
)

// InputMode represents the current input mode. Each mode routes the typed
// text to exactly one destination.
type InputMode int

const (
	InputModeNone   InputMode = iota
	InputModeInsert           // composing a chat message
	InputModeRename           // renaming the selected conversation
)

// InputModel handles text input for messages and renames.
type InputModel struct {
	textInput textinput.Model
	mode      InputMode
}

// NewInputModel creates a new input model.
func NewInputModel() InputModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = constants.InputCharLimit
	ti.Width = 60

	return InputModel{textInput: ti}
}

// SetMode sets the input mode, the prompt, and an initial value.
func (m *InputModel) SetMode(mode InputMode, initial string) {
	m.mode = mode
	m.textInput.Reset()
	m.textInput.SetValue(initial)
	m.textInput.CursorEnd()

	switch mode {
	case InputModeInsert:
		m.textInput.Placeholder = "Type a message..."
		m.textInput.Prompt = inputPromptStyle.Render("> ")
	case InputModeRename:
		m.textInput.Placeholder = "New title..."
		m.textInput.Prompt = inputPromptStyle.Render("✎ ")
	default:
		m.textInput.Placeholder = ""
		m.textInput.Prompt = ""
	}

	if mode != InputModeNone {
		m.textInput.Focus()
	} else {
		m.textInput.Blur()
	}
}

// Mode returns the current input mode.
func (m InputModel) Mode() InputMode {
	return m.mode
}

// Value returns the current input value.
func (m InputModel) Value() string {
	return m.textInput.Value()
}

// IsActive returns true if input is active.
func (m InputModel) IsActive() bool {
	return m.mode != InputModeNone
}

// Update handles input updates.
func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// Reset clears the input.
func (m *InputModel) Reset() {
	m.textInput.Reset()
	m.mode = InputModeNone
	m.textInput.Blur()
}

// SetWidth sets the input width.
func (m *InputModel) SetWidth(width int) {
	m.textInput.Width = width - 4 // account for padding/border
}

// ViewBar renders the input bar, showing a hint when inactive.
func (m InputModel) ViewBar(width int, hint string) string {
	if m.mode != InputModeNone {
		return inputStyle.Width(width - 2).Render(m.textInput.View())
	}
	return inputStyle.Width(width - 2).Render(dimmedStyle.Render(hint))
}
