package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/snowbatch/internal/tui/components"
)

// ErrPickerCancelled is returned when the user quits the picker without confirming.
var ErrPickerCancelled = fmt.Errorf("selection cancelled")

// PickTables runs the interactive table picker and returns the labels the
// user confirmed. Items start checked; entries without a data file are
// shown disabled so the operator can see what will be skipped.
func PickTables(title string, items []components.Item) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("nothing to pick from")
	}

	picker := components.NewPicker(title, items)

	model, err := tea.NewProgram(picker).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run table picker: %w", err)
	}

	result, ok := model.(components.Picker)
	if !ok {
		return nil, fmt.Errorf("unexpected picker model type %T", model)
	}
	if result.Cancelled() || !result.Submitted() {
		return nil, ErrPickerCancelled
	}
	return result.Checked(), nil
}
