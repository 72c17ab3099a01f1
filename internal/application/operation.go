package application

import "github.com/ericfisherdev/statuspanel/internal/domain/model"

// Operation is what a broadcast applies to every workspace: either one preset or
// the "clear" pseudo-preset.
type Operation struct {
	clear  bool
	preset model.StatusPreset
}

// ApplyPreset returns an Operation that writes preset to every workspace.
func ApplyPreset(preset model.StatusPreset) Operation {
	return Operation{preset: preset}
}

// ClearOperation returns an Operation that clears the status on every workspace.
func ClearOperation() Operation {
	return Operation{clear: true}
}

// IsClear reports whether the operation clears the status.
func (o Operation) IsClear() bool {
	return o.clear
}

// Preset returns the preset applied by the operation. It is the zero value for Clear.
func (o Operation) Preset() model.StatusPreset {
	return o.preset
}

// String describes the operation for logging.
func (o Operation) String() string {
	if o.clear {
		return "clear"
	}
	return "apply:" + o.preset.Text
}
