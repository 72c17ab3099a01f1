package driven

import (
	"context"

	"github.com/ericfisherdev/statuspanel/internal/domain/model"
)

// PresetStore defines the driven port for the ordered preset list kept in the
// preference store.
type PresetStore interface {
	// Load returns the stored presets. When nothing is stored, or the stored value
	// cannot be decoded, it returns model.DefaultPresets() together with a
	// *model.StoreError describing why the fallback was used (nil when simply absent).
	Load(ctx context.Context) ([]model.StatusPreset, error)

	// Save replaces the stored preset list.
	Save(ctx context.Context, presets []model.StatusPreset) error
}
