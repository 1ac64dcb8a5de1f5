package primary

import "context"

// SettingsService defines the primary port for user preferences.
type SettingsService interface {
	// GetSetting returns a known setting, falling back to its default.
	GetSetting(ctx context.Context, key string) (*Setting, error)

	// SetSetting validates and stores a known setting.
	SetSetting(ctx context.Context, key, value string) error

	// ResetSetting removes a stored value so the default applies again.
	ResetSetting(ctx context.Context, key string) error

	// ListSettings returns every known setting ordered by key.
	ListSettings(ctx context.Context) ([]*Setting, error)
}

// Setting represents a preference at the port boundary.
type Setting struct {
	Key       string
	Value     string
	IsDefault bool
	UpdatedAt string
}
