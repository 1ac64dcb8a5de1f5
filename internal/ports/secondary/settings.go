package secondary

import "context"

// Preference keys read from the settings store.
const (
	SettingShowExperimentalProtocols = "show_experimental_protocols"
	SettingLocalProtocolFolder       = "local_protocol_folder"
)

// SettingsStore defines the secondary port for user preferences.
type SettingsStore interface {
	// Get returns the stored value for key. found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every stored setting ordered by key.
	List(ctx context.Context) ([]*SettingRecord, error)
}

// SettingRecord represents a preference as stored in persistence.
type SettingRecord struct {
	Key       string
	Value     string
	UpdatedAt string
}
