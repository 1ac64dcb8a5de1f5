package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/example/qris/internal/ports/primary"
	"github.com/example/qris/internal/ports/secondary"
)

// ErrUnknownSetting is returned for keys outside the known preference set.
var ErrUnknownSetting = errors.New("unknown setting")

type settingDef struct {
	key          string
	defaultValue string
	boolean      bool
}

// knownSettings is ordered by key.
var knownSettings = []settingDef{
	{key: secondary.SettingLocalProtocolFolder, defaultValue: ""},
	{key: secondary.SettingShowExperimentalProtocols, defaultValue: "false", boolean: true},
}

func lookupSetting(key string) (settingDef, error) {
	for _, def := range knownSettings {
		if def.key == key {
			return def, nil
		}
	}
	return settingDef{}, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
}

// SettingsServiceImpl implements the SettingsService interface.
type SettingsServiceImpl struct {
	store secondary.SettingsStore
}

// NewSettingsService creates a new SettingsService with injected dependencies.
func NewSettingsService(store secondary.SettingsStore) *SettingsServiceImpl {
	return &SettingsServiceImpl{store: store}
}

// GetSetting returns a known setting, falling back to its default.
func (s *SettingsServiceImpl) GetSetting(ctx context.Context, key string) (*primary.Setting, error) {
	def, err := lookupSetting(key)
	if err != nil {
		return nil, err
	}

	value, found, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	if !found {
		return &primary.Setting{Key: key, Value: def.defaultValue, IsDefault: true}, nil
	}
	return &primary.Setting{Key: key, Value: value}, nil
}

// SetSetting validates and stores a known setting.
// Boolean values are normalised to true/false.
func (s *SettingsServiceImpl) SetSetting(ctx context.Context, key, value string) error {
	def, err := lookupSetting(key)
	if err != nil {
		return err
	}

	if def.boolean {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("setting %s expects a boolean, got %q", key, value)
		}
		value = strconv.FormatBool(b)
	}

	if err := s.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// ResetSetting removes a stored value so the default applies again.
func (s *SettingsServiceImpl) ResetSetting(ctx context.Context, key string) error {
	if _, err := lookupSetting(key); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to reset setting: %w", err)
	}
	return nil
}

// ListSettings returns every known setting ordered by key.
func (s *SettingsServiceImpl) ListSettings(ctx context.Context) ([]*primary.Setting, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	stored := make(map[string]*secondary.SettingRecord, len(records))
	for _, r := range records {
		stored[r.Key] = r
	}

	settings := make([]*primary.Setting, 0, len(knownSettings))
	for _, def := range knownSettings {
		if r, ok := stored[def.key]; ok {
			settings = append(settings, &primary.Setting{Key: def.key, Value: r.Value, UpdatedAt: r.UpdatedAt})
			continue
		}
		settings = append(settings, &primary.Setting{Key: def.key, Value: def.defaultValue, IsDefault: true})
	}
	return settings, nil
}

// boolPreference reads a boolean preference. A nil store or missing key yields def.
func boolPreference(ctx context.Context, store secondary.SettingsStore, key string, def bool) (bool, error) {
	if store == nil {
		return def, nil
	}
	value, found, err := store.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	if !found {
		return def, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return def, fmt.Errorf("preference %s holds non-boolean %q", key, value)
	}
	return b, nil
}

// stringPreference reads a string preference. A nil store or missing key yields "".
func stringPreference(ctx context.Context, store secondary.SettingsStore, key string) (string, error) {
	if store == nil {
		return "", nil
	}
	value, _, err := store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, nil
}

// Ensure SettingsServiceImpl implements the interface
var _ primary.SettingsService = (*SettingsServiceImpl)(nil)
