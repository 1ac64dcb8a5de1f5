package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/qris/internal/ports/secondary"
)

func TestGetSetting_Default(t *testing.T) {
	service := NewSettingsService(newMockSettingsStore())

	setting, err := service.GetSetting(context.Background(), secondary.SettingShowExperimentalProtocols)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if setting.Value != "false" || !setting.IsDefault {
		t.Errorf("expected default false, got %+v", setting)
	}
}

func TestGetSetting_Unknown(t *testing.T) {
	service := NewSettingsService(newMockSettingsStore())

	_, err := service.GetSetting(context.Background(), "theme")
	if !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}
}

func TestSetSetting(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantErr   bool
		wantValue string
	}{
		{"bool normalised", secondary.SettingShowExperimentalProtocols, "1", false, "true"},
		{"bool false", secondary.SettingShowExperimentalProtocols, "FALSE", false, "false"},
		{"bool rejected", secondary.SettingShowExperimentalProtocols, "maybe", true, ""},
		{"folder stored verbatim", secondary.SettingLocalProtocolFolder, "/data/protocols", false, "/data/protocols"},
		{"unknown key", "theme", "dark", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockSettingsStore()
			service := NewSettingsService(store)

			err := service.SetSetting(context.Background(), tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if len(store.values) != 0 {
					t.Errorf("nothing should be stored on error, got %v", store.values)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if store.values[tt.key] != tt.wantValue {
				t.Errorf("stored %q, want %q", store.values[tt.key], tt.wantValue)
			}
		})
	}
}

func TestSetSetting_StoreError(t *testing.T) {
	store := newMockSettingsStore()
	store.setErr = errors.New("disk full")
	service := NewSettingsService(store)

	err := service.SetSetting(context.Background(), secondary.SettingLocalProtocolFolder, "/x")
	if !errors.Is(err, store.setErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestResetSetting(t *testing.T) {
	store := newMockSettingsStore()
	store.values[secondary.SettingLocalProtocolFolder] = "/data"
	service := NewSettingsService(store)
	ctx := context.Background()

	if err := service.ResetSetting(ctx, secondary.SettingLocalProtocolFolder); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	setting, _ := service.GetSetting(ctx, secondary.SettingLocalProtocolFolder)
	if !setting.IsDefault || setting.Value != "" {
		t.Errorf("expected default after reset, got %+v", setting)
	}

	if err := service.ResetSetting(ctx, "theme"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}
}

func TestListSettings(t *testing.T) {
	store := newMockSettingsStore()
	store.values[secondary.SettingShowExperimentalProtocols] = "true"
	store.values["legacy_key"] = "ignored"
	service := NewSettingsService(store)

	settings, err := service.ListSettings(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(settings) != 2 {
		t.Fatalf("expected 2 known settings, got %d", len(settings))
	}
	if settings[0].Key != secondary.SettingLocalProtocolFolder || !settings[0].IsDefault {
		t.Errorf("unexpected first setting: %+v", settings[0])
	}
	if settings[1].Key != secondary.SettingShowExperimentalProtocols || settings[1].Value != "true" || settings[1].IsDefault {
		t.Errorf("unexpected second setting: %+v", settings[1])
	}
	if settings[1].UpdatedAt == "" {
		t.Error("expected UpdatedAt for stored setting")
	}
}
