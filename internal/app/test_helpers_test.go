package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/qris/internal/models"
	"github.com/example/qris/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.ProtocolSource = (*mockProtocolSource)(nil)
	_ secondary.SettingsStore  = (*mockSettingsStore)(nil)
)

// mockProtocolSource implements secondary.ProtocolSource over in-memory documents.
type mockProtocolSource struct {
	dirs    map[string][]string // dir -> file paths in scan order
	docs    map[string]models.Protocol
	readErr map[string]error
	listErr error
	reads   map[string]int
}

func newMockProtocolSource() *mockProtocolSource {
	return &mockProtocolSource{
		dirs:    make(map[string][]string),
		docs:    make(map[string]models.Protocol),
		readErr: make(map[string]error),
		reads:   make(map[string]int),
	}
}

// add registers a protocol document at dir/name.
func (m *mockProtocolSource) add(dir, name string, p models.Protocol) string {
	path := dir + "/" + name
	m.dirs[dir] = append(m.dirs[dir], path)
	m.docs[path] = p
	return path
}

// addBroken registers a document at dir/name that fails to read with err.
func (m *mockProtocolSource) addBroken(dir, name string, err error) string {
	path := dir + "/" + name
	m.dirs[dir] = append(m.dirs[dir], path)
	m.readErr[path] = err
	return path
}

func (m *mockProtocolSource) ListProtocolFiles(ctx context.Context, dir string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	paths, ok := m.dirs[dir]
	if !ok {
		return nil, fmt.Errorf("%w: %s", secondary.ErrNotDirectory, dir)
	}
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	return sorted, nil
}

func (m *mockProtocolSource) ReadProtocol(ctx context.Context, path string) (models.Protocol, error) {
	m.reads[path]++
	if err, ok := m.readErr[path]; ok {
		return models.Protocol{}, err
	}
	p, ok := m.docs[path]
	if !ok {
		return models.Protocol{}, fmt.Errorf("no such file %s", path)
	}
	return p, nil
}

// mockSettingsStore implements secondary.SettingsStore for testing.
type mockSettingsStore struct {
	values map[string]string
	getErr error
	setErr error
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{values: make(map[string]string)}
}

func (m *mockSettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockSettingsStore) Set(ctx context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsStore) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *mockSettingsStore) List(ctx context.Context) ([]*secondary.SettingRecord, error) {
	var records []*secondary.SettingRecord
	for k, v := range m.values {
		records = append(records, &secondary.SettingRecord{Key: k, Value: v, UpdatedAt: "2024-01-01T00:00:00Z"})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

// protocolDoc builds a minimal valid protocol.
func protocolDoc(code, status string, layers ...models.Layer) models.Protocol {
	return models.Protocol{MachineCode: code, Version: "1", Status: status, Layers: layers}
}

func channelLayer(status string, fields ...models.Field) models.Layer {
	return models.Layer{ID: "CHN", Version: "1", GeomType: models.GeomTypePolygon, Status: status, Fields: fields}
}

func typedField(tag, id string) models.Field {
	ft, _ := models.FieldTypeForTag(tag)
	f := models.Field{ID: id, Version: "1", Type: ft,
		Attributes: []models.Attribute{{Name: "id", Value: id}, {Name: "version", Value: "1"}}}
	if ft == models.FieldTypeList {
		f.Values = []string{"pool", "riffle"}
	}
	return f
}
