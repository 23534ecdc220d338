package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/example/worksort/internal/models"
	"github.com/example/worksort/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockItem holds one item plus its attribute maps.
type mockItem struct {
	record    secondary.ItemRecord
	attrs     map[string]string
	typeAttrs map[string]string
}

// mockStore implements secondary.ModelStore in memory.
type mockStore struct {
	mu        sync.Mutex
	items     map[models.ItemID]*mockItem
	partition map[string]string // lower name -> display name

	ensureErr     map[string]error
	setErr        map[models.ItemID]error
	copyErr       func(ids []models.ItemID) error
	syncErr       error
	exclusiveRuns int
}

func newMockStore() *mockStore {
	return &mockStore{
		items:     make(map[models.ItemID]*mockItem),
		partition: make(map[string]string),
		ensureErr: make(map[string]error),
		setErr:    make(map[models.ItemID]error),
		syncErr:   secondary.ErrSyncUnsupported,
	}
}

// addItem registers an item with optional item/type attributes.
func (m *mockStore) addItem(id models.ItemID, category models.Category, attrs, typeAttrs map[string]string) *mockItem {
	item := &mockItem{
		record: secondary.ItemRecord{
			ID:          id,
			Category:    category,
			HasCategory: category != "",
		},
		attrs:     attrs,
		typeAttrs: typeAttrs,
	}
	if item.attrs == nil {
		item.attrs = map[string]string{}
	}
	if item.typeAttrs == nil {
		item.typeAttrs = map[string]string{}
	}
	m.items[id] = item
	return item
}

func (m *mockStore) Item(ctx context.Context, id models.ItemID) (*secondary.ItemRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, secondary.ErrItemNotFound
	}
	record := item.record
	return &record, nil
}

func (m *mockStore) MonitoredItems(ctx context.Context) ([]*secondary.ItemRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.ItemRecord
	for _, item := range m.items {
		if item.record.IsType {
			continue
		}
		record := item.record
		out = append(out, &record)
	}
	return out, nil
}

func (m *mockStore) ItemsByCategory(ctx context.Context, category models.Category) ([]*secondary.ItemRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.ItemRecord
	for _, item := range m.items {
		if item.record.Category == category {
			record := item.record
			out = append(out, &record)
		}
	}
	return out, nil
}

func (m *mockStore) ItemText(ctx context.Context, id models.ItemID, attr string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return "", false, secondary.ErrItemNotFound
	}
	v, ok := item.attrs[attr]
	return v, ok, nil
}

func (m *mockStore) TypeText(ctx context.Context, id models.ItemID, attr string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return "", false, secondary.ErrItemNotFound
	}
	v, ok := item.typeAttrs[attr]
	return v, ok, nil
}

func (m *mockStore) SetPartition(ctx context.Context, id models.ItemID, partition string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.setErr[id]; err != nil {
		return err
	}
	item, ok := m.items[id]
	if !ok {
		return secondary.ErrItemNotFound
	}
	if item.record.PartitionReadOnly {
		return secondary.ErrPartitionReadOnly
	}
	item.record.Partition = partition
	return nil
}

func (m *mockStore) PartitionMembers(ctx context.Context, partition string) ([]models.ItemID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ItemID
	for id, item := range m.items {
		if strings.EqualFold(item.record.Partition, partition) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *mockStore) EnsurePartition(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureErr[strings.ToLower(name)]; err != nil {
		return err
	}
	m.partition[strings.ToLower(name)] = name
	return nil
}

func (m *mockStore) ListPartitions(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, name := range m.partition {
		out = append(out, name)
	}
	return out, nil
}

func (m *mockStore) RunExclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.exclusiveRuns++
	m.mu.Unlock()
	return fn(ctx)
}

func (m *mockStore) CopyItems(ctx context.Context, ids []models.ItemID, dst secondary.Artifact) error {
	if m.copyErr != nil {
		if err := m.copyErr(ids); err != nil {
			return err
		}
	}
	art, ok := dst.(*mockArtifact)
	if !ok {
		return fmt.Errorf("unexpected artifact type %T", dst)
	}
	art.mu.Lock()
	defer art.mu.Unlock()
	art.received = append(art.received, ids...)
	return nil
}

func (m *mockStore) SyncAndRelinquish(ctx context.Context) error {
	return m.syncErr
}

// hasPartition reports whether EnsurePartition saw the name.
func (m *mockStore) hasPartition(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.partition[strings.ToLower(name)]
	return ok
}

// partitionOf returns the item's current partition.
func (m *mockStore) partitionOf(id models.ItemID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id].record.Partition
}

// mockArtifact implements secondary.Artifact in memory.
type mockArtifact struct {
	mu          sync.Mutex
	received    []models.ItemID
	partitions  map[string][]models.ItemID
	noPartition bool
	saveErr     error
	savedPath   string
	closed      bool
}

func (a *mockArtifact) SupportsPartitions() bool { return !a.noPartition }

func (a *mockArtifact) AssignPartition(ctx context.Context, ids []models.ItemID, partition string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.partitions == nil {
		a.partitions = make(map[string][]models.ItemID)
	}
	a.partitions[partition] = append(a.partitions[partition], ids...)
	return nil
}

func (a *mockArtifact) SaveAs(ctx context.Context, path string) error {
	if a.saveErr != nil {
		return a.saveErr
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.savedPath = path
	return nil
}

func (a *mockArtifact) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

// mockArtifactFactory hands out mock artifacts and remembers them.
type mockArtifactFactory struct {
	mu           sync.Mutex
	created      []*mockArtifact
	newErr       error
	saveErr      error
	noPartitions bool
}

func (f *mockArtifactFactory) NewArtifact(ctx context.Context) (secondary.Artifact, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	a := &mockArtifact{saveErr: f.saveErr, noPartition: f.noPartitions}
	f.mu.Lock()
	f.created = append(f.created, a)
	f.mu.Unlock()
	return a, nil
}

// mockRuleSource implements secondary.RuleSource.
type mockRuleSource struct {
	rules    []models.Rule
	warnings []string
	loadErr  error
}

func (m *mockRuleSource) Load(ctx context.Context) ([]models.Rule, []string, error) {
	if m.loadErr != nil {
		return nil, nil, m.loadErr
	}
	return m.rules, m.warnings, nil
}

// mockRunLog collects log lines for assertions.
type mockRunLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *mockRunLog) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *mockRunLog) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, "WARN "+fmt.Sprintf(format, args...))
}

func (l *mockRunLog) Path() string { return "" }
func (l *mockRunLog) Close() error { return nil }

func (l *mockRunLog) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func testLogger() *zap.Logger { return zap.NewNop() }
