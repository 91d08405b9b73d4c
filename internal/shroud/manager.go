package shroud

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// PropertyKey is the server property holding the zone configuration.
const PropertyKey = "shroud_zones"

// PropertySource supplies string server properties.
// GetString returns def when the key is not set.
type PropertySource interface {
	GetString(ctx context.Context, key, def string) (string, error)
}

// Snapshot is one published zone configuration. Never mutated.
type Snapshot struct {
	Generation  uuid.UUID
	Zones       ZoneSet
	Diagnostics []Diagnostic
	Digest      [blake2b.Size256]byte
	LoadedAt    time.Time

	byRegion map[uint16][]Zone
}

func newSnapshot(raw string, now time.Time) *Snapshot {
	zones, diags := Parse(raw)

	byRegion := make(map[uint16][]Zone)
	for _, z := range zones.All() {
		byRegion[z.RegionID()] = append(byRegion[z.RegionID()], z)
	}

	return &Snapshot{
		Generation:  uuid.New(),
		Zones:       zones,
		Diagnostics: diags,
		Digest:      blake2b.Sum256([]byte(raw)),
		LoadedAt:    now,
		byRegion:    byRegion,
	}
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// Key is the property to read (default: PropertyKey).
	Key string

	// Logger receives reload and diagnostic messages (default: slog.Default()).
	Logger *slog.Logger

	// Metrics is optional.
	Metrics *Metrics
}

// Manager holds the current shroud zone snapshot and reloads it from a
// PropertySource. Queries are lock-free; Reload calls are serialized.
type Manager struct {
	source  PropertySource
	key     string
	logger  *slog.Logger
	metrics *Metrics

	reloadMu sync.Mutex
	current  atomic.Pointer[Snapshot]
}

// NewManager creates a Manager with an empty snapshot.
func NewManager(source PropertySource, cfg ManagerConfig) *Manager {
	if cfg.Key == "" {
		cfg.Key = PropertyKey
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	m := &Manager{
		source:  source,
		key:     cfg.Key,
		logger:  cfg.Logger.With("component", "shroud.manager"),
		metrics: cfg.Metrics,
	}
	m.current.Store(newSnapshot("", time.Now()))
	return m
}

// Reload reads the property and publishes a new snapshot.
// Unchanged text is not reparsed and changed is false.
// On a source error the previous snapshot stays in place.
func (m *Manager) Reload(ctx context.Context) (changed bool, err error) {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	raw, err := m.source.GetString(ctx, m.key, "")
	if err != nil {
		m.metrics.observeReload(reloadFailed)
		return false, fmt.Errorf("reading property %q: %w", m.key, err)
	}

	prev := m.current.Load()
	if blake2b.Sum256([]byte(raw)) == prev.Digest {
		m.metrics.observeReload(reloadUnchanged)
		m.logger.Debug("shroud zones unchanged", "generation", prev.Generation)
		return false, nil
	}

	snap := newSnapshot(raw, time.Now())
	for _, d := range snap.Diagnostics {
		m.logger.Warn("skip shroud zone entry",
			"index", d.Index,
			"entry", d.Entry,
			"kind", d.Kind(),
			"err", d.Err,
		)
		m.metrics.observeDiagnostic(d.Kind())
	}

	m.current.Store(snap)
	m.metrics.observeReload(reloadApplied)
	m.metrics.setZones(snap.Zones.Len(), len(snap.byRegion))

	m.logger.Info("shroud zones loaded",
		"generation", snap.Generation,
		"zones", snap.Zones.Len(),
		"regions", len(snap.byRegion),
		"skipped", len(snap.Diagnostics),
	)

	return true, nil
}

// Snapshot returns the currently published snapshot.
func (m *Manager) Snapshot() *Snapshot {
	return m.current.Load()
}

// Zones returns the current zone set.
func (m *Manager) Zones() ZoneSet {
	return m.current.Load().Zones
}

// ZonesInRegion returns zones anchored in the landblock, in input order.
// The returned slice must not be modified.
func (m *Manager) ZonesInRegion(regionID uint16) []Zone {
	return m.current.Load().byRegion[regionID]
}

// ZoneAt returns the first zone of p's landblock whose trigger radius
// contains p.
func (m *Manager) ZoneAt(p Position) (Zone, bool) {
	for _, z := range m.ZonesInRegion(p.RegionID()) {
		if z.Contains(p) {
			return z, true
		}
	}
	return Zone{}, false
}
