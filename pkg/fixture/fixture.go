package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cloudstub/cloudstub/pkg/functions"
	"github.com/cloudstub/cloudstub/pkg/logs"
	"github.com/cloudstub/cloudstub/pkg/objectstore"
	"github.com/cloudstub/cloudstub/pkg/tenant"
)

// Common errors for fixture loading.
var (
	ErrFileNotFound = errors.New("fixture file not found")
	ErrEmptyFile    = errors.New("fixture file is empty")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
)

// Snapshot is one fixture file: a captured slice of a tenant's state,
// replayed into the stores at startup.
type Snapshot struct {
	Account string `json:"account" yaml:"account"`
	Region  string `json:"region" yaml:"region"`

	Logs      LogsSnapshot         `json:"logs,omitempty" yaml:"logs,omitempty"`
	Buckets   []BucketSnapshot     `json:"buckets,omitempty" yaml:"buckets,omitempty"`
	Functions []functions.Function `json:"functions,omitempty" yaml:"functions,omitempty"`
}

// LogsSnapshot captures groups, streams and events for one tenant.
type LogsSnapshot struct {
	Groups  []logs.Group  `json:"groups,omitempty" yaml:"groups,omitempty"`
	Streams []StreamBatch `json:"streams,omitempty" yaml:"streams,omitempty"`
	Events  []EventBatch  `json:"events,omitempty" yaml:"events,omitempty"`
}

// StreamBatch is a group's stream list. An entry with an empty stream
// list is meaningful: it marks the group as known without populating it.
type StreamBatch struct {
	Group   string        `json:"group" yaml:"group"`
	Streams []logs.Stream `json:"streams" yaml:"streams"`
}

// EventBatch is one stream's recorded events.
type EventBatch struct {
	Group  string       `json:"group" yaml:"group"`
	Stream string       `json:"stream" yaml:"stream"`
	Events []logs.Event `json:"events" yaml:"events"`
}

// BucketSnapshot is one object-storage bucket's listing.
type BucketSnapshot struct {
	Name    string               `json:"name" yaml:"name"`
	Objects []objectstore.Object `json:"objects" yaml:"objects"`
}

// Scope returns the tenant scope the snapshot belongs to, defaulting
// missing fields the same way the request resolver does.
func (s *Snapshot) Scope() tenant.Scope {
	sc := tenant.Default()
	if s.Account != "" {
		sc.Account = s.Account
	}
	if s.Region != "" {
		sc.Region = s.Region
	}
	return sc
}

// LoadFile reads a snapshot from a YAML or JSON file; the format is
// picked by extension (.yaml/.yml for YAML, anything else JSON).
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	var snap Snapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("%w in %s: %v", ErrInvalidYAML, path, err)
		}
	default:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("%w in %s: %v", ErrInvalidJSON, path, err)
		}
	}
	return &snap, nil
}

// Importer replays snapshots into the stores in bulk.
type Importer struct {
	Logs      *logs.Store
	Objects   *objectstore.Store
	Functions *functions.Store
}

// Apply replays one snapshot. Groups and streams are registered before
// events so event batches never hit an unknown stream; a batch that
// violates the stream's recorded history surfaces as an error naming
// the offending stream.
func (im *Importer) Apply(snap *Snapshot) error {
	scope := snap.Scope()

	if im.Logs != nil {
		if len(snap.Logs.Groups) > 0 {
			im.Logs.AppendGroups(scope, snap.Logs.Groups)
		}
		for _, batch := range snap.Logs.Streams {
			im.Logs.AppendStreams(scope, batch.Group, batch.Streams)
		}
		for _, batch := range snap.Logs.Events {
			if len(batch.Events) == 0 {
				continue
			}
			if err := im.Logs.AppendEvents(scope, batch.Group, batch.Stream, batch.Events); err != nil {
				return fmt.Errorf("fixture events for %s/%s: %w", batch.Group, batch.Stream, err)
			}
		}
	}

	if im.Objects != nil {
		for _, b := range snap.Buckets {
			im.Objects.AppendObjects(scope, b.Name, b.Objects)
		}
	}

	if im.Functions != nil && len(snap.Functions) > 0 {
		im.Functions.Append(scope, snap.Functions)
	}

	return nil
}

// ApplyPath loads and applies path. A directory applies every .yaml,
// .yml and .json file directly inside it, in name order, so multi-file
// fixture sets replay deterministically.
func (im *Importer) ApplyPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to stat fixture path: %w", err)
	}

	if !info.IsDir() {
		snap, err := LoadFile(path)
		if err != nil {
			return err
		}
		return im.Apply(snap)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		snap, err := LoadFile(filepath.Join(path, name))
		if err != nil {
			return err
		}
		if err := im.Apply(snap); err != nil {
			return fmt.Errorf("fixture %s: %w", name, err)
		}
	}
	return nil
}
