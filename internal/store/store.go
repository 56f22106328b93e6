// Package store persists the ordered list of panel descriptors between runs.
//
// Only identity, kind and title are stored. Weights are never persisted;
// every restored panel starts at the default weight.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	// StateEnv overrides the state file location (for testing).
	StateEnv = "PANELDECK_STATE"
	// DefaultStateFile is the state file path relative to the home directory.
	DefaultStateFile = ".paneldeck/state.json"
)

// Descriptor identifies one persisted panel.
type Descriptor struct {
	ID    string `json:"id" yaml:"id"`
	Kind  string `json:"type" yaml:"type"`
	Title string `json:"title" yaml:"title"`
}

// State is everything persisted for a dashboard.
type State struct {
	Panels   []Descriptor `json:"panels" yaml:"panels"`
	ViewMode string       `json:"view_mode,omitempty" yaml:"view_mode,omitempty"`
}

// IDs returns the descriptor ids in order.
func (s State) IDs() []string {
	ids := make([]string, len(s.Panels))
	for i, d := range s.Panels {
		ids[i] = d.ID
	}
	return ids
}

// Codec serializes State.
type Codec interface {
	Marshal(State) ([]byte, error)
	Unmarshal([]byte, *State) error
}

// JSONCodec reads JSON with comments and trailing commas, writes indented JSON.
type JSONCodec struct{}

// Marshal implements Codec.
func (JSONCodec) Marshal(s State) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Unmarshal implements Codec. A bare array of descriptors is accepted as a
// State with no view mode.
func (JSONCodec) Unmarshal(data []byte, s *State) error {
	clean := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(clean) > 0 && clean[0] == '[' {
		var panels []Descriptor
		if err := json.Unmarshal(clean, &panels); err != nil {
			return fmt.Errorf("decode state json: %w", err)
		}
		*s = State{Panels: panels}
		return nil
	}
	if err := json.Unmarshal(clean, s); err != nil {
		return fmt.Errorf("decode state json: %w", err)
	}
	return nil
}

// YAMLCodec reads and writes YAML.
type YAMLCodec struct{}

// Marshal implements Codec.
func (YAMLCodec) Marshal(s State) ([]byte, error) {
	return yaml.Marshal(s)
}

// Unmarshal implements Codec.
func (YAMLCodec) Unmarshal(data []byte, s *State) error {
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("decode state yaml: %w", err)
	}
	return nil
}

// CodecFor picks a codec from the file extension; JSON unless .yaml/.yml.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

// Store reads and writes State at a single path.
type Store struct {
	path   string
	codec  Codec
	logger *log.Logger
}

// NewStore creates a store at path. An empty path falls back to
// PANELDECK_STATE, then ~/.paneldeck/state.json.
func NewStore(path string, logger *log.Logger) (*Store, error) {
	if path == "" {
		path = os.Getenv(StateEnv)
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, DefaultStateFile)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{path: path, codec: CodecFor(path), logger: logger}, nil
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. A missing or unreadable file yields an empty
// State, as does one that fails to parse. Descriptors with an empty or
// repeated id are dropped.
func (s *Store) Load() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read panel state", "path", s.path, "err", err)
		}
		return State{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return State{}
	}
	var st State
	if err := s.codec.Unmarshal(data, &st); err != nil {
		s.logger.Warn("malformed panel state, starting empty", "path", s.path, "err", err)
		return State{}
	}
	st.Panels = sanitize(st.Panels)
	return st
}

// Save writes st atomically (temp file + rename), creating the directory.
func (s *Store) Save(st State) error {
	data, err := s.codec.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode panel state: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Clear removes the state file. Missing files are not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

func sanitize(descs []Descriptor) []Descriptor {
	seen := make(map[string]struct{}, len(descs))
	out := make([]Descriptor, 0, len(descs))
	for _, d := range descs {
		d.ID = strings.TrimSpace(d.ID)
		if d.ID == "" {
			continue
		}
		if _, dup := seen[d.ID]; dup {
			continue
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	return out
}
