// Package script loads change scripts: batches of statement changes, written
// in TOML or YAML, that can be replayed through a coordinator.
package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidScript     = errors.New("invalid change script")
	ErrUnsupportedFormat = errors.New("unsupported script format")
)

// Op names a change in a script.
type Op string

const (
	OpInsert Op = "insert"
	OpEdit   Op = "edit"
	OpDelete Op = "delete"
)

// Format is the encoding of a script file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// Step is one change. Statement is a script-local name; Start and End are
// character offsets into the statement's text and are required for edits.
type Step struct {
	Statement string `toml:"statement" yaml:"statement"`
	Op        Op     `toml:"op" yaml:"op"`
	Text      string `toml:"text" yaml:"text"`
	Start     *int   `toml:"start" yaml:"start"`
	End       *int   `toml:"end" yaml:"end"`
}

// Batch is a group of steps handed to the coordinator in one call.
type Batch struct {
	Changes []Step `toml:"change" yaml:"change"`
}

// Script is a sequence of batches.
type Script struct {
	Batches []Batch `toml:"batch" yaml:"batch"`
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and validates the script at path.
func Load(path string) (*Script, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte, format Format) (*Script, error) {
	var s Script
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step is well formed. Offsets are only checked
// against each other; their fit against the text is the coordinator's concern.
func (s *Script) Validate() error {
	for i, b := range s.Batches {
		for j, step := range b.Changes {
			if err := step.validate(); err != nil {
				return fmt.Errorf("%w: batch %d change %d: %v", ErrInvalidScript, i+1, j+1, err)
			}
		}
	}
	return nil
}

func (st Step) validate() error {
	if st.Statement == "" {
		return errors.New("missing statement name")
	}
	switch st.Op {
	case OpInsert, OpDelete:
		if st.Start != nil || st.End != nil {
			return fmt.Errorf("%s does not take a range", st.Op)
		}
	case OpEdit:
		if st.Start == nil || st.End == nil {
			return errors.New("edit needs start and end")
		}
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}
