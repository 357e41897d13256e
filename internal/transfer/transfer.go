// Package transfer encodes task collections as JSON or YAML documents.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"todo/internal/task"
)

// Version is the document version written by Encode.
const Version = 1

var (
	// ErrDuplicateID is returned when a document lists the same ID twice.
	ErrDuplicateID = errors.New("duplicate task id")

	// ErrUnsupportedVersion is returned for documents newer than Version.
	ErrUnsupportedVersion = errors.New("unsupported document version")
)

// Format is a document encoding.
type Format int

const (
	JSON Format = iota + 1
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("unknown format: %s", s)
	}
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("cannot infer format from %s (use --format)", path)
	}
	return ParseFormat(ext)
}

// document is the on-disk layout shared by both formats.
type document struct {
	Version int         `json:"version" yaml:"version"`
	Tasks   []task.Task `json:"tasks" yaml:"tasks"`
}

// Encode writes tasks to w.
func Encode(w io.Writer, format Format, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	doc := document{Version: Version, Tasks: tasks}

	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// Decode reads a document from r and validates every task in it.
func Decode(r io.Reader, format Format) ([]task.Task, error) {
	var doc document

	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid json document: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid yaml document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	// Also catches a missing version field and an empty YAML stream.
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	seen := make(map[int]bool, len(doc.Tasks))
	for _, t := range doc.Tasks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if t.ID == 0 {
			// No ID yet; the importer allocates one.
			continue
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true
	}
	return doc.Tasks, nil
}
