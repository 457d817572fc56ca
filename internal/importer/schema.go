package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// CurrentVersion is the profile file format version written by Encode.
const CurrentVersion = 1

// Format is a profile file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ProfileFile is the on-disk form of a saved profile.
type ProfileFile struct {
	Version int                  `json:"version" toml:"version"`
	Name    string               `json:"name" toml:"name"`
	Notes   string               `json:"notes,omitempty" toml:"notes,omitempty"`
	Config  domain.ProcessConfig `json:"config" toml:"config"`
}

// ParseFormat accepts "json" or "toml" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown profile format %q (expected json or toml)", s)
}

// FormatFromPath picks the format by file extension. Anything that is not
// .toml is read as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// LoadProfileFile reads and decodes a profile file.
func LoadProfileFile(path string) (*ProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	f, err := Decode(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Decode reads a profile. Fields absent from the input keep the values of
// domain.DefaultConfig, so partial files merge over the defaults. Unknown
// keys are rejected.
func Decode(r io.Reader, format Format) (*ProfileFile, error) {
	f := &ProfileFile{Version: CurrentVersion, Config: domain.DefaultConfig()}

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(f); err != nil {
			return nil, fmt.Errorf("parsing TOML profile: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(f); err != nil {
			return nil, fmt.Errorf("parsing JSON profile: %w", err)
		}
	}
	return f, nil
}

// Encode writes f in the given format.
func Encode(w io.Writer, f *ProfileFile, format Format) error {
	if f.Version == 0 {
		f.Version = CurrentVersion
	}
	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding TOML profile: %w", err)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding JSON profile: %w", err)
		}
	}
	return nil
}
