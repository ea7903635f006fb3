/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a catalog.
type File struct {
	// Name labels the catalog in metrics. Load defaults it to the file name.
	Name string `json:"name,omitempty" yaml:"name,omitempty" jsonschema:"description=Catalog name used as a metric label"`
	// MaxInstructions overrides the program capacity for every message.
	MaxInstructions int `json:"max_instructions,omitempty" yaml:"max_instructions,omitempty" jsonschema:"minimum=1"`
	// Messages maps message names to their definitions.
	Messages map[string]Message `json:"messages" yaml:"messages" jsonschema:"required"`
}

// Message is one named template.
type Message struct {
	Template string `json:"template" yaml:"template" jsonschema:"required"`
	// Args optionally declares the kind of every argument, in index order.
	// Valid kinds are char, int, float, double, string (str) and wstring (wstr).
	Args        []string `json:"args,omitempty" yaml:"args,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Encoding is a catalog file encoding.
type Encoding int

const (
	YAML Encoding = iota
	JSON
)

func (e Encoding) String() string {
	if e == JSON {
		return "json"
	}
	return "yaml"
}

// EncodingFor picks the encoding from the extension of path.
func EncodingFor(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return 0, fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
}

// Parse decodes a catalog file.
func Parse(data []byte, enc Encoding) (*File, error) {
	var f File
	var err error
	switch enc {
	case JSON:
		err = json.Unmarshal(data, &f)
	default:
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s catalog: %w", enc, err)
	}
	if len(f.Messages) == 0 {
		return nil, fmt.Errorf("catalog has no messages")
	}
	return &f, nil
}

// ReadFile reads and decodes the catalog at path.
func ReadFile(path string) (*File, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	f, err := Parse(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}
