package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for a codec name that is not registered.
var ErrUnknownFormat = errors.New("unknown store format")

// Codec converts the note collection to and from the structured text kept in a slot.
type Codec interface {
	Name() string
	Ext() string
	Marshal(notes []Note) ([]byte, error)
	Unmarshal(data []byte) ([]Note, error)
}

// CodecFor returns the codec registered under name. An empty name selects JSON.
func CodecFor(name string) (Codec, error) {
	switch name {
	case "", "json":
		return jsonCodec{}, nil
	case "yaml", "yml":
		return yamlCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }
func (jsonCodec) Ext() string  { return ".json" }

func (jsonCodec) Marshal(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return json.MarshalIndent(notes, "", "  ")
}

func (jsonCodec) Unmarshal(data []byte) ([]Note, error) {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return notes, nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }
func (yamlCodec) Ext() string  { return ".yaml" }

func (yamlCodec) Marshal(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(notes); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Unmarshal(data []byte) ([]Note, error) {
	var notes []Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return notes, nil
}
