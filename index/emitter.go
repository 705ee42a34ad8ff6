package index

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Emitter renders a report
type Emitter interface {
	Emit(report *Report) ([]byte, error)
}

// YAMLEmitter renders reports as YAML
type YAMLEmitter struct{}

func (e *YAMLEmitter) Emit(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSONEmitter renders reports as indented JSON
type JSONEmitter struct{}

func (e *JSONEmitter) Emit(report *Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// NewEmitter returns an emitter for format: yaml or json
func NewEmitter(format string) (Emitter, error) {
	switch format {
	case "", "yaml", "yml":
		return &YAMLEmitter{}, nil
	case "json":
		return &JSONEmitter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
