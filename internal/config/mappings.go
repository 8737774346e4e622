package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Mapping associates a source language code with a target file name.
type Mapping struct {
	Code   string
	Target string
}

// Mappings is an ordered language mapping table. It decodes from a JSON or
// YAML object and keeps the document order of its keys.
type Mappings []Mapping

// Codes returns the configured language codes in order.
func (m Mappings) Codes() []string {
	codes := make([]string, len(m))
	for i, mapping := range m {
		codes[i] = mapping.Code
	}
	return codes
}

// UnmarshalJSON decodes a JSON object of string values, preserving key order.
func (m *Mappings) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("language_mappings must be an object, got %v", tok)
	}

	var out Mappings
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("language_mappings: unexpected key %v", keyTok)
		}

		var target string
		if err := dec.Decode(&target); err != nil {
			return fmt.Errorf("language_mappings[%q]: %w", code, err)
		}
		out = append(out, Mapping{Code: code, Target: target})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}

// MarshalJSON encodes the table as a JSON object in order.
func (m Mappings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mapping := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(mapping.Code)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(mapping.Target)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping node, preserving key order.
func (m *Mappings) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("language_mappings must be a mapping (line %d)", node.Line)
	}

	out := make(Mappings, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var code, target string
		if err := node.Content[i].Decode(&code); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&target); err != nil {
			return fmt.Errorf("language_mappings[%q]: %w", code, err)
		}
		out = append(out, Mapping{Code: code, Target: target})
	}

	*m = out
	return nil
}

// MarshalYAML encodes the table as an ordered YAML mapping.
func (m Mappings) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, mapping := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: mapping.Code},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: mapping.Target},
		)
	}
	return node, nil
}
