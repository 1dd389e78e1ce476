// Package parser reads batch input files and cleans language model output.
package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input formats accepted by ParseBatch.
const (
	FormatAuto  = "auto"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatLines = "lines"
)

// ErrNoTexts is returned when the input holds no texts at all.
var ErrNoTexts = errors.New("no texts found in input")

// batchDocument is the object form of a batch: {"texts": [...]}.
type batchDocument struct {
	Texts []interface{} `json:"texts" yaml:"texts"`
}

// ParseBatch extracts requirement texts from data. JSON and YAML input may
// be a list or an object with a "texts" list; non-string entries become
// empty strings so they are reported as invalid items. Plain text input has
// one requirement per line, skipping blank lines and lines starting with #.
func ParseBatch(data []byte, format string) ([]string, error) {
	if format == "" || format == FormatAuto {
		format = detectFormat(data)
	}

	var (
		raw []interface{}
		err error
	)
	switch format {
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatYAML:
		raw, err = decodeYAML(data)
	case FormatLines:
		return parseLines(data)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNoTexts
	}

	texts := make([]string, len(raw))
	for i, v := range raw {
		if s, ok := v.(string); ok {
			texts[i] = s
		}
	}
	return texts, nil
}

func detectFormat(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return FormatLines
	case trimmed[0] == '[' || trimmed[0] == '{':
		return FormatJSON
	case bytes.HasPrefix(trimmed, []byte("- ")) || bytes.HasPrefix(trimmed, []byte("texts:")):
		return FormatYAML
	default:
		return FormatLines
	}
}

func decodeJSON(data []byte) ([]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc batchDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode JSON batch: %w", err)
		}
		return doc.Texts, nil
	}
	var list []interface{}
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("decode JSON batch: %w", err)
	}
	return list, nil
}

func decodeYAML(data []byte) ([]interface{}, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode YAML batch: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.MappingNode {
		var doc batchDocument
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode YAML batch: %w", err)
		}
		return doc.Texts, nil
	}
	var list []interface{}
	if err := root.Decode(&list); err != nil {
		return nil, fmt.Errorf("decode YAML batch: %w", err)
	}
	return list, nil
}

func parseLines(data []byte) ([]string, error) {
	var texts []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		texts = append(texts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	if len(texts) == 0 {
		return nil, ErrNoTexts
	}
	return texts, nil
}
