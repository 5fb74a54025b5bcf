package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseMultiYAML reads a skills file: one YAML document per skill, after
// tabs are expanded and {{ .ENV.NAME }} placeholders are filled in.
func ParseMultiYAML(filename string) ([]map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	data = bytes.ReplaceAll(data, []byte("\t"), []byte("    "))

	data, err = PreprocessYAML(data)
	if err != nil {
		return nil, err
	}

	return ParseMultiYAMLFromBytes(data)
}

// ParseMultiYAMLFromBytes decodes every non-empty document in data. Any
// malformed document fails the whole file.
func ParseMultiYAMLFromBytes(data []byte) ([]map[string]any, error) {
	if len(bytes.Trim(data, "- \r\n\t")) == 0 {
		return []map[string]any{}, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var result []map[string]any

	for {
		var doc map[string]any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
		// trailing or doubled --- separators yield empty documents
		if len(doc) > 0 {
			result = append(result, doc)
		}
	}

	return result, nil
}
