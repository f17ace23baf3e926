package ingestion

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achitaan/AR-diagass/internal/entity"
)

// extractText converts an uploaded file into plain text based on its
// extension. Structured formats are flattened so the splitter sees
// readable prose.
func extractText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return string(data), nil
	case ".csv":
		return extractCSV(data)
	case ".json":
		return extractJSON(data)
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFileType, filepath.Ext(filename))
	}
}

// extractCSV renders each row as "header: value" lines so column context
// survives chunking.
func extractCSV(data []byte) (string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", entity.ErrEmptyDocument
	}

	header := records[0]
	var b strings.Builder
	for _, row := range records[1:] {
		for i, value := range row {
			if value == "" {
				continue
			}
			name := fmt.Sprintf("column %d", i+1)
			if i < len(header) {
				name = header[i]
			}
			fmt.Fprintf(&b, "%s: %s\n", name, value)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractJSON(data []byte) (string, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("parse json: %w", err)
	}

	var b strings.Builder
	flattenJSON(&b, "", parsed)
	return b.String(), nil
}

func flattenJSON(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			flattenJSON(b, path, item)
		}
	case []any:
		for i, item := range v {
			flattenJSON(b, fmt.Sprintf("%s[%d]", prefix, i), item)
		}
	case string:
		fmt.Fprintf(b, "%s: %s\n", prefix, v)
	case nil:
	default:
		fmt.Fprintf(b, "%s: %v\n", prefix, v)
	}
}
