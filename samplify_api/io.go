package samplify_api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// readJSON reads a whole file and unmarshals it into the target
func readJSON(path string, target interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := json.Unmarshal(content, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// readDelimited reads a delimited file with a header line and returns one
// column name to value map per row
func readDelimited(path string, separator rune) ([]map[string]string, error) {
	openFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer openFile.Close()

	reader := csv.NewReader(openFile)
	reader.Comma = separator
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := []map[string]string{}
	for _, record := range records[1:] {
		row := map[string]string{}
		for column, name := range header {
			if column < len(record) {
				row[name] = record[column]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// isNullish reports if a raw field value means "not reported"
func isNullish(value string) bool {
	switch strings.TrimSpace(value) {
	case "", "-", "NA", "N/A", "null", "None":
		return true
	}
	return false
}

// safeInt parses an integer field, nullish values become nil
func safeInt(value string) (*int64, error) {
	if isNullish(value) {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", value, err)
	}
	return &parsed, nil
}

// safeFloat parses a float field, nullish values become nil
func safeFloat(value string) (*float64, error) {
	if isNullish(value) {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", value, err)
	}
	return &parsed, nil
}
