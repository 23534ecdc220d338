// Package rules loads the assignment rule table from a CSV file.
package rules

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/worksort/internal/models"
	"github.com/example/worksort/internal/ports/secondary"
)

// Column headers. Target partition, source pattern, and export code are
// mandatory; description is optional.
const (
	ColTargetPartition = "Target Partition"
	ColSourcePattern   = "Source Pattern"
	ColDescription     = "Description"
	ColExportCode      = "Export Code"
)

// CSVSource implements secondary.RuleSource over a header-row CSV file.
type CSVSource struct {
	path string
}

// NewCSVSource creates a rule source reading from the given file.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load parses the rule file. A missing file or missing mandatory column is
// a hard error wrapping ErrRuleSourceInvalid; malformed rows are dropped
// into the warnings slice in file order.
func (s *CSVSource) Load(ctx context.Context) ([]models.Rule, []string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open %s: %v", secondary.ErrRuleSourceInvalid, s.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read header of %s: %v", secondary.ErrRuleSourceInvalid, s.path, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	target, pattern, code, err := mandatoryColumns(cols)
	if err != nil {
		return nil, nil, err
	}
	description, hasDescription := cols[strings.ToLower(ColDescription)]

	var (
		loaded   []models.Rule
		warnings []string
	)
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: dropped, %v", line, err))
			continue
		}

		width := len(record)
		if target >= width || pattern >= width || code >= width {
			warnings = append(warnings, fmt.Sprintf("line %d: dropped, too few fields (%d)", line, width))
			continue
		}
		rule := models.Rule{
			TargetPartition: strings.TrimSpace(record[target]),
			SourcePattern:   strings.TrimSpace(record[pattern]),
			ExportCode:      strings.TrimSpace(record[code]),
		}
		if hasDescription && description < width {
			rule.Description = strings.TrimSpace(record[description])
		}
		if isBlank(rule) {
			continue
		}
		if !rule.Usable() {
			warnings = append(warnings, fmt.Sprintf("line %d: dropped, needs a target partition and a pattern or NO EXPORT", line))
			continue
		}
		loaded = append(loaded, rule)
	}

	return loaded, warnings, nil
}

func mandatoryColumns(cols map[string]int) (target, pattern, code int, err error) {
	var ok bool
	if target, ok = cols[strings.ToLower(ColTargetPartition)]; !ok {
		return 0, 0, 0, fmt.Errorf("%w: missing column %q", secondary.ErrRuleSourceInvalid, ColTargetPartition)
	}
	if pattern, ok = cols[strings.ToLower(ColSourcePattern)]; !ok {
		return 0, 0, 0, fmt.Errorf("%w: missing column %q", secondary.ErrRuleSourceInvalid, ColSourcePattern)
	}
	if code, ok = cols[strings.ToLower(ColExportCode)]; !ok {
		return 0, 0, 0, fmt.Errorf("%w: missing column %q", secondary.ErrRuleSourceInvalid, ColExportCode)
	}
	return target, pattern, code, nil
}

// isBlank reports an entirely empty row, skipped without warning.
func isBlank(r models.Rule) bool {
	return r.TargetPartition == "" && r.SourcePattern == "" && r.ExportCode == "" && r.Description == ""
}
