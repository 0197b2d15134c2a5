package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

// ErrEmptyInput is the only file-level parse failure: fewer than two
// non-blank lines (header plus at least one data row) remain after
// cleanup. Everything else degrades to skipped rows plus diagnostics.
var ErrEmptyInput = errors.New("el archivo está vacío o solo contiene el encabezado")

// ParseResult carries every salvageable row, the distinct dates seen
// and one human-readable message per skipped line.
type ParseResult struct {
	Rows   []domain.RosterRecord `json:"rows"`
	Dates  []string              `json:"dates"`
	Errors []string              `json:"errors"`
}

// Parser reconstructs roster records from spreadsheet-exported text.
// Merged cells leave leading columns empty on all but the first row of
// a block; those are filled forward from the last complete row.
type Parser struct {
	verbose bool
}

func NewParser(verbose bool) *Parser {
	return &Parser{verbose: verbose}
}

// Parse processes the whole body. Row-level problems never abort the
// parse; they are recorded and the row is skipped.
func (p *Parser) Parse(raw string) (*ParseResult, error) {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return nil, ErrEmptyInput
	}

	result := &ParseResult{
		Rows:   make([]domain.RosterRecord, 0, len(lines)-1),
		Dates:  make([]string, 0),
		Errors: make([]string, 0),
	}

	// Fill-forward memory for the four merge-prone columns.
	var lastDate, lastDayName, lastLabel, lastTimeRange string
	seenDates := make(map[string]struct{})

	// Line 1 is the header; it is not structurally validated here,
	// ValidateStructure exists for that.
	for i, line := range lines[1:] {
		lineNo := i + 2

		fields := splitFields(line)
		if p.verbose {
			slog.Debug("fila analizada", "línea", lineNo, "columnas", len(fields))
		}

		if len(fields) < 7 {
			result.Errors = append(result.Errors, fmt.Sprintf("línea %d: %d columnas, se esperan al menos 7", lineNo, len(fields)))
			continue
		}

		record := domain.RosterRecord{
			Date:         fields[0],
			DayName:      fields[1],
			ShiftLabel:   fields[2],
			TimeRange:    fields[3],
			EmployeeName: fields[4],
			Position:     fields[5],
			Status:       fields[6],
		}
		if len(fields) > 7 {
			record.CoverageType = fields[7]
		}
		if len(fields) > 8 {
			record.CoverageBranch = fields[8]
		}
		if len(fields) > 9 {
			record.CoverageShift = fields[9]
		}
		if len(fields) > 10 {
			record.RosterName = fields[10]
		}

		// Reconstruct merged cells from the previous complete row.
		if record.Date == "" {
			record.Date = lastDate
		}
		if record.DayName == "" {
			record.DayName = lastDayName
		}
		if record.ShiftLabel == "" {
			record.ShiftLabel = lastLabel
		}
		if record.TimeRange == "" {
			record.TimeRange = lastTimeRange
		}

		if record.Date == "" || record.TimeRange == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("línea %d: falta la fecha o el horario y no hay fila anterior para completarlos", lineNo))
			continue
		}

		if record.EmployeeName == "" && record.Position == "" && record.Status == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("línea %d: la fila no contiene empleado, posición ni estado", lineNo))
			continue
		}

		lastDate = record.Date
		lastDayName = record.DayName
		lastLabel = record.ShiftLabel
		lastTimeRange = record.TimeRange

		seenDates[record.Date] = struct{}{}
		result.Rows = append(result.Rows, record)
	}

	for date := range seenDates {
		result.Dates = append(result.Dates, date)
	}
	sort.Strings(result.Dates)

	return result, nil
}

// ValidateStructure is a cheap pre-check, distinct from a full parse:
// does the header carry the date and time-range columns at all?
// Spanish and English header variants are both accepted.
func ValidateStructure(raw string) (bool, string) {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return false, "el archivo está vacío"
	}

	header := strings.ToLower(lines[0])
	hasDate := strings.Contains(header, "fecha") || strings.Contains(header, "date")
	hasTimeRange := strings.Contains(header, "horario") || strings.Contains(header, "time")

	switch {
	case !hasDate:
		return false, "el encabezado no contiene la columna de fecha"
	case !hasTimeRange:
		return false, "el encabezado no contiene la columna de horario"
	default:
		return true, ""
	}
}

// splitLines normalizes any line-ending style, trims each line and
// drops the blank ones. A UTF-8 BOM on the first line is removed.
func splitLines(raw string) []string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitFields splits one comma-delimited line honoring double-quoted
// fields with embedded commas. Some exporters wrap the entire line in
// one extra pair of quotes; that pair is stripped before splitting.
func splitFields(line string) []string {
	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' &&
		strings.Count(line, `"`) == 2 {
		line = line[1 : len(line)-1]
	}

	var fields []string
	var field strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))

	return fields
}
