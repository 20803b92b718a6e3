// Package importer provides CSV and Excel import of cable types, cables and
// trays. It supports automatic delimiter detection, flexible column mapping,
// and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TrayLayout/internal/model"
)

// Kind selects which records a table holds.
type Kind int

const (
	KindCableTypes Kind = iota
	KindCables
	KindTrays
)

func (k Kind) String() string {
	switch k {
	case KindCableTypes:
		return "cable-types"
	case KindCables:
		return "cables"
	default:
		return "trays"
	}
}

// ParseKind accepts the names printed by Kind.String and a few spellings
// commonly used as sheet names.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cable-types", "cable types", "cabletypes", "types":
		return KindCableTypes, nil
	case "cables", "cable list", "cable schedule":
		return KindCables, nil
	case "trays", "tray list", "cable trays":
		return KindTrays, nil
	}
	return 0, fmt.Errorf("unknown import kind %q", s)
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	CableTypes []model.CableType
	Cables     []model.Cable
	Trays      []model.Tray
	Errors     []string
	Warnings   []string
}

// Apply appends the imported records to a project. Records whose name is
// already present in the project are skipped with a warning.
func (r *ImportResult) Apply(p *model.Project) {
	for _, ct := range r.CableTypes {
		if p.FindCableType(ct.Type) != nil {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Cable type '%s' already exists, skipped", ct.Type))
			continue
		}
		p.CableTypes = append(p.CableTypes, ct)
	}
	tags := make(map[string]bool, len(p.Cables))
	for _, c := range p.Cables {
		tags[c.Tag] = true
	}
	for _, c := range r.Cables {
		if tags[c.Tag] {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Cable '%s' already exists, skipped", c.Tag))
			continue
		}
		tags[c.Tag] = true
		p.Cables = append(p.Cables, c)
	}
	for _, t := range r.Trays {
		if p.FindTray(t.Name) != nil {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Tray '%s' already exists, skipped", t.Name))
			continue
		}
		p.Trays = append(p.Trays, t)
	}
}

func (r *ImportResult) merge(other ImportResult) {
	r.CableTypes = append(r.CableTypes, other.CableTypes...)
	r.Cables = append(r.Cables, other.Cables...)
	r.Trays = append(r.Trays, other.Trays...)
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// ColumnMapping maps column roles to their indices in the data; -1 when absent.
type ColumnMapping map[string]int

type column struct {
	role     string
	required bool
	numeric  bool
	aliases  []string // lowercase
}

// Positional order is the order of the columns.
var schemas = map[Kind][]column{
	KindCableTypes: {
		{role: "type", required: true, aliases: []string{"type", "cable type", "name", "designation"}},
		{role: "purpose", required: true, aliases: []string{"purpose", "usage", "category", "function"}},
		{role: "diameter", required: true, numeric: true, aliases: []string{"diameter", "diameter [mm]", "d", "od", "outer diameter"}},
		{role: "weight", numeric: true, aliases: []string{"weight", "weight [kg/m]", "kg/m", "mass"}},
	},
	KindCables: {
		{role: "tag", required: true, aliases: []string{"tag", "cable tag", "cable", "cable no", "number"}},
		{role: "type", required: true, aliases: []string{"type", "cable type"}},
		{role: "from", aliases: []string{"from", "from location", "source"}},
		{role: "to", aliases: []string{"to", "to location", "destination"}},
		{role: "routing", aliases: []string{"routing", "route", "trays"}},
	},
	KindTrays: {
		{role: "name", required: true, aliases: []string{"name", "tray", "tray name"}},
		{role: "type", aliases: []string{"type", "tray type"}},
		{role: "purpose", required: true, aliases: []string{"purpose", "tray purpose", "usage"}},
		{role: "width", required: true, numeric: true, aliases: []string{"width", "width [mm]", "w"}},
		{role: "height", required: true, numeric: true, aliases: []string{"height", "height [mm]", "h"}},
		{role: "length", numeric: true, aliases: []string{"length", "length [mm]", "l"}},
		{role: "weight", numeric: true, aliases: []string{"weight", "weight [kg/m]", "kg/m"}},
	},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping for kind.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(kind Kind, row []string) (ColumnMapping, bool) {
	cols := schemas[kind]
	mapping := make(ColumnMapping, len(cols))
	for _, c := range cols {
		mapping[c.role] = -1
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, c := range cols {
			if mapping[c.role] != -1 {
				continue
			}
			for _, alias := range c.aliases {
				if normalized == alias {
					isHeader = true
					mapping[c.role] = i
					break
				}
			}
			if mapping[c.role] == i {
				break
			}
		}
	}

	if !isHeader {
		for i, c := range cols {
			mapping[c.role] = i
		}
		return mapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts both "26.5" and "26,5".
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

// parseTrayPurpose maps the full tray purpose text or its short form
// ("A", "Type B", "BC", ...) to the canonical purpose string.
func parseTrayPurpose(s string) (string, bool) {
	for _, p := range model.TrayPurposes() {
		if s == p {
			return p, true
		}
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "type a":
		return model.TrayPurposeTypeA, true
	case "b", "type b":
		return model.TrayPurposeTypeB, true
	case "bc", "type bc":
		return model.TrayPurposeTypeBC, true
	}
	return "", false
}

// rowParser reads one record from a row into result. It returns an error
// message that rejects the row, and an optional warning.
type rowParser func(row []string, m ColumnMapping, rowLabel string, result *ImportResult) (string, string)

var parsers = map[Kind]rowParser{
	KindCableTypes: parseCableTypeRow,
	KindCables:     parseCableRow,
	KindTrays:      parseTrayRow,
}

func parseCableTypeRow(row []string, m ColumnMapping, rowLabel string, result *ImportResult) (string, string) {
	name := getCell(row, m["type"])
	if name == "" {
		return fmt.Sprintf("%s: Missing cable type name", rowLabel), ""
	}

	purposeStr := getCell(row, m["purpose"])
	if _, err := model.ParsePurpose(purposeStr); err != nil {
		return fmt.Sprintf("%s: Unknown purpose '%s'", rowLabel, purposeStr), ""
	}

	diameterStr := getCell(row, m["diameter"])
	if diameterStr == "" {
		return fmt.Sprintf("%s: Missing diameter value", rowLabel), ""
	}
	diameter, err := parseNumber(diameterStr)
	if err != nil {
		return fmt.Sprintf("%s: Invalid diameter '%s'", rowLabel, diameterStr), ""
	}
	if diameter <= 0 {
		return fmt.Sprintf("%s: Diameter must be positive", rowLabel), ""
	}

	var warning string
	var weight float64
	if weightStr := getCell(row, m["weight"]); weightStr != "" {
		weight, err = parseNumber(weightStr)
		if err != nil || weight < 0 {
			weight = 0
			warning = fmt.Sprintf("%s: Invalid weight '%s', defaulting to 0", rowLabel, weightStr)
		}
	}

	result.CableTypes = append(result.CableTypes, model.NewCableType(name, purposeStr, diameter, weight))
	return "", warning
}

func parseCableRow(row []string, m ColumnMapping, rowLabel string, result *ImportResult) (string, string) {
	tag := getCell(row, m["tag"])
	if tag == "" {
		return fmt.Sprintf("%s: Missing cable tag", rowLabel), ""
	}
	typeName := getCell(row, m["type"])
	if typeName == "" {
		return fmt.Sprintf("%s: Missing cable type for '%s'", rowLabel, tag), ""
	}

	c := model.NewCable(tag, nil, getCell(row, m["from"]), getCell(row, m["to"]), getCell(row, m["routing"]))
	c.TypeName = typeName
	result.Cables = append(result.Cables, c)

	if c.Routing == "" {
		return "", fmt.Sprintf("%s: Cable '%s' has no routing", rowLabel, tag)
	}
	return "", ""
}

func parseTrayRow(row []string, m ColumnMapping, rowLabel string, result *ImportResult) (string, string) {
	name := getCell(row, m["name"])
	if name == "" {
		return fmt.Sprintf("%s: Missing tray name", rowLabel), ""
	}

	purposeStr := getCell(row, m["purpose"])
	purpose, ok := parseTrayPurpose(purposeStr)
	if !ok {
		return fmt.Sprintf("%s: Unknown tray purpose '%s'", rowLabel, purposeStr), ""
	}

	dims := make(map[string]float64, 4)
	for _, role := range []string{"width", "height", "length", "weight"} {
		s := getCell(row, m[role])
		if s == "" {
			if role == "width" || role == "height" {
				return fmt.Sprintf("%s: Missing %s value", rowLabel, role), ""
			}
			continue
		}
		v, err := parseNumber(s)
		if err != nil {
			return fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, role, s), ""
		}
		dims[role] = v
	}
	if dims["width"] <= 0 || dims["height"] <= model.CProfileHeight {
		return fmt.Sprintf("%s: Width must be positive and height must exceed the %g mm C-profile", rowLabel, model.CProfileHeight), ""
	}

	t := model.NewTray(name, getCell(row, m["type"]), purpose, dims["width"], dims["height"], dims["length"], dims["weight"])
	result.Trays = append(result.Trays, t)

	if dims["length"] <= 0 {
		return "", fmt.Sprintf("%s: Tray '%s' has no length, weights will be zero", rowLabel, name)
	}
	return "", ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile imports a CSV or Excel file depending on its extension.
func ImportFile(path string, kind Kind) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path, kind)
	default:
		return ImportCSV(path, kind)
	}
}

// ImportCSV imports records of one kind from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, kind Kind) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(kind, records, "Line", result.Warnings)
}

// ImportCSVFromReader imports records from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, kind Kind) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(kind, records, "Line", nil)
}

// ImportExcel imports records of one kind from the first sheet of an Excel file.
func ImportExcel(path string, kind Kind) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(kind, rows, "Row", nil)
}

// ImportWorkbook imports every sheet of a workbook whose name identifies a
// record kind ("Cable types", "Cables", "Trays"). Other sheets are skipped
// with a warning.
func ImportWorkbook(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	imported := 0
	for _, sheet := range f.GetSheetList() {
		kind, err := ParseKind(sheet)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Sheet '%s' skipped: not a cable types, cables or trays sheet", sheet))
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot read sheet '%s': %v", sheet, err))
			continue
		}
		if len(rows) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Sheet '%s' is empty", sheet))
			continue
		}
		result.merge(importFromRows(kind, rows, sheet+" row", nil))
		imported++
	}
	if imported == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "Workbook has no cable types, cables or trays sheet")
	}
	return result
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into records.
func importFromRows(kind Kind, rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	cols := schemas[kind]
	mapping, hasHeader := DetectColumns(kind, rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		for _, c := range cols {
			if c.required && mapping[c.role] == -1 {
				missing = append(missing, strings.ToUpper(c.role[:1])+c.role[1:])
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// An unrecognized header: the first numeric column holds text.
		for i, c := range cols {
			if !c.numeric || i >= len(rows[0]) {
				continue
			}
			if _, err := parseNumber(strings.TrimSpace(rows[0][i])); err != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
			break
		}
	}

	parse := parsers[kind]
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		errMsg, warning := parse(row, mapping, rowLabel, &result)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	}

	return result
}
