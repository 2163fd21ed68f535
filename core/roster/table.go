package roster

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"scouting-hub/core/utils"

	"github.com/xuri/excelize/v2"
)

// ErrNotFound is returned by Load when the spreadsheet does not exist.
var ErrNotFound = errors.New("roster file not found")

// Table is the in-memory roster. It is immutable once loaded.
type Table struct {
	source  string
	records []Record
	skipped int
}

// Empty is the table returned when no spreadsheet could be read.
var Empty = &Table{}

// Load reads the spreadsheet at path. When teamFilter is set only rows whose
// team contains it (case-insensitive) are kept. The returned table is never
// nil: on failure it is Empty together with the error.
func Load(path, teamFilter string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return Empty, fmt.Errorf("failed to read roster %s: %w", path, err)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(bytes.NewReader(raw))
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(raw)
	default:
		return Empty, fmt.Errorf("unsupported roster file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return Empty, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}

	t, err := fromRows(rows, teamFilter)
	if err != nil {
		return Empty, fmt.Errorf("roster %s: %w", path, err)
	}
	t.source = path
	return t, nil
}

// Fallback returns the built-in roster used when no spreadsheet exists.
func Fallback(team string) *Table {
	return &Table{
		source: "builtin",
		records: []Record{
			{Index: 0, FullName: "ALMENARA SANABRIAS, ALVARO", Team: team, Jersey: 1},
			{Index: 1, FullName: "D. ALMENARA SANABRIAS", Team: team, Jersey: 55},
		},
	}
}

// Source is the file the table was loaded from ("" for Empty).
func (t *Table) Source() string {
	return t.source
}

// Len is the number of usable rows.
func (t *Table) Len() int {
	return len(t.records)
}

// IsEmpty reports whether the table has no usable rows.
func (t *Table) IsEmpty() bool {
	return len(t.records) == 0
}

// Skipped is the number of rows dropped for having no player name.
func (t *Table) Skipped() int {
	return t.skipped
}

// All returns every row, in sheet order.
func (t *Table) All() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// RecordsForTeam returns the rows whose team column contains team, compared
// case-insensitively and ignoring accents.
func (t *Table) RecordsForTeam(team string) []Record {
	needle := utils.FoldUpper(team)
	var out []Record
	for _, r := range t.records {
		if strings.Contains(utils.FoldUpper(r.Team), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Teams returns the distinct team names of the table, in first-seen order.
func (t *Table) Teams() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.records {
		key := utils.FoldUpper(r.Team)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(r.Team))
	}
	return out
}

func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	// Peek the header line to guess the delimiter
	line, _ := br.ReadString('\n')
	reader := csv.NewReader(io.MultiReader(strings.NewReader(line), br))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}
	return reader.ReadAll()
}

func readXLSX(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("no sheet")
	}
	return f.GetRows(sheet)
}

func fromRows(rows [][]string, teamFilter string) (*Table, error) {
	t := &Table{}
	if len(rows) == 0 {
		return t, nil
	}

	cols := resolveColumns(rows[0])
	if _, ok := cols[ColPlayer]; !ok {
		return nil, fmt.Errorf("missing column %s", ColPlayer)
	}

	filter := utils.FoldUpper(teamFilter)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec, ok := cols.record(row)
		if !ok {
			t.skipped++
			continue
		}
		if filter != "" && !strings.Contains(utils.FoldUpper(rec.Team), filter) {
			continue
		}
		rec.Index = len(t.records)
		t.records = append(t.records, rec)
	}
	return t, nil
}

// columns maps a normalized header to its cell index.
type columns map[string]int

func resolveColumns(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := cols[key]; key == "" || dup {
			continue
		}
		cols[key] = i
	}
	return cols
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(utils.FoldUpper(h)), " ")
}

func (c columns) cell(row []string, key string) (string, bool) {
	i, ok := c[key]
	if !ok || i >= len(row) {
		return "", false
	}
	v := strings.TrimSpace(row[i])
	return v, v != ""
}

func (c columns) text(row []string, key string) string {
	v, _ := c.cell(row, key)
	return v
}

func (c columns) record(row []string) (Record, bool) {
	name := c.text(row, ColPlayer)
	if name == "" {
		return Record{}, false
	}

	rec := Record{
		FullName: name,
		Team:     c.text(row, ColTeam),
		Jersey:   utils.ToInt(c.text(row, ColJersey)),
		Points:   utils.ToInt(c.text(row, ColPoints)),
		Minutes:  utils.ToFloat(c.text(row, ColMinutes)),
		Games:    utils.ToInt(c.text(row, ColGames)),
		ImageURL: c.text(row, ColImage),
	}
	if rec.Jersey < 0 {
		rec.Jersey = 0
	}
	if v, ok := c.cell(row, ColPosition); ok {
		rec.Position = &v
	}
	if v, ok := c.cell(row, ColHeight); ok {
		rec.Height = &v
	}
	if v, ok := c.cell(row, ColAge); ok {
		age := utils.ToInt(v)
		rec.Age = &age
	}
	return rec, true
}

func isBlank(row []string) bool {
	return strings.TrimSpace(strings.Join(row, "")) == ""
}
