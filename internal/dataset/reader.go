package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"restaurant-workers/internal/models"
)

// ErrMissingColumn is returned when a required CSV header is absent.
var ErrMissingColumn = errors.New("missing required column")

// Cells pandas would read as NaN.
var naValues = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"NULL": {},
	"null": {},
	"None": {},
	"#N/A": {},
	"<NA>": {},
}

func isNA(s string) bool {
	_, ok := naValues[strings.TrimSpace(s)]
	return ok
}

type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input, expected %s", ErrMissingColumn, strings.Join(required, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return &table{columns: columns, rows: rows}, nil
}

// cell returns the value of column name in row as read, "" when the column
// or the cell is absent.
func (t *table) cell(row []string, name string) (string, bool) {
	i, ok := t.columns[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return row[i], true
}

// key is cell with surrounding whitespace removed. Only ids, prices and
// scores are trimmed; text columns keep their content.
func (t *table) key(row []string, name string) (string, bool) {
	v, ok := t.cell(row, name)
	return strings.TrimSpace(v), ok
}

// parseScore returns nil for NA cells and anything that is not a finite number.
func parseScore(raw string) *float64 {
	if isNA(raw) {
		return nil
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return nil
	}
	return &score
}

// ReadRestaurants parses restaurant rows. Columns id, name and category are
// required; score is optional and empty or non-finite scores stay nil.
func ReadRestaurants(r io.Reader) ([]models.RawRestaurantRecord, error) {
	t, err := readTable(r, []string{"id", "name", "category"})
	if err != nil {
		return nil, fmt.Errorf("restaurants: %w", err)
	}

	out := make([]models.RawRestaurantRecord, 0, len(t.rows))
	for _, row := range t.rows {
		id, _ := t.key(row, "id")
		name, _ := t.cell(row, "name")
		category, _ := t.cell(row, "category")

		rec := models.RawRestaurantRecord{ID: id, Name: name, Category: category}
		if raw, ok := t.key(row, "score"); ok {
			rec.Score = parseScore(raw)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadMenus parses menu rows. Columns restaurant_id, name, price and category
// are required; description is optional.
func ReadMenus(r io.Reader) ([]models.RawMenuRecord, error) {
	t, err := readTable(r, []string{"restaurant_id", "name", "price", "category"})
	if err != nil {
		return nil, fmt.Errorf("menus: %w", err)
	}

	out := make([]models.RawMenuRecord, 0, len(t.rows))
	for _, row := range t.rows {
		rid, _ := t.key(row, "restaurant_id")
		name, _ := t.cell(row, "name")
		category, _ := t.cell(row, "category")

		rec := models.RawMenuRecord{RestaurantID: rid, Name: name, Category: category}
		if desc, ok := t.cell(row, "description"); ok && !isNA(desc) {
			rec.Description = desc
		}
		if price, ok := t.key(row, "price"); ok && !isNA(price) {
			rec.Price = &price
		}
		out = append(out, rec)
	}
	return out, nil
}

// LoadRestaurants reads the restaurants CSV at path.
func LoadRestaurants(path string) ([]models.RawRestaurantRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open restaurants source: %w", err)
	}
	defer f.Close()
	return ReadRestaurants(f)
}

// LoadMenus reads the menus CSV at path.
func LoadMenus(path string) ([]models.RawMenuRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menus source: %w", err)
	}
	defer f.Close()
	return ReadMenus(f)
}
