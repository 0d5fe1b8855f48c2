// Package gdp indexes a wide yearly GDP table by country and resolves loose
// country names against it.
package gdp

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Table layout of the World Bank export.
const (
	headerRows   = 5
	nameCol      = 0
	codeCol      = 1
	firstYearCol = 4
	endYearCol   = 68 // exclusive
	BaseYear     = 1960
	LastYear     = BaseYear + endYearCol - firstYearCol - 1
)

// Point is one yearly observation in USD.
type Point struct {
	Year  int
	Value float64
}

// Index maps countries to their yearly GDP series. A nil *Index behaves as
// an empty one.
type Index struct {
	series map[string]map[int]float64 // code -> year -> value
	codes  map[string]string          // name and lowercase name -> code
	names  []string                   // display names in file order
}

// FromRows builds an index from raw table rows, header rows included.
func FromRows(rows [][]string) *Index {
	idx := &Index{
		series: make(map[string]map[int]float64),
		codes:  make(map[string]string),
	}

	for i, row := range rows {
		if i < headerRows || len(row) <= firstYearCol {
			continue
		}

		name := strings.Trim(row[nameCol], `" `)
		code := strings.Trim(row[codeCol], `" `)

		idx.codes[name] = code
		idx.codes[lower(name)] = code
		idx.names = append(idx.names, name)

		years := make(map[int]float64)
		for col := firstYearCol; col < len(row) && col < endYearCol; col++ {
			cell := strings.Trim(row[col], `" `)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			years[BaseYear+col-firstYearCol] = v
		}
		idx.series[code] = years
	}

	return idx
}

// Len returns the number of country rows indexed.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.names)
}

// Resolve maps a display name to its country code: exact match first, then
// a lowercase match, then the first known name that contains the query or
// is contained in it.
func (idx *Index) Resolve(name string) (string, bool) {
	if idx == nil || strings.TrimSpace(name) == "" {
		return "", false
	}
	if code, ok := idx.codes[name]; ok {
		return code, true
	}
	if code, ok := idx.codes[lower(name)]; ok {
		return code, true
	}
	for _, known := range idx.names {
		if strings.Contains(known, name) || strings.Contains(name, known) {
			if code, ok := idx.codes[known]; ok {
				return code, true
			}
		}
	}
	return "", false
}

// Latest returns the observation for the most recent year on record.
func (idx *Index) Latest(name string) (Point, bool) {
	years, ok := idx.lookup(name)
	if !ok || len(years) == 0 {
		return Point{}, false
	}
	var p Point
	first := true
	for year, v := range years {
		if first || year > p.Year {
			p = Point{Year: year, Value: v}
			first = false
		}
	}
	return p, true
}

// Series returns every observation for a country ordered by year.
func (idx *Index) Series(name string) ([]Point, bool) {
	years, ok := idx.lookup(name)
	if !ok {
		return nil, false
	}
	out := make([]Point, 0, len(years))
	for year, v := range years {
		out = append(out, Point{Year: year, Value: v})
	}
	slices.SortFunc(out, func(a, b Point) int { return a.Year - b.Year })
	return out, true
}

func (idx *Index) lookup(name string) (map[int]float64, bool) {
	code, ok := idx.Resolve(name)
	if !ok {
		return nil, false
	}
	years, ok := idx.series[code]
	return years, ok
}

// FormatMagnitude renders a USD amount with two decimals and a scale word.
func FormatMagnitude(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2f trillion USD", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2f billion USD", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f million USD", v/1e6)
	default:
		return fmt.Sprintf("%.2f USD", v)
	}
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
