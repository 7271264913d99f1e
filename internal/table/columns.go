// internal/table/columns.go
// Package table projects benchmark rows into filtered, sorted views.
package table

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
)

// ErrUnknownColumn is returned when a sort key names no column of the table.
var ErrUnknownColumn = errors.New("unknown column")

// Kind tells how a column's values are compared.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Column is one sortable field of a row type. Text columns set Text, number
// columns set Number; a column never carries both.
type Column[T any] struct {
	Key    string
	Title  string
	Kind   Kind
	Text   func(T) string
	Number func(T) float64
	// Format renders number cells; nil falls back to the shortest decimal form.
	Format func(float64) string
}

// TextColumn builds a column compared with locale-aware collation.
func TextColumn[T any](key, title string, value func(T) string) Column[T] {
	return Column[T]{Key: key, Title: title, Kind: KindText, Text: value}
}

// NumberColumn builds a column compared numerically.
func NumberColumn[T any](key, title string, value func(T) float64, format func(float64) string) Column[T] {
	return Column[T]{Key: key, Title: title, Kind: KindNumber, Number: value, Format: format}
}

// Numeric reports whether the column holds numbers.
func (c Column[T]) Numeric() bool { return c.Kind == KindNumber }

// Cell renders the column value of row for display.
func (c Column[T]) Cell(row T) string {
	if c.Kind == KindText {
		return c.Text(row)
	}
	v := c.Number(row)
	if c.Format != nil {
		return c.Format(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c Column[T]) compare(coll *collate.Collator, a, b T) int {
	if c.Kind == KindText {
		return coll.CompareString(c.Text(a), c.Text(b))
	}
	return cmp.Compare(c.Number(a), c.Number(b))
}

func (c Column[T]) validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return errors.New("column key is required")
	}
	switch c.Kind {
	case KindText:
		if c.Text == nil || c.Number != nil {
			return fmt.Errorf("column %q: text columns need a text accessor and no number accessor", c.Key)
		}
	case KindNumber:
		if c.Number == nil || c.Text != nil {
			return fmt.Errorf("column %q: number columns need a number accessor and no text accessor", c.Key)
		}
	default:
		return fmt.Errorf("column %q: unsupported kind %s", c.Key, c.Kind)
	}
	return nil
}

// Columns is a validated, ordered set of columns with unique keys.
type Columns[T any] struct {
	list  []Column[T]
	index map[string]int
}

// NewColumns validates cols and indexes them by key.
func NewColumns[T any](cols ...Column[T]) (Columns[T], error) {
	out := Columns[T]{
		list:  make([]Column[T], 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	var errs []error
	for _, c := range cols {
		if err := c.validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := out.index[c.Key]; dup {
			errs = append(errs, fmt.Errorf("duplicate column key %q", c.Key))
			continue
		}
		out.index[c.Key] = len(out.list)
		out.list = append(out.list, c)
	}
	if err := errors.Join(errs...); err != nil {
		return Columns[T]{}, err
	}
	return out, nil
}

// MustColumns is NewColumns for package-level tables; it panics on invalid input.
func MustColumns[T any](cols ...Column[T]) Columns[T] {
	out, err := NewColumns(cols...)
	if err != nil {
		panic(err)
	}
	return out
}

// Lookup returns the column for key or an error wrapping ErrUnknownColumn.
func (cs Columns[T]) Lookup(key string) (Column[T], error) {
	i, ok := cs.index[key]
	if !ok {
		return Column[T]{}, fmt.Errorf("%w %q (have %s)", ErrUnknownColumn, key, strings.Join(cs.Keys(), ", "))
	}
	return cs.list[i], nil
}

// Keys lists column keys in display order.
func (cs Columns[T]) Keys() []string {
	keys := make([]string, len(cs.list))
	for i, c := range cs.list {
		keys[i] = c.Key
	}
	return keys
}

// All returns the columns in display order.
func (cs Columns[T]) All() []Column[T] {
	return append([]Column[T](nil), cs.list...)
}

// Len returns the number of columns.
func (cs Columns[T]) Len() int { return len(cs.list) }
