package querybuilder

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

// Columns lists the db-tagged columns of a table model struct in field order.
func Columns(model any) ([]string, error) {
	cols, _, err := fieldsOf(model)
	return cols, err
}

// InsertModels builds one multi-row insert from a slice of table models. All
// rows must share a type.
func InsertModels[T any](table string, rows []T) (*InsertBuilder, error) {
	if len(rows) == 0 {
		return nil, errors.New("insert models: no rows")
	}

	b := InsertInto(table)
	for i, row := range rows {
		cols, vals, err := fieldsOf(row)
		if err != nil {
			return nil, errors.Wrapf(err, "insert models: row %d", i)
		}
		if i == 0 {
			b.Columns(cols...)
		}
		b.Values(vals...)
	}
	return b, nil
}

func fieldsOf(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, errors.Newf("model must be a struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, errors.New("model has no db columns")
	}
	return cols, vals, nil
}
