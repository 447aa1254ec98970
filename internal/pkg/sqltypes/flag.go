// Package sqltypes holds column types that read the same on every supported driver.
package sqltypes

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Flag is a boolean column. SQLite reports booleans as 0/1 integers,
// postgres as bool; both scan to a real boolean.
type Flag bool

func (f *Flag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case []byte:
		return f.parse(string(v))
	case string:
		return f.parse(v)
	default:
		return fmt.Errorf("sqltypes: cannot scan %T into Flag", src)
	}
	return nil
}

func (f *Flag) parse(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true":
		*f = true
	case "0", "f", "false", "":
		*f = false
	default:
		return fmt.Errorf("sqltypes: invalid boolean %q", s)
	}
	return nil
}

func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}
