package sqltypes

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedJSON is returned when a stored JSON column cannot be decoded.
var ErrMalformedJSON = errors.New("malformed json column")

// JSONList is a list stored as JSON text.
type JSONList[T any] []T

func (l *JSONList[T]) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = JSONList[T]{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("sqltypes: cannot scan %T into JSONList", src)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		*l = JSONList[T]{}
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if items == nil {
		items = []T{}
	}
	*l = items
	return nil
}

func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
