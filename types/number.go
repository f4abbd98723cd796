package types

import (
	"bytes"
	"errors"
	"strconv"
)

var errInvalidNumber = errors.New("invalid number")

// Number is a decimal amount that exchanges encode either as a JSON string or
// as a bare JSON number. The textual form is kept untouched so no precision
// is lost.
type Number string

// UnmarshalJSON decodes quoted and bare numeric values
func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return errInvalidNumber
	}
	*n = Number(data)
	return nil
}

// String returns the textual value
func (n Number) String() string {
	return string(n)
}
