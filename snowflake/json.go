package snowflake

import (
	"bytes"
	"errors"
	"strconv"
)

var ErrNotSnowflake = errors.New("snowflake: value is neither a string nor a number")

// MarshalJSON writes the ID as a quoted decimal string, as Discord does, since
// many JSON consumers lose precision above 2^53.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 22)
	buf = append(buf, '"')
	buf = strconv.AppendUint(buf, uint64(s), 10)
	return append(buf, '"'), nil
}

// UnmarshalJSON accepts a quoted decimal string or a bare number. null leaves
// the value untouched.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	} else if len(data) == 0 || data[0] < '0' || data[0] > '9' {
		return ErrNotSnowflake
	}

	id, err := Parse(string(data))
	if err != nil {
		return err
	}
	*s = id
	return nil
}

func (s Snowflake) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(s), 10), nil
}

func (s *Snowflake) UnmarshalText(text []byte) error {
	id, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = id
	return nil
}
