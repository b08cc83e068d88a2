// Package snowflake encodes and decodes Discord's 64 bit snowflake IDs.
//
// Layout, most significant bit first:
//
//	63..22  milliseconds since Epoch (42 bits)
//	21..17  worker id (5 bits)
//	16..12  process id (5 bits)
//	11..0   per process increment (12 bits)
//
// https://discord.com/developers/docs/reference#snowflakes
package snowflake

import (
	"fmt"
	"strconv"
	"time"
)

// Epoch is the first millisecond of 2015, in unix milliseconds.
const Epoch int64 = 1420070400000

const (
	timestampBits = 42
	workerBits    = 5
	processBits   = 5
	incrementBits = 12

	processShift   = incrementBits
	workerShift    = processShift + processBits
	timestampShift = workerShift + workerBits

	timestampMask = 1<<timestampBits - 1
	workerMask    = 1<<workerBits - 1
	processMask   = 1<<processBits - 1
	incrementMask = 1<<incrementBits - 1
)

// MaxIncrement is the highest increment value before the counter wraps to 0.
const MaxIncrement = incrementMask

// Snowflake is a raw 64 bit ID. The fields are derived from the raw value on
// every access and never stored separately.
type Snowflake uint64

// FromRaw wraps an existing value. The bit pattern is not validated.
func FromRaw(v uint64) Snowflake {
	return Snowflake(v)
}

// Parse reads the decimal representation used on the wire.
func Parse(s string) (Snowflake, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("snowflake: parse %q: %w", s, err)
	}
	return Snowflake(v), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Snowflake {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Encode packs the components into a snowflake. Values wider than their field
// are truncated to the field width. Timestamps before Epoch encode as Epoch.
func Encode(timestamp time.Time, workerID, processID uint8, increment uint16) Snowflake {
	ms := timestamp.UnixMilli() - Epoch
	if ms < 0 {
		ms = 0
	}

	return Snowflake(uint64(ms)&timestampMask<<timestampShift |
		uint64(workerID)&workerMask<<workerShift |
		uint64(processID)&processMask<<processShift |
		uint64(increment)&incrementMask)
}

// Raw returns the underlying 64 bit value.
func (s Snowflake) Raw() uint64 {
	return uint64(s)
}

// UnixMilli returns the creation time in unix milliseconds.
func (s Snowflake) UnixMilli() int64 {
	return int64(uint64(s)>>timestampShift) + Epoch
}

// Timestamp returns the creation time of the ID, in UTC.
func (s Snowflake) Timestamp() time.Time {
	return time.UnixMilli(s.UnixMilli()).UTC()
}

func (s Snowflake) WorkerID() uint8 {
	return uint8(uint64(s) >> workerShift & workerMask)
}

func (s Snowflake) ProcessID() uint8 {
	return uint8(uint64(s) >> processShift & processMask)
}

func (s Snowflake) Increment() uint16 {
	return uint16(uint64(s) & incrementMask)
}

// Components decodes every field of the ID.
func (s Snowflake) Components() Components {
	increment := s.Increment()
	return Components{
		Timestamp: s.Timestamp(),
		WorkerID:  s.WorkerID(),
		ProcessID: s.ProcessID(),
		Increment: &increment,
	}
}

func (s Snowflake) IsZero() bool {
	return s == 0
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
