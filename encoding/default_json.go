// Package encoding is the JSON codec used for gateway payloads.
package encoding

import "github.com/goccy/go-json"

var (
	Marshal   = json.Marshal
	Unmarshal = json.Unmarshal
)

type (
	RawMessage = json.RawMessage
)
