// Package wire holds the JSON (de)serialization used at the HTTP
// boundary. It exists so the rest of the module only ever sees
// camelCase on the wire and idiomatic Go identifiers everywhere else;
// each resource package's dto.go is the one place that translates
// between the two.
package wire

import (
	jsoniter "github.com/json-iterator/go"
)

// JSON is the shared codec instance. json-iterator is API-compatible
// with encoding/json but notably faster on the hot path of decoding
// large datapoints pages.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

func Marshal(v interface{}) ([]byte, error) {
	return JSON.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return JSON.Unmarshal(data, v)
}
