// Package codec wraps the JSON encoding used for component payloads so the
// serialization library is swappable in a single place.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Decode unmarshals raw bytes into a value of type T.
func Decode[T any](bz []byte) (T, error) {
	comp := new(T)
	if err := json.Unmarshal(bz, comp); err != nil {
		return *comp, eris.Wrap(err, "failed to decode component payload")
	}
	return *comp, nil
}

// Encode marshals a component value to JSON.
func Encode(comp any) ([]byte, error) {
	bz, err := json.Marshal(comp)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode component payload")
	}
	return bz, nil
}
