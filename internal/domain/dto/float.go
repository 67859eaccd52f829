package dto

import (
	"bytes"
	"strconv"
)

// Float is a float64 that keeps its zero fraction when serialized: a
// whole-valued price marshals as "2.0", not "2". Declared-float fields must
// stay floats on the wire even when the value happens to be whole.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	b := strconv.AppendFloat(nil, float64(f), 'f', -1, 64)
	if !bytes.ContainsAny(b, ".eE") {
		b = append(b, '.', '0')
	}
	return b, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

func floatPtr(v *float64) *Float {
	if v == nil {
		return nil
	}
	f := Float(*v)
	return &f
}

func floats(vs []*float64) []*Float {
	out := make([]*Float, len(vs))
	for i, v := range vs {
		out[i] = floatPtr(v)
	}
	return out
}
