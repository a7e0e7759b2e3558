package snapshot

import (
	"bytes"
	"encoding/json"
	"math"

	da "github.com/lintang-b-s/Windnav/pkg/datastructure"
)

// RawRecord. one position record as published upstream. Fields that are missing, null or not
// numbers decode to NaN so that ingestion can drop the record instead of failing the document.
type RawRecord struct {
	Lat    float64
	Lon    float64
	Alt    float64
	HasAlt bool
}

func NewRawRecord(lat, lon, alt float64) RawRecord {
	return RawRecord{Lat: lat, Lon: lon, Alt: alt, HasAlt: true}
}

func (r RawRecord) GeoPoint() da.GeoPoint {
	return da.GeoPoint{Lat: r.Lat, Lon: r.Lon, Alt: r.Alt, HasAlt: r.HasAlt}
}

type objectRecord struct {
	Latitude  json.RawMessage `json:"latitude"`
	Longitude json.RawMessage `json:"longitude"`
	Altitude  json.RawMessage `json:"altitude"`
}

// UnmarshalJSON accepts [lat, lon] / [lat, lon, alt] arrays and
// {"latitude", "longitude", "altitude"} objects.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = RawRecord{Lat: math.NaN(), Lon: math.NaN()}

	switch {
	case len(data) > 0 && data[0] == '[':
		var fields []json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		if len(fields) > 0 {
			r.Lat = parseNumber(fields[0])
		}
		if len(fields) > 1 {
			r.Lon = parseNumber(fields[1])
		}
		if len(fields) > 2 {
			r.Alt, r.HasAlt = parseNumber(fields[2]), true
		}
	case len(data) > 0 && data[0] == '{':
		var obj objectRecord
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.Lat = parseNumber(obj.Latitude)
		r.Lon = parseNumber(obj.Longitude)
		if len(obj.Altitude) > 0 {
			r.Alt, r.HasAlt = parseNumber(obj.Altitude), true
		}
	}
	return nil
}

func parseNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	var v float64
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || json.Unmarshal(raw, &v) != nil {
		return math.NaN()
	}
	return v
}

// DecodeRecords. bare NaN, Infinity and -Infinity literals, as emitted by Python's json module,
// decode to NaN fields instead of failing the whole document.
func DecodeRecords(data []byte) ([]RawRecord, error) {
	var records []RawRecord
	if err := json.Unmarshal(nullNonFinite(data), &records); err != nil {
		return nil, err
	}
	return records, nil
}

var nonFiniteTokens = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// nullNonFinite. rewrites non-finite number literals outside string literals to null.
// data is returned unchanged when it holds none.
func nullNonFinite(data []byte) []byte {
	var (
		out      []byte
		last     int
		inString bool
		escaped  bool
	)
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			continue
		}
		if c != 'N' && c != 'I' && c != '-' {
			continue
		}
		for _, tok := range nonFiniteTokens {
			if bytes.HasPrefix(data[i:], tok) {
				out = append(out, data[last:i]...)
				out = append(out, "null"...)
				i += len(tok) - 1
				last = i + 1
				break
			}
		}
	}
	if out == nil {
		return data
	}
	return append(out, data[last:]...)
}
