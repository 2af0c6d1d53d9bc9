package weather

import (
	"encoding/json"
	"strings"
	"time"
)

// Location is a free-text place name as typed by a user, e.g. "London" or "Paris,FR".
type Location string

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return strings.ToLower(strings.TrimSpace(string(l)))
}

// IsEmpty reports whether the location carries no usable text.
func (l Location) IsEmpty() bool {
	return strings.TrimSpace(string(l)) == ""
}

// RawRecord is the provider's decoded JSON body. Its shape is owned by the
// provider; numbers are kept as json.Number.
type RawRecord map[string]any

// Measurement is a provider number kept in its wire form so it renders exactly
// as it was received ("21.5" stays "21.5", "21" stays "21").
type Measurement string

// String returns the wire text of the measurement.
func (m Measurement) String() string {
	return string(m)
}

// Float64 parses the measurement.
func (m Measurement) Float64() (float64, error) {
	return json.Number(m).Float64()
}

// MarshalJSON emits the measurement as a JSON number.
func (m Measurement) MarshalJSON() ([]byte, error) {
	if m == "" {
		return []byte("null"), nil
	}
	return []byte(m), nil
}

// Reading is the normalized view of a RawRecord. A nil field means the
// provider did not report it.
type Reading struct {
	Temperature *Measurement `json:"temperature"`
	Description *string      `json:"description"`
}

// Report is one run of the pipeline for a location.
type Report struct {
	ID        string    `json:"id"`
	Location  Location  `json:"location"`
	Reading   *Reading  `json:"reading,omitempty"`
	Text      string    `json:"text"`
	OK        bool      `json:"ok"`
	CreatedAt time.Time `json:"createdAt"` // always UTC
}
