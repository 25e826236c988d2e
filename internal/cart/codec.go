package cart

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Stored carts come back from the durable store as whatever an earlier
// client version wrote: numbers may have been serialized as strings, fields
// may be missing. The flex types re-coerce to numbers and default to 0
// instead of failing the whole restore.

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = 0

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n > 0 {
			*f = flexFloat(n)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64); err == nil && v > 0 {
			*f = flexFloat(v)
		}
	}
	return nil
}

type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = 0

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n > 0 {
			*f = flexInt(n)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v > 0 {
			*f = flexInt(v)
		}
	}
	return nil
}

// storedProduct mirrors models.Product with tolerant numeric decoding.
type storedProduct struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       flexFloat `json:"price"`
	Stock       flexInt   `json:"stock"`
	Images      []string  `json:"images"`
}

// storedLine mirrors models.CartLine in the durable form.
type storedLine struct {
	Product  storedProduct `json:"product"`
	Quantity flexInt       `json:"quantity"`
}
