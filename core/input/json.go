package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"presolar/internal/errors"
)

// DecodeJSON reads grains from either a JSON array of records or an object
// with a "grains" array. Records without an ID are numbered.
func DecodeJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Parsing("failed to read grains", err)
	}

	data = bytes.TrimSpace(data)
	var records []Record
	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			Grains []Record `json:"grains"`
		}
		err = json.Unmarshal(data, &doc)
		records = doc.Grains
	} else {
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		if errors.IsType(err, errors.TypeMeasurement) {
			return nil, err
		}
		return nil, errors.Parsing("failed to decode grains", err)
	}

	for i := range records {
		if records[i].ID == "" {
			records[i].ID = fmt.Sprintf("grain-%d", i+1)
		}
	}
	return records, nil
}
