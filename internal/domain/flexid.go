package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexID is an identifier that the backend emits sometimes as a JSON number
// and sometimes as a string. It always marshals back out as a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || len(data) == 0 {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// Int returns the numeric value of the id, or 0 if it is not numeric.
func (f FlexID) Int() int {
	n, _ := strconv.Atoi(string(f))
	return n
}
