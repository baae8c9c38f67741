package configuration

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration that is written as a string in
// configuration files (e.g., "3s", "1m30s").
type Duration time.Duration

// AsDuration converts the value back to a time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON emits the duration in time.Duration's string notation.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON parses the duration using time.ParseDuration().
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("duration %#v is negative", s)
	}
	*d = Duration(v)
	return nil
}
