package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tailscale/hujson"

	"minitask/internal/service"
)

var errMissingKey = errors.New("missing key")

// encode renders m as one compact JSON line.
func encode(m service.Model) ([]byte, error) {
	if m.Config == nil {
		m.Config = map[string]any{}
	}
	if m.Tasks == nil {
		m.Tasks = []service.Task{}
	}
	return json.Marshal(m)
}

// decode parses a data line. Comments and trailing commas are accepted so a
// hand-edited segment still loads. Both keys must be present and non-null,
// and every task needs a title.
func decode(data []byte) (service.Model, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return service.Model{}, errors.New("empty data segment")
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return service.Model{}, fmt.Errorf("parse data segment: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(std, &raw); err != nil {
		return service.Model{}, fmt.Errorf("parse data segment: %w", err)
	}
	for _, key := range []string{"config", "tasks"} {
		v, ok := raw[key]
		if !ok || string(v) == "null" {
			return service.Model{}, fmt.Errorf("%w: %s", errMissingKey, key)
		}
	}

	var m service.Model
	// Numbers stay json.Number so a rewrite reproduces them exactly.
	dec := json.NewDecoder(bytes.NewReader(raw["config"]))
	dec.UseNumber()
	if err := dec.Decode(&m.Config); err != nil {
		return service.Model{}, fmt.Errorf("decode config: %w", err)
	}
	if err := json.Unmarshal(raw["tasks"], &m.Tasks); err != nil {
		return service.Model{}, fmt.Errorf("decode tasks: %w", err)
	}
	for i, t := range m.Tasks {
		if strings.TrimSpace(t.Title) == "" {
			return service.Model{}, fmt.Errorf("task %d: %w", i, service.ErrInvalidTask)
		}
	}
	return m, nil
}
