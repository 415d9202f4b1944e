package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Transition is a tween length. In YAML and JSON it is written as a number
// of milliseconds, or as a boolean: false disables animation and true keeps
// DefaultTransition.
type Transition time.Duration

// Duration returns t as a time.Duration.
func (t Transition) Duration() time.Duration {
	return time.Duration(t)
}

func (t *Transition) UnmarshalYAML(node *yaml.Node) error {
	var on bool
	if err := node.Decode(&on); err == nil {
		*t = fromBool(on)
		return nil
	}
	var ms float64
	if err := node.Decode(&ms); err != nil {
		return fmt.Errorf("transition: want milliseconds or a boolean, got %q", node.Value)
	}
	*t = fromMillis(ms)
	return nil
}

func (t Transition) MarshalYAML() (any, error) {
	return time.Duration(t).Milliseconds(), nil
}

func (t *Transition) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "false":
		*t = fromBool(string(data) == "true")
		return nil
	case "null":
		return nil
	}
	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("transition: want milliseconds or a boolean, got %s", data)
	}
	*t = fromMillis(ms)
	return nil
}

func (t Transition) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(time.Duration(t).Milliseconds(), 10)), nil
}

func fromBool(on bool) Transition {
	if on {
		return Transition(DefaultTransition)
	}
	return 0
}

func fromMillis(ms float64) Transition {
	return Transition(time.Duration(ms * float64(time.Millisecond)))
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Merge decodes a JSON object of overrides onto c, leaving c untouched.
func (c Config) Merge(data []byte) (Config, error) {
	out := c
	out.Colors = append([]string(nil), c.Colors...)
	if err := json.Unmarshal(data, &out); err != nil {
		return Config{}, fmt.Errorf("decoding overrides: %w", err)
	}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}
