// File: yaml.go
// Role: YAML front end.
package scenario

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a scenario from YAML source. Unknown keys are rejected.
//
//	name: user-scope
//	steps:
//	  - op: scope
//	    name: main
//	    steps:
//	      - op: node
//	        name: john
//	        label: John
//	expect:
//	  events: ["initialized(John)", "deallocated(John)"]
func ParseYAML(filename string, src []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", filename, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// MarshalYAML renders sc in the format ParseYAML reads.
func MarshalYAML(sc *Scenario) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return nil, fmt.Errorf("scenario: marshal %s: %w", sc.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("scenario: marshal %s: %w", sc.Name, err)
	}

	return buf.Bytes(), nil
}
