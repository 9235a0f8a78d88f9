package jsonschema

import (
	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// YAML renders the document as YAML, the form most documentation pipelines
// consume. The round-trip through the JSON form keeps both renderings
// structurally identical.
func (d *Document) YAML() ([]byte, error) {
	data, err := d.JSON()
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := gojson.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}
