// Command scenario-schema emits the JSON schema for scenario documents, used
// to validate and autocomplete scenario YAML in editors.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"stardrift/engine/internal/scenario"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output path for the JSON schema (default stdout)")
	flag.Parse()

	schema, err := buildSchema()
	if err != nil {
		log.Fatalf("scenario-schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("scenario-schema: marshal schema: %v", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("scenario-schema: create output dir: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("scenario-schema: write schema: %v", err)
	}
}

func buildSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.ReflectFromType(reflect.TypeOf(scenario.Document{}))
	if schema == nil {
		return nil, fmt.Errorf("failed to reflect scenario document")
	}
	schema.Version = jsonschema.Version
	schema.Title = "Scenario Document"
	schema.Description = "Star systems, empires, designs and content definitions that assemble a game state."
	return schema, nil
}
