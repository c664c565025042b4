package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var (
	resultPageSchema    *jsonschema.Schema
	suggestionSetSchema *jsonschema.Schema
)

func init() {
	resultPageSchema = mustCompile("schemas/result_page.json")
	suggestionSetSchema = mustCompile("schemas/suggestion_set.json")
}

func mustCompile(path string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()

	file, err := schemasFS.Open(path)
	if err != nil {
		log.Fatalf("contracts: failed to open embedded schema %s: %v", path, err)
	}
	defer file.Close()

	if err := compiler.AddResource(path, file); err != nil {
		log.Fatalf("contracts: failed to add schema resource %s: %v", path, err)
	}
	schema, err := compiler.Compile(path)
	if err != nil {
		log.Fatalf("contracts: failed to compile schema %s: %v", path, err)
	}
	return schema
}

func validate(schema *jsonschema.Schema, raw []byte) error {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("payload violates schema: %w", err)
	}
	return nil
}

// ValidateResultPage проверяет конверт страницы выдачи по схеме.
func ValidateResultPage(raw []byte) error {
	return validate(resultPageSchema, raw)
}

// ValidateSuggestionSet проверяет конверт автодополнения по схеме.
func ValidateSuggestionSet(raw []byte) error {
	return validate(suggestionSetSchema, raw)
}
