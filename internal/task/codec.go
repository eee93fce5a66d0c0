package task

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// The blob is a JSON array of task objects. Unknown fields are allowed so
// older or newer writers can share a store.
const blobSchemaSource = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title", "dueDate", "priority", "completed"],
		"properties": {
			"id": {"type": "string"},
			"title": {"type": "string"},
			"dueDate": {"type": "string"},
			"priority": {"type": "string"},
			"completed": {"type": "boolean"}
		}
	}
}`

var blobSchema = jsonschema.MustCompileString("taskpad://tasks.schema.json", blobSchemaSource)

// Encode serialises tasks as the stored JSON array.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses and validates a stored blob. Unknown priority names decode
// as Medium.
func Decode(data []byte) ([]Task, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if err := blobSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	for i := range tasks {
		p, err := ParsePriority(string(tasks[i].Priority))
		if err != nil {
			p = PriorityMedium
		}
		tasks[i].Priority = p
	}
	return tasks, nil
}
