package service

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const quizSchemaURL = "schema://quiz.json"

// quizSchemaJSON is the shape every model reply must have once located.
const quizSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["question", "choices", "correct"],
    "properties": {
      "question": {"type": "string", "minLength": 1},
      "choices": {
        "type": "object",
        "minProperties": 1,
        "additionalProperties": {"type": "string"}
      },
      "correct": {"type": "string", "minLength": 1}
    }
  }
}`

var quizSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	def, err := jsonschema.UnmarshalJSON(strings.NewReader(quizSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse quiz schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(quizSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add quiz schema: %w", err)
	}
	return c.Compile(quizSchemaURL)
})
