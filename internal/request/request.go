// Package request defines the JSON envelope for batch patch jobs: one
// document plus an ordered list of change descriptions. Payload text travels
// base64-encoded so diffs with odd bytes survive JSON transport untouched.
// Every envelope is validated against a JSON schema before the engine sees
// it.
package request

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/asynkron/fuzzpatch/pkg/patch"
)

const requestSchema = `{
  "type": "object",
  "required": ["path", "document_b64", "changes"],
  "additionalProperties": false,
  "properties": {
    "path": {"type": "string", "minLength": 1},
    "document_b64": {"type": "string"},
    "changes": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["kind", "payload_b64"],
        "additionalProperties": false,
        "properties": {
          "kind": {"type": "string", "enum": ["diff", "snippet"]},
          "payload_b64": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaLoader     gojsonschema.JSONLoader
	schemaLoaderOnce sync.Once
)

// Change is one change description inside a request.
type Change struct {
	Kind       string `json:"kind"`
	PayloadB64 string `json:"payload_b64"`
}

// Request is a batch patch job for a single document.
type Request struct {
	Path        string   `json:"path"`
	DocumentB64 string   `json:"document_b64"`
	Changes     []Change `json:"changes"`
}

// ValidationError collects every schema violation found in an envelope.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "request failed schema validation"
	}
	return strings.Join(e.Issues, "; ")
}

// Parse validates raw against the request schema and decodes it.
func Parse(raw []byte) (*Request, error) {
	schemaLoaderOnce.Do(func() {
		schemaLoader = gojsonschema.NewStringLoader(requestSchema)
	})

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("request is not valid JSON: %w", err)
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, issue := range result.Errors() {
			verr.Issues = append(verr.Issues, issue.String())
		}
		return nil, verr
	}

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	return &req, nil
}

// Document decodes the request's document into engine lines.
func (r *Request) Document() (patch.Document, error) {
	text, err := decode(r.DocumentB64)
	if err != nil {
		return nil, fmt.Errorf("invalid document_b64: %w", err)
	}
	return patch.SplitLines(text), nil
}

// Payload decodes the change's payload text.
func (c *Change) Payload() (string, error) {
	text, err := decode(c.PayloadB64)
	if err != nil {
		return "", fmt.Errorf("invalid payload_b64: %w", err)
	}
	return text, nil
}

// Run applies every change in order, each observing the document as left by
// the one before. The first failure aborts the whole request; no partially
// patched document is ever returned.
func Run(req *Request) (patch.Document, error) {
	doc, err := req.Document()
	if err != nil {
		return nil, err
	}

	for i, change := range req.Changes {
		payload, err := change.Payload()
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i+1, err)
		}
		var next patch.Document
		switch change.Kind {
		case "diff":
			next, err = patch.ApplyDiff(doc, payload)
		case "snippet":
			var result patch.MergeResult
			result, err = patch.MergeSnippet(doc, patch.SplitLines(payload))
			next = result.Lines
		}
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i+1, err)
		}
		doc = next
	}
	return doc, nil
}

func decode(b64 string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
