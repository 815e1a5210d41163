package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Normalized stop reasons carried in Response.StopReason.
const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
	stopBlocked   = "blocked"
)

var errEmptyResponse = errors.New("empty response")

// finishResponse applies the checks every provider shares once the raw
// output is in hand. A truncated reply is reported as *ErrMaxTokensExceeded
// since a cut-off verdict line can't be trusted. Structured replies are
// unfenced and checked against req.Schema; the returned content is what
// callers should store.
func finishResponse(req Request, content json.RawMessage, stop string) (json.RawMessage, error) {
	switch stop {
	case stopMaxTokens:
		return nil, &ErrMaxTokensExceeded{Content: content}
	case stopBlocked:
		return nil, &ErrInvalidResponse{Content: content, Err: errors.New("response blocked by provider")}
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, &ErrInvalidResponse{Err: errEmptyResponse}
	}
	if req.Schema == nil {
		return content, nil
	}
	content = stripCodeFence(content)
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// stripCodeFence removes a markdown ```json fence some models wrap around
// structured output even when asked not to.
func stripCodeFence(raw json.RawMessage) json.RawMessage {
	b := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(b, []byte("```")) || !bytes.HasSuffix(b, []byte("```")) || len(b) < 6 {
		return raw
	}
	b = b[3 : len(b)-3]
	if nl := bytes.IndexByte(b, '\n'); nl >= 0 && !bytes.ContainsAny(b[:nl], "{[") {
		b = b[nl+1:]
	}
	return json.RawMessage(bytes.TrimSpace(b))
}

// validateResponse checks raw JSON against schema. A nil schema passes.
// Failures are *ErrInvalidResponse carrying the offending content.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return invalid("invalid JSON: %w", err)
	}
	compiled, err := schemas.get(schema)
	if err != nil {
		return invalid("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return invalid("schema validation failed: %w", err)
	}
	return nil
}

// schemaSet compiles each named schema once.
type schemaSet struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

var schemas = &schemaSet{compiled: make(map[string]*jsonschema.Schema)}

func (s *schemaSet) get(schema *Schema) (*jsonschema.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.compiled[schema.Name]; ok {
		return c, nil
	}

	// The compiler wants a decoded JSON document, not Go maps with typed
	// slices, so round-trip the definition.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	url := "schema://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	s.compiled[schema.Name] = compiled
	return compiled, nil
}
