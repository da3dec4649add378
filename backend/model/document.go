package model

import (
	"encoding/json"
)

// Document is an SBML model document exactly as the model-construction
// engine returned it. It is stored and emitted verbatim and never parsed.
type Document string

// Raw returns the document as it should be embedded in an outbound JSON body.
func (d Document) Raw() json.RawMessage {
	b, _ := d.MarshalJSON()
	return b
}

// MarshalJSON emits the document inline when it already is JSON and as a
// JSON string otherwise.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	if json.Valid([]byte(d)) {
		return []byte(d), nil
	}
	return json.Marshal(string(d))
}

func (d *Document) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ""
		return nil
	}
	*d = Document(data)
	return nil
}
