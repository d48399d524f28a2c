package scene

import (
	"encoding/json"
	"fmt"
)

// ImportedDocument is the all-optional intermediate shape used when parsing
// untrusted decrypted bytes. Fields absent from the payload stay nil and are
// defaulted during Restore; the payload is a best-effort partial document,
// not trusted to match the strict Document shape.
type ImportedDocument struct {
	Type     string         `json:"type"`
	Version  int            `json:"version"`
	Source   string         `json:"source"`
	Elements []Element      `json:"elements"`
	AppState map[string]any `json:"appState"`
}

// Serialize encodes elements and app state into the canonical scene payload.
// Files are never embedded; they are referenced by id and transported
// separately.
func Serialize(elements []Element, appState map[string]any) ([]byte, error) {
	if elements == nil {
		elements = []Element{}
	}
	if appState == nil {
		appState = map[string]any{}
	}
	doc := Document{
		Type:     DocumentType,
		Version:  DocumentVersion,
		Elements: elements,
		AppState: appState,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("serializing scene: %w", err)
	}
	return data, nil
}

// Parse decodes decrypted bytes into the intermediate document. Malformed
// JSON is an error; missing elements or appState are not, and default to
// empty during Restore.
func Parse(data []byte) (*ImportedDocument, error) {
	var imported ImportedDocument
	if err := json.Unmarshal(data, &imported); err != nil {
		return nil, fmt.Errorf("parsing scene payload: %w", err)
	}
	return &imported, nil
}
