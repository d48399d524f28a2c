package scene

// DocumentType is the fixed type marker written into serialized scenes.
const DocumentType = "vellum"

// DocumentVersion is the current serialization version.
const DocumentVersion = 2

// FileID identifies an attached binary file. Elements reference files by id;
// the file payloads travel separately from the scene document.
type FileID string

// Element is one drawable item of a scene. It is transport-opaque: the
// exchange layer preserves whatever fields the editor wrote, and only ever
// inspects the identity and deletion markers.
type Element map[string]any

// ID returns the element id, or "" if absent.
func (e Element) ID() string {
	id, _ := e["id"].(string)
	return id
}

// IsDeleted reports whether the element carries a deletion marker.
func (e Element) IsDeleted() bool {
	deleted, _ := e["isDeleted"].(bool)
	return deleted
}

// BinaryFile is an attached file: raw payload plus the metadata that rides
// with it through upload and download.
type BinaryFile struct {
	ID       FileID `json:"id"`
	MimeType string `json:"mimeType"`
	Data     []byte `json:"-"`
	Created  int64  `json:"created"`
}

// Document is a fully-restored scene.
type Document struct {
	Type     string                `json:"type"`
	Version  int                   `json:"version"`
	Source   string                `json:"source,omitempty"`
	Elements []Element             `json:"elements"`
	AppState map[string]any        `json:"appState"`
	Files    map[FileID]BinaryFile `json:"-"`
}
