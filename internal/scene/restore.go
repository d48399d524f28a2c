package scene

// Restore merges an imported remote document with local editor state into a
// strict Document. Remote content takes precedence for elements and app
// state; local app state supplies settings the remote never carries (theme,
// zoom, scroll position and other UI preferences). Elements carrying a
// deletion marker are filtered out.
//
// Either side may be nil. The restored document always has an empty files
// map: file payloads are fetched separately, never embedded in the scene.
func Restore(imported *ImportedDocument, localAppState map[string]any, localElements []Element) *Document {
	doc := &Document{
		Type:     DocumentType,
		Version:  DocumentVersion,
		Elements: []Element{},
		AppState: map[string]any{},
		Files:    map[FileID]BinaryFile{},
	}

	elements := localElements
	if imported != nil && imported.Elements != nil {
		elements = imported.Elements
	}
	for _, el := range elements {
		if el.IsDeleted() {
			continue
		}
		doc.Elements = append(doc.Elements, el)
	}

	// Local state first, then the remote overlay, so remote keys win while
	// local-only preferences survive.
	for k, v := range localAppState {
		doc.AppState[k] = v
	}
	if imported != nil {
		for k, v := range imported.AppState {
			doc.AppState[k] = v
		}
		doc.Source = imported.Source
	}

	return doc
}
