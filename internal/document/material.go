package document

import "encoding/json"

// Material is a catalog entry used as a template when a block is dropped
// onto the tree. It is not itself a tree node.
type Material struct {
	ID             string
	WidgetType     string
	DefaultContent Content
	DefaultStyles  *Styles
	Category       string
}

// Clone returns a deep copy of the material.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	out := *m
	if m.DefaultContent != nil {
		out.DefaultContent = m.DefaultContent.CloneContent()
	}
	if m.DefaultStyles != nil {
		st := *m.DefaultStyles
		out.DefaultStyles = &st
	}
	return &out
}

// MarshalJSON emits the material with its default content inlined as a
// self-describing object.
func (m *Material) MarshalJSON() ([]byte, error) {
	content, err := MarshalContent(m.DefaultContent)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ID             string          `json:"id"`
		WidgetType     string          `json:"widgetType"`
		DefaultContent json.RawMessage `json:"defaultContent"`
		DefaultStyles  *Styles         `json:"defaultStyles,omitempty"`
		Category       string          `json:"category,omitempty"`
	}{m.ID, m.WidgetType, content, m.DefaultStyles, m.Category})
}

// UnmarshalJSON decodes a material and its default content union.
func (m *Material) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID             string          `json:"id"`
		WidgetType     string          `json:"widgetType"`
		DefaultContent json.RawMessage `json:"defaultContent"`
		DefaultStyles  *Styles         `json:"defaultStyles"`
		Category       string          `json:"category"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var content Content
	if len(aux.DefaultContent) > 0 && string(aux.DefaultContent) != "null" {
		var err error
		content, err = UnmarshalContent(aux.DefaultContent)
		if err != nil {
			return err
		}
	}
	m.ID = aux.ID
	m.WidgetType = aux.WidgetType
	m.DefaultContent = content
	m.DefaultStyles = aux.DefaultStyles
	m.Category = aux.Category
	return nil
}
