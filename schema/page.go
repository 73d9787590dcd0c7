package schema

// Metadata carries page level descriptive data.
type Metadata struct {
	Title       LocalizedText  `json:"title"`
	Description *LocalizedText `json:"description,omitempty"`
}

// PageDocument is an ordered list of components addressed by Slug. Component order
// is render order. ID is informational.
type PageDocument struct {
	ID         string      `json:"id"`
	Slug       string      `json:"slug"`
	Components []Component `json:"components"`
	Metadata   Metadata    `json:"metadata"`
}

// Clone returns a deep copy.
func (p *PageDocument) Clone() *PageDocument {
	if p == nil {
		return nil
	}
	out := &PageDocument{
		ID:       p.ID,
		Slug:     p.Slug,
		Metadata: p.Metadata.Clone(),
	}
	out.Components = make([]Component, len(p.Components))
	for i, component := range p.Components {
		out.Components[i] = component.Clone()
	}
	return out
}

// Clone returns a deep copy.
func (m Metadata) Clone() Metadata {
	out := Metadata{Title: m.Title.Clone()}
	if m.Description != nil {
		description := m.Description.Clone()
		out.Description = &description
	}
	return out
}

// IndexOf returns the position of the component with id, or -1.
func (p *PageDocument) IndexOf(id string) int {
	if p == nil {
		return -1
	}
	for i, component := range p.Components {
		if component.ID == id {
			return i
		}
	}
	return -1
}

// Component returns the component with id.
func (p *PageDocument) Component(id string) (Component, bool) {
	idx := p.IndexOf(id)
	if idx < 0 {
		return Component{}, false
	}
	return p.Components[idx], true
}

// ReplaceComponent returns a copy of p with the component sharing next.ID replaced.
func (p *PageDocument) ReplaceComponent(next Component) (*PageDocument, error) {
	idx := p.IndexOf(next.ID)
	if idx < 0 {
		return nil, ErrComponentNotFound
	}
	out := p.Clone()
	out.Components[idx] = next.Clone()
	return out, nil
}
