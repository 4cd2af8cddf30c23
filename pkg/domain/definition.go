package domain

// Definition is the serialisable form of a story.
// It is what the DSL and the loaders produce, and what Compile consumes.
type Definition struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Root  string `json:"root" yaml:"root"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Compile validates the definition and builds its graph.
func Compile(def Definition) (*Graph, error) {
	g, err := NewGraph(def.Root, def.Nodes...)
	if err != nil {
		return nil, err
	}
	g.title = def.Title
	return g, nil
}
