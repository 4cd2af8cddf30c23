package compiler

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/storyline/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format identifies the serialisation of a story document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath guesses the format from a file extension. Anything that is not ".json" is YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the on-disk shape of a story.
//
//	title: The Door
//	root: hall
//	nodes:
//	  - id: hall
//	    text: A door stands before you.
//	    choices:
//	      - text: Open it
//	        to: garden
//	        hint: curious
//	  - id: garden
//	    text: Sunlight.
//	    ending: curious
type Document struct {
	Title string         `mapstructure:"title"`
	Root  string         `mapstructure:"root"`
	Nodes []NodeDocument `mapstructure:"nodes"`
}

// NodeDocument is a node entry of a Document.
type NodeDocument struct {
	ID      string           `mapstructure:"id"`
	Text    string           `mapstructure:"text"`
	Ending  string           `mapstructure:"ending"`
	Choices []ChoiceDocument `mapstructure:"choices"`
}

// ChoiceDocument is a choice entry of a NodeDocument.
// Markdown frontmatter embeds it as well, hence the json tags.
type ChoiceDocument struct {
	ID   string `json:"id" mapstructure:"id"`
	Text string `json:"text" mapstructure:"text"`
	To   string `json:"to" mapstructure:"to"`
	Hint string `json:"hint" mapstructure:"hint"`
}

// Parser is responsible for converting raw bytes into a story Definition.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML or JSON story document.
// Unknown keys are rejected so that typos ("hnit") do not silently drop data.
// Graph validation (dangling targets, duplicates) is left to domain.Compile.
func (p *Parser) Parse(data []byte, format Format) (domain.Definition, error) {
	var raw map[string]any

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return domain.Definition{}, fmt.Errorf("failed to parse story json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Definition{}, fmt.Errorf("failed to parse story yaml: %w", err)
		}
	}

	if raw == nil {
		return domain.Definition{}, fmt.Errorf("story document is empty")
	}

	var doc Document
	if err := Decode(raw, &doc); err != nil {
		return domain.Definition{}, err
	}

	return doc.Definition(), nil
}

// Decode maps a generic document (as produced by YAML, JSON or frontmatter parsers) onto out.
func Decode(raw any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode story: %w", err)
	}
	return nil
}

// Definition converts the document into its domain form.
func (d Document) Definition() domain.Definition {
	def := domain.Definition{
		Title: d.Title,
		Root:  d.Root,
		Nodes: make([]domain.Node, 0, len(d.Nodes)),
	}
	for _, n := range d.Nodes {
		def.Nodes = append(def.Nodes, n.Node())
	}
	return def
}

// Node converts the entry into a domain.Node.
func (n NodeDocument) Node() domain.Node {
	node := domain.Node{
		ID:     strings.TrimSpace(n.ID),
		Text:   strings.TrimSpace(n.Text),
		Ending: domain.EndingKind(strings.TrimSpace(n.Ending)),
	}
	for _, c := range n.Choices {
		node.Choices = append(node.Choices, c.Choice())
	}
	return node
}

// Choice converts the entry into a domain.Choice.
func (c ChoiceDocument) Choice() domain.Choice {
	return domain.Choice{
		ID:     strings.TrimSpace(c.ID),
		Text:   c.Text,
		Target: strings.TrimSpace(c.To),
		Hint:   domain.EndingKind(strings.TrimSpace(c.Hint)),
	}
}
