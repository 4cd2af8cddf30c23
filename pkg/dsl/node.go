package dsl

import "github.com/aretw0/storyline/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Text sets the narrative text of the node.
func (n *NodeBuilder) Text(content string) *NodeBuilder {
	n.node.Text = content
	return n
}

// Ending marks the node as a terminal outcome of the given kind.
func (n *NodeBuilder) Ending(kind domain.EndingKind) *NodeBuilder {
	n.node.Ending = kind
	return n
}

// Choice appends a choice leading to target.
func (n *NodeBuilder) Choice(text, target string) *ChoiceBuilder {
	n.node.Choices = append(n.node.Choices, domain.Choice{Text: text, Target: target})
	return &ChoiceBuilder{node: n, index: len(n.node.Choices) - 1}
}

// Reflect appends a choice that does not move the cursor.
// Combined with Hint it only shifts the ending tendency.
func (n *NodeBuilder) Reflect(text string) *ChoiceBuilder {
	return n.Choice(text, "")
}

// Build returns the underlying domain.Node.
func (n *NodeBuilder) Build() domain.Node {
	return n.node.Clone()
}

// ChoiceBuilder configures the most recently added choice.
type ChoiceBuilder struct {
	node  *NodeBuilder
	index int
}

// Hint nudges the active ending towards kind when the choice is selected.
func (c *ChoiceBuilder) Hint(kind domain.EndingKind) *ChoiceBuilder {
	c.node.node.Choices[c.index].Hint = kind
	return c
}

// ID sets an explicit choice ID instead of the generated "<node>/<position>".
func (c *ChoiceBuilder) ID(id string) *ChoiceBuilder {
	c.node.node.Choices[c.index].ID = id
	return c
}

// Choice appends another choice to the same node.
func (c *ChoiceBuilder) Choice(text, target string) *ChoiceBuilder {
	return c.node.Choice(text, target)
}

// Reflect appends another non-moving choice to the same node.
func (c *ChoiceBuilder) Reflect(text string) *ChoiceBuilder {
	return c.node.Reflect(text)
}

// Node returns the builder of the node that owns the choice.
func (c *ChoiceBuilder) Node() *NodeBuilder {
	return c.node
}
