// Package vdom defines the view-tree node type. The reactive engine treats
// view nodes as opaque: they are never observed and never traversed, so
// storing one inside reactive state cannot create dependencies on it.
package vdom

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
	KindFragment             // Grouping without wrapper
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Props holds element attributes.
type Props map[string]any

// VNode is a node of the view tree.
type VNode struct {
	Kind     Kind
	Tag      string
	Props    Props
	Children []*VNode
	Key      string
	Text     string
}

// ReactiveOpaque marks VNode opaque to the reactive engine.
func (n *VNode) ReactiveOpaque() {}

// Element creates an element node.
func Element(tag string, props Props, children ...*VNode) *VNode {
	return &VNode{Kind: KindElement, Tag: tag, Props: props, Children: children}
}

// Text creates a text node.
func Text(text string) *VNode {
	return &VNode{Kind: KindText, Text: text}
}
