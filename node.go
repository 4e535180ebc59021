package funtext

import (
	"slices"
	"strings"
)

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic; funtext is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Attr is a single element attribute. Attributes keep insertion order so
// documents serialize the way they were parsed.
type Attr struct {
	Key, Val string
}

// --- Node ---

// Node is the fundamental document tree element. A single flat struct is used
// for element and text nodes.
type Node struct {
	// Identity
	ID   uint32
	Type NodeType
	Tag  string // element tag name; empty for text nodes

	// Text content (NodeTypeText)
	Text string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Element data
	classes []string
	attrs   []Attr

	// Inline style
	Style Style

	// Metadata
	UserData any

	// Document time at which the current Style animation was assigned.
	animStart float64

	// Internal
	disposed  bool
	onDispose []func()
}

// NewElement creates an element node with the given tag and classes.
func NewElement(tag string, classes ...string) *Node {
	n := &Node{ID: nextNodeID(), Type: NodeTypeElement, Tag: tag}
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

// NewText creates a text node with the given content.
func NewText(content string) *Node {
	return &Node{ID: nextNodeID(), Type: NodeTypeText, Text: content}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil, this node is a text node, or child is an ancestor
// of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.checkAdd(child, "AddChild")
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	n.checkAdd(child, "AddChildAt")
	if index < 0 || index > len(n.children) {
		panic("funtext: child index out of range")
	}
	if child.Parent != nil {
		if child.Parent == n && n.IndexOf(child) < index {
			index--
		}
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

func (n *Node) checkAdd(child *Node, op string) {
	if child == nil {
		panic("funtext: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, op+" (parent)")
		debugCheckDisposed(child, op+" (child)")
	}
	if n.Type == NodeTypeText {
		panic("funtext: text nodes cannot have children")
	}
	if isAncestor(child, n) {
		panic("funtext: adding child would create a cycle")
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("funtext: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("funtext: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// ReplaceWith puts nodes in this node's position under its parent, in order,
// and detaches this node. Panics if this node has no parent.
func (n *Node) ReplaceWith(nodes ...*Node) {
	parent := n.Parent
	if parent == nil {
		panic("funtext: cannot replace a node without a parent")
	}
	at := parent.IndexOf(n)
	parent.RemoveChildAt(at)
	for i, r := range nodes {
		parent.AddChildAt(r, at+i)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns the index of child among this node's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// TextContent returns the concatenated text of this node and its descendants
// in document order.
func (n *Node) TextContent() string {
	if n.Type == NodeTypeText {
		return n.Text
	}
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *Node) appendText(sb *strings.Builder) {
	for _, c := range n.children {
		if c.Type == NodeTypeText {
			sb.WriteString(c.Text)
			continue
		}
		c.appendText(sb)
	}
}

// Walk calls fn for this node and every descendant, depth-first in document
// order. Returning false from fn skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// --- Classes and attributes ---

// Classes returns the class list. The returned slice MUST NOT be mutated.
func (n *Node) Classes() []string {
	return n.classes
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.classes, c)
}

// AddClass adds c to the class list. Empty and duplicate classes are ignored.
func (n *Node) AddClass(c string) {
	if c == "" || n.HasClass(c) {
		return
	}
	n.classes = append(n.classes, c)
}

// RemoveClass removes c from the class list.
func (n *Node) RemoveClass(c string) {
	n.classes = slices.DeleteFunc(n.classes, func(s string) bool { return s == c })
}

// Attrs returns the attribute list, excluding class and style.
func (n *Node) Attrs() []Attr {
	return n.attrs
}

// Attr returns the value of attribute key and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether attribute key is set.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// SetAttr sets attribute key to val, keeping its position if already present.
func (n *Node) SetAttr(key, val string) {
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			n.attrs[i].Val = val
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Val: val})
}

// --- Disposal ---

// OnDispose registers fn to run once when this node is disposed.
func (n *Node) OnDispose(fn func()) {
	n.onDispose = append(n.onDispose, fn)
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	hooks := n.onDispose
	n.onDispose = nil
	for _, fn := range hooks {
		fn()
	}
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.ID = 0
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
