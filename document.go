package funtext

// Document is the top-level object that owns the node tree and the clock that
// drives animations and deferred callbacks.
type Document struct {
	root  *Node
	sched *Scheduler
}

// NewDocument creates a new document with a pre-created body element as root.
func NewDocument() *Document {
	return &Document{
		root:  NewElement("body"),
		sched: NewScheduler(),
	}
}

// Root returns the document's root element.
func (d *Document) Root() *Node {
	return d.root
}

// Scheduler returns the document clock.
func (d *Document) Scheduler() *Scheduler {
	return d.sched
}

// Time returns the current document time in seconds.
func (d *Document) Time() float64 {
	return d.sched.Now()
}

// Update advances the document clock by dt seconds, firing due callbacks.
func (d *Document) Update(dt float64) {
	d.sched.Update(dt)
}

// QueryClass returns every element carrying class c, depth-first in
// document order. The root itself is included if it matches.
func (d *Document) QueryClass(c string) []*Node {
	var out []*Node
	d.root.Walk(func(n *Node) bool {
		if n.Type == NodeTypeElement && n.HasClass(c) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Contains reports whether n is attached to this document's tree.
func (d *Document) Contains(n *Node) bool {
	if n == nil || n.disposed {
		return false
	}
	return isAncestor(d.root, n)
}
