package funtext

import (
	"fmt"
	"io"
	"os"
)

// globalDebug enables disposed-node panics, tree depth warnings and engine
// diagnostics. Node operations have no engine or document pointer, so the
// flag is package-wide.
var globalDebug bool

// debugOut is where diagnostics are written. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are printed, and the engine logs each
// processed container and scheduled transition to stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return globalDebug
}

// debugf prints a prefixed diagnostic line when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[funtext] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("funtext debug: %s on disposed node <%s> (ID was %d)", op, n.describe(), n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 64

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugf("warning: tree depth %d exceeds %d (node <%s>)", depth, debugMaxTreeDepth, n.describe())
	}
}

// describe returns a short label for diagnostics.
func (n *Node) describe() string {
	if n.Type == NodeTypeText {
		return "#text"
	}
	if len(n.classes) > 0 {
		return n.Tag + "." + n.classes[0]
	}
	return n.Tag
}
