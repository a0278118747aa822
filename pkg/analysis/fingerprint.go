package analysis

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// traceSeparator delimits trace names inside the fingerprint preimage. Step
// names are free-form but never contain NUL.
const traceSeparator = byte(0)

// Fingerprint returns the node's cache identity: a 64-bit xxhash rendered as
// 16 hex digits, computed over the chain of names from the root down to this
// node followed by the exact source text of the node's own logic. It never
// depends on snapshot contents or on sibling or descendant logic.
//
// The value is computed once and retained, which is safe because name, source
// and parent are all fixed after construction. Two nodes in different trees
// with equal traces and equal source share an artifact on purpose.
func (n *Node) Fingerprint() string { return n.fingerprint() }

func (n *Node) computeFingerprint() string {
	digest := xxhash.New()

	for _, node := range n.trace() {
		_, _ = digest.WriteString(node.name)
		_, _ = digest.Write([]byte{traceSeparator})
	}
	_, _ = digest.Write([]byte{traceSeparator})
	_, _ = digest.WriteString(n.logic.Source())

	return fmt.Sprintf("%016x", digest.Sum64())
}
