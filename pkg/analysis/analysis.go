// Package analysis implements a dependency-tree caching engine for staged
// computations.
//
// A Node is one processing step. Each step consumes the state snapshot
// produced by its ancestor, may mutate it, and the result is both handed to
// dependent steps and persisted under a fingerprint of the step's own logic.
// Re-running a tree reuses cached artifacts for steps whose fingerprint is
// unchanged and whose ancestors were also satisfied from cache; any ancestor
// that recomputes forces every descendant to recompute as well. After a full
// run at the root, artifacts that were not touched are swept from the store.
//
// Fingerprints are deliberately shallow: they cover a step's own source text,
// not code it invokes indirectly. When such code changes, run with force.
package analysis

import (
	"context"
	"sync"

	"go.trai.ch/zerr"
)

// Node is one step in a rooted analysis tree. Nodes are created once, by New
// or Attach, and never removed; name, logic and parent are fixed for the
// node's lifetime. Artifacts, by contrast, come and go across runs.
type Node struct {
	name     string
	logic    Logic
	parent   *Node
	children []*Node

	store    Store
	reporter Reporter

	trace       func() []*Node
	fingerprint func() string

	// used lives on the root only: fingerprints of every artifact touched
	// during the current run. The sweep at the end of a root run deletes
	// whatever is not in here.
	used map[string]struct{}
}

// Option configures a root node.
type Option func(*Node)

// WithReporter sets the progress reporter for the tree. Nodes attached below
// the root inherit it.
func WithReporter(r Reporter) Option {
	return func(n *Node) {
		if r != nil {
			n.reporter = r
		}
	}
}

// New constructs a root node. The store decides where artifacts live; every
// node attached below the root inherits it. New panics if logic or store is
// nil: both are programming errors, not runtime conditions.
func New(logic Logic, store Store, opts ...Option) *Node {
	if logic == nil {
		panic("analysis: nil logic")
	}
	if store == nil {
		panic("analysis: nil store")
	}
	n := newNode(logic, nil, store, NopReporter{})
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func newNode(logic Logic, parent *Node, store Store, reporter Reporter) *Node {
	n := &Node{
		name:     logic.Name(),
		logic:    logic,
		parent:   parent,
		store:    store,
		reporter: reporter,
	}
	n.trace = sync.OnceValue(n.computeTrace)
	n.fingerprint = sync.OnceValue(n.computeFingerprint)
	return n
}

// Attach constructs a node whose parent is the receiver, appends it to the
// receiver's children and returns it. Children run in attachment order.
// There is no detach; trees only grow.
func (n *Node) Attach(logic Logic) *Node {
	if logic == nil {
		panic("analysis: nil logic")
	}
	child := newNode(logic, n, n.store, n.reporter)
	n.children = append(n.children, child)
	return child
}

// Name returns the step identifier.
func (n *Node) Name() string { return n.name }

// Trace returns the root-to-receiver path, inclusive. It is computed once and
// retained for the node's lifetime: parent links never change after
// attachment, so later growth anywhere in the tree cannot invalidate it.
func (n *Node) Trace() []*Node { return n.trace() }

// Root returns the root of the receiver's tree, possibly the receiver itself.
func (n *Node) Root() *Node { return n.trace()[0] }

func (n *Node) computeTrace() []*Node {
	if n.parent == nil {
		return []*Node{n}
	}
	// Copy rather than append: siblings must not share the parent trace's
	// backing array.
	parent := n.parent.trace()
	out := make([]*Node, len(parent)+1)
	copy(out, parent)
	out[len(parent)] = n
	return out
}

// Run executes the receiver and its whole subtree: depth-first, sequential,
// children in attachment order. initial may be nil, in which case a fresh
// empty snapshot is constructed; a non-nil initial is deep-copied and never
// mutated. force recomputes every step regardless of cached artifacts.
//
// Run returns the receiver's own resulting snapshot. Errors from step logic,
// storage or artifact decoding propagate immediately; nothing is retried, and
// a failed run performs no sweep. Only a root receiver sweeps stale
// artifacts.
func (n *Node) Run(ctx context.Context, initial Snapshot, force bool) (Snapshot, error) {
	n.Root().resetUsed()

	snap, err := initial.Clone()
	if err != nil {
		return nil, err
	}

	out, err := n.run(ctx, snap, force)
	if err != nil {
		return nil, err
	}

	if n.parent == nil {
		if err := n.store.Sweep(n.used); err != nil {
			return nil, zerr.Wrap(err, "cache sweep failed")
		}
	}
	return out, nil
}

// run resolves the receiver's state, recurses into its children and registers
// the touched artifact with the root. The snapshot it receives is private to
// this call.
func (n *Node) run(ctx context.Context, snap Snapshot, force bool) (Snapshot, error) {
	fp := n.fingerprint()
	childForce := force

	switch {
	case force:
		if err := n.execute(ctx, StateRefreshing, fp, snap); err != nil {
			return nil, err
		}
	case n.store.Exists(fp):
		loaded, err := n.loadCached(fp)
		if err != nil {
			return nil, err
		}
		snap = loaded
	default:
		// A miss invalidates every cached descendant: their artifacts were
		// keyed against ancestor output that no longer holds.
		childForce = true
		if err := n.execute(ctx, StateRunning, fp, snap); err != nil {
			return nil, err
		}
	}

	for _, child := range n.children {
		// Copy on every handoff, cache hits included. Handing the same
		// mutable snapshot to two subtrees would leak state across branches.
		handoff, err := snap.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := child.run(ctx, handoff, childForce); err != nil {
			return nil, err
		}
	}

	n.Root().markUsed(fp)
	return snap, nil
}

// execute runs the step logic against snap and persists the result.
func (n *Node) execute(ctx context.Context, state RunState, fp string, snap Snapshot) error {
	span := n.reporter.StepStarted(n.name, state)
	if err := n.logic.Run(ctx, snap); err != nil {
		err = zerr.With(zerr.Wrap(err, "step logic failed"), "step", n.name)
		span.End(err)
		return err
	}
	if err := n.store.Save(fp, snap); err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to save artifact"), "step", n.name)
		span.End(err)
		return err
	}
	span.End(nil)
	return nil
}

func (n *Node) loadCached(fp string) (Snapshot, error) {
	span := n.reporter.StepStarted(n.name, StateCached)
	snap, err := n.store.Load(fp)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to load artifact"), "step", n.name)
		span.End(err)
		return nil, err
	}
	span.End(nil)
	return snap, nil
}

func (n *Node) resetUsed() { n.used = make(map[string]struct{}) }

func (n *Node) markUsed(fp string) { n.used[fp] = struct{}{} }
