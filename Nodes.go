package CreditTree

import "golang.org/x/exp/constraints"

// A Node in the CBTree. It owns its key, payload, credit, the derived
// credit aggregate of its subtree, and both child subtrees.
// The zero value is meaningless.
type Node[K ~string, V any, C constraints.Float] struct {
	k    K
	v    V
	c    C // credit owned by this Node alone, independent of key order.
	sum  C // c + l.sum + r.sum; restored by every mutator before returning.
	l, r nodePtr[K, V, C]
}

// Pointer to a Node.
// nil Pointer is meaningless. A nodePtr is considered to be nil if the
// pointer is equal to the nilPtr in CBTree. The value of this node has
// both Node.l, Node.r = itself, and c, sum = 0. k and v are zero values.
type nodePtr[K ~string, V any, C constraints.Float] *Node[K, V, C]

// Key of this Node. Keys can't be changed through a Node as they decide
// its position in the tree.
func (u *Node[K, V, C]) Key() K {
	return u.k
}

// Data returns the payload by pointer so it can be modified in place.
// Payloads take no part in ordering or balancing.
func (u *Node[K, V, C]) Data() *V {
	return &u.v
}

// Credit of this Node alone, excluding its subtrees. Use
// CBTree.UpdateCredit to change it.
func (u *Node[K, V, C]) Credit() C {
	return u.c
}

// refresh recomputes n's aggregate from its own credit and both children's
// aggregates. Both children's aggregates must already be correct, so calls
// happen bottom-up.
// Time: O(1); Space: O(1)
func refresh[K ~string, V any, C constraints.Float](n nodePtr[K, V, C]) {
	n.sum = n.c + n.l.sum + n.r.sum
}

// rotateLeft performs a left rotation on nodePtr n. n is passed by reference
// in order to modify its content. The demoted node's aggregate is recomputed
// first, then the promoted one's, as the latter reads the former.
// Time: O(1); Space: O(1)
func rotateLeft[K ~string, V any, C constraints.Float](n *nodePtr[K, V, C]) {
	r := *n
	rc := r.r
	r.r = rc.l
	rc.l = r
	refresh(r)
	refresh(rc)
	*n = rc
}

// rotateRight performs a right rotation on nodePtr n. n is passed by reference
// in order to modify its content.
// Time: O(1); Space: O(1)
func rotateRight[K ~string, V any, C constraints.Float](n *nodePtr[K, V, C]) {
	r := *n
	lc := r.l
	r.l = lc.r
	lc.r = r
	refresh(r)
	refresh(lc)
	*n = lc
}
