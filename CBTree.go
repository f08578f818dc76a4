package CreditTree

import (
	"strings"

	"golang.org/x/exp/constraints"
)

// driftTolerance is the absolute error allowed between a stored credit
// aggregate and the recomputed one before it counts as drift. Credits are
// floating point, so exact equality isn't attainable after long runs.
const driftTolerance = 1e-4

// CBTree is a binary search tree ordered by key that allows repeated keys.
// It maintains balance through rotations by comparing the credit sums of
// different subtrees instead of their sizes or heights, so entries holding
// more credit end up closer to the root. Rebalancing is a greedy local
// heuristic: each mutation evaluates one rotation step per ancestor and
// applies it only when it strictly lowers the credit-weighted cost, which
// keeps the depth near O(log n) in practice but gives no formal bound.
// K is the key type, V the payload type, and C the type used for credits
// and their aggregates.
// This struct holds a root pointer and a corresponding nilPtr used
// as nil described in nodePtr.
type CBTree[K ~string, V any, C constraints.Float] struct {
	root   nodePtr[K, V, C] //the root of the tree. It is nilPtr when the tree is empty.
	nilPtr nodePtr[K, V, C] //nilPtr is the pointer used instead of nil here, it follows the description in nodePtr
	//OnDrift, when not nil, is called whenever a mutator observes the given
	//Node's stored aggregate straying from the recomputed one by more than
	//driftTolerance; the second argument is the recomputed value. It is a
	//development-time probe: the operation still completes, nothing is
	//repaired, and a nil OnDrift disables the checks entirely. Hosts that
	//want enforcement can escalate from their handler.
	OnDrift func(*Node[K, V, C], C)
}

// An Entry pairs a key with its payload and credit for bulk construction.
type Entry[K ~string, V any, C constraints.Float] struct {
	Key    K
	Data   V
	Credit C
}

// New returns an empty CBTree satisfying the definitions for nilPtr, root,
// and types. CBTree shouldn't be created directly using struct literal.
func New[K ~string, V any, C constraints.Float]() *CBTree[K, V, C] {
	z := new(Node[K, V, C])
	z.l, z.r = z, z
	return &CBTree[K, V, C]{root: z, nilPtr: z}
}

// From builds a CBTree from the given slice recursively. This is faster than
// repeatedly calling Insert and produces a shape of minimal depth. The slice
// must be sorted ascending by key; repeated keys are fine.
// If safe==true, this function will check if the order condition is met and
// panic with UnsortedSliceError if it is broken. Otherwise, this function
// won't perform the check, and it is up to the caller to ensure the condition
// is met(otherwise the tree will be corrupt). It's suggested to set safe to
// false if the condition is known to hold as this removes redundant checks.
// Time: O(n).
func From[K ~string, V any, C constraints.Float](sli []Entry[K, V, C], safe bool) *CBTree[K, V, C] {
	z := new(Node[K, V, C])
	z.l, z.r = z, z
	var build func([]Entry[K, V, C]) nodePtr[K, V, C]
	if safe {
		build = func(s []Entry[K, V, C]) nodePtr[K, V, C] {
			if len(s) > 0 {
				mid := len(s) >> 1
				l, r := build(s[0:mid]), build(s[mid+1:])
				if (l == z || !(s[mid].Key < l.k)) && (r == z || !(r.k < s[mid].Key)) {
					n := &Node[K, V, C]{k: s[mid].Key, v: s[mid].Data, c: s[mid].Credit, l: l, r: r}
					refresh(n)
					return n
				} else {
					panic(UnsortedSliceError[K]{l.k, s[mid].Key, r.k})
				}
			} else {
				return z
			}
		}
	} else {
		build = func(s []Entry[K, V, C]) nodePtr[K, V, C] {
			if len(s) > 0 {
				mid := len(s) >> 1
				n := &Node[K, V, C]{k: s[mid].Key, v: s[mid].Data, c: s[mid].Credit, l: build(s[0:mid]), r: build(s[mid+1:])}
				refresh(n)
				return n
			} else {
				return z
			}
		}
	}
	return &CBTree[K, V, C]{root: build(sli), nilPtr: z}
}

// TotalCredit [Tree.TotalCredit]
// Time: O(1); Space: O(1)
func (u *CBTree[K, V, C]) TotalCredit() C {
	return u.root.sum
}

// Empty [Tree.Empty]
// Time: O(1); Space: O(1)
func (u *CBTree[K, V, C]) Empty() bool {
	return u.root == u.nilPtr
}

// verify is the aggregate drift probe run by mutators on the unwind. A nil
// OnDrift turns it into a no-op.
func (u *CBTree[K, V, C]) verify(cur nodePtr[K, V, C]) {
	if u.OnDrift == nil {
		return
	}
	want := cur.c + cur.l.sum + cur.r.sum
	if d := cur.sum - want; d > driftTolerance || d < -driftTolerance {
		u.OnDrift(cur, want)
	}
}

// maintain evaluates the four candidate rotations around *curPtr and applies
// the cheapest one when it strictly beats doing nothing. Costs are measured
// in credits; candidates whose required nodes are missing are skipped, and
// ties keep the earliest candidate in the fixed order RR, RL, LL, LR. This is
// one local step, not a recursive repair: each mutation runs it once per
// ancestor on the unwind. Fired rotations leave both relinked nodes'
// aggregates correct; otherwise *curPtr and its aggregate are untouched.
// Returns whether a rotation fired. curPtr is passed by reference.
// Time: O(1); Space: O(1)
func (u *CBTree[K, V, C]) maintain(curPtr *nodePtr[K, V, C]) bool {
	const (
		none = iota
		rr
		rl
		ll
		lr
	)
	cur := *curPtr
	best, pick := C(0), none
	if rc := cur.r; rc != u.nilPtr {
		if c := cur.c + cur.l.sum - rc.c - rc.r.sum; c < best {
			best, pick = c, rr
		}
		if rlc := rc.l; rlc != u.nilPtr {
			if c := cur.c + cur.l.sum - 2*rlc.c - rlc.l.sum - rlc.r.sum; c < best {
				best, pick = c, rl
			}
		}
	}
	if lc := cur.l; lc != u.nilPtr {
		if c := cur.c + cur.r.sum - lc.c - lc.l.sum; c < best {
			best, pick = c, ll
		}
		if lrc := lc.r; lrc != u.nilPtr {
			if c := cur.c + cur.r.sum - 2*lrc.sum - lrc.l.sum - lrc.r.sum; c < best {
				best, pick = c, lr
			}
		}
	}
	switch pick {
	case rr:
		rotateLeft(curPtr)
	case rl:
		rotateRight(&cur.r)
		rotateLeft(curPtr)
	case ll:
		rotateRight(curPtr)
	case lr:
		rotateLeft(&cur.l)
		rotateRight(curPtr)
	default:
		return false
	}
	return true
}

// insert the entry to the subtree rooting at cur recursively. cur is passed
// by reference. Keys not less than cur's go right, so repeated keys chain
// right at insertion time.
func (u *CBTree[K, V, C]) insert(curPtr *nodePtr[K, V, C], k K, v V, c C) {
	cur := *curPtr
	if cur == u.nilPtr {
		*curPtr = &Node[K, V, C]{k: k, v: v, c: c, sum: c, l: u.nilPtr, r: u.nilPtr}
		return
	}
	if k < cur.k {
		u.insert(&cur.l, k, v, c)
	} else {
		u.insert(&cur.r, k, v, c)
	}
	if !u.maintain(curPtr) {
		refresh(cur)
	}
	u.verify(*curPtr)
}

// Insert [Tree.Insert]. Recursive.
// It is a wrapper for insert.
// Time: O(D)
func (u *CBTree[K, V, C]) Insert(k K, v V, c C) {
	u.insert(&u.root, k, v, c)
}

// remove an entry with key k from the subtree rooting at cur recursively.
// cur is passed by reference. Returns false if the removal failed(k doesn't
// exist in u), otherwise true.
func (u *CBTree[K, V, C]) remove(curPtr *nodePtr[K, V, C], k K) bool {
	cur := *curPtr
	if cur == u.nilPtr {
		return false
	}
	removed := true
	if k < cur.k {
		removed = u.remove(&cur.l, k)
	} else if k == cur.k {
		if cur.l == u.nilPtr {
			*curPtr = cur.r
			return true
		} else if cur.r == u.nilPtr {
			*curPtr = cur.l
			return true
		}
		t := cur.r
		for t.l != u.nilPtr {
			t = t.l
		}
		cur.k, cur.v = t.k, t.v //cur keeps its own credit; the successor's goes away with its node.
		u.remove(&cur.r, t.k)
	} else {
		removed = u.remove(&cur.r, k)
	}
	if removed {
		refresh(cur)
		u.maintain(curPtr)
		u.verify(*curPtr)
	}
	return removed
}

// Remove [Tree.Remove]. Recursive.
// It is a wrapper for remove.
// Time: O(D)
func (u *CBTree[K, V, C]) Remove(k K) bool {
	return u.remove(&u.root, k)
}

// updateCredit overwrites the credit of the first entry with key k in the
// subtree rooting at cur recursively. cur is passed by reference. Returns
// false if k doesn't exist in u, otherwise true.
func (u *CBTree[K, V, C]) updateCredit(curPtr *nodePtr[K, V, C], k K, c C) bool {
	cur := *curPtr
	if cur == u.nilPtr {
		return false
	}
	found := true
	if k < cur.k {
		found = u.updateCredit(&cur.l, k, c)
	} else if k == cur.k {
		cur.c = c
	} else {
		found = u.updateCredit(&cur.r, k, c)
	}
	if found {
		refresh(cur)
		u.maintain(curPtr)
		u.verify(*curPtr)
	}
	return found
}

// UpdateCredit [Tree.UpdateCredit]. Recursive.
// It is a wrapper for updateCredit.
// Time: O(D)
func (u *CBTree[K, V, C]) UpdateCredit(k K, c C) bool {
	return u.updateCredit(&u.root, k, c)
}

func (u *CBTree[K, V, C]) findByCredit(cur nodePtr[K, V, C], t C) nodePtr[K, V, C] {
	if cur == u.nilPtr {
		return nil
	}
	if ls := cur.l.sum; t < ls {
		return u.findByCredit(cur.l, t)
	} else if t < ls+cur.c {
		return cur
	} else {
		return u.findByCredit(cur.r, t-ls-cur.c)
	}
}

// FindByCredit [Tree.FindByCredit]. Recursive.
// The left subtree's aggregate acts as the cursor: targets below it descend
// left unchanged, targets within this entry's credit span stop here, and the
// rest descend right with the span subtracted. Targets at or above
// TotalCredit() fall through to nil.
// Time: O(D)
func (u *CBTree[K, V, C]) FindByCredit(t C) *Node[K, V, C] {
	return u.findByCredit(u.root, t)
}

// collect every entry with key k in the whole subtree rooting at cur, in
// in-order. Rotations can move repeated keys to either side of their common
// ancestor, so both children are searched without comparison pruning.
func (u *CBTree[K, V, C]) collect(cur nodePtr[K, V, C], k K, out []*Node[K, V, C]) []*Node[K, V, C] {
	if cur == u.nilPtr {
		return out
	}
	out = u.collect(cur.l, k, out)
	if cur.k == k {
		out = append(out, cur)
	}
	return u.collect(cur.r, k, out)
}

func (u *CBTree[K, V, C]) findByKey(cur nodePtr[K, V, C], k K) []*Node[K, V, C] {
	if cur == u.nilPtr {
		return nil
	}
	if k < cur.k {
		return u.findByKey(cur.l, k)
	} else if k == cur.k {
		return u.collect(cur, k, nil)
	}
	return u.findByKey(cur.r, k)
}

// FindByKey [Tree.FindByKey]. Recursive.
// Descends by comparison until the first equal key, then switches to collect.
// Time: O(D + m) where m is the size of the first equal entry's subtree.
func (u *CBTree[K, V, C]) FindByKey(k K) []*Node[K, V, C] {
	return u.findByKey(u.root, k)
}

func (u *CBTree[K, V, C]) findByPrefix(cur nodePtr[K, V, C], p K, out []*Node[K, V, C]) []*Node[K, V, C] {
	if cur == u.nilPtr {
		return out
	}
	if strings.HasPrefix(string(cur.k), string(p)) {
		//matches aren't confined to one side once rotations have fired, so
		//both children are searched from a matching entry.
		out = append(out, cur)
		out = u.findByPrefix(cur.l, p, out)
		return u.findByPrefix(cur.r, p, out)
	}
	if p < cur.k {
		return u.findByPrefix(cur.l, p, out)
	}
	return u.findByPrefix(cur.r, p, out)
}

// FindByPrefix [Tree.FindByPrefix]. Recursive.
// Time: O(D + m) where m is the number of entries visited under matches.
func (u *CBTree[K, V, C]) FindByPrefix(p K) []*Node[K, V, C] {
	return u.findByPrefix(u.root, p, nil)
}

// InOrder [Tree.InOrder]
// Time: f(): amortized O(1) at each call to the returned function. Space: O(1)
func (u *CBTree[K, V, C]) InOrder() func() (*Node[K, V, C], bool) {
	cur := u.root
	return func() (r *Node[K, V, C], has bool) {
		if cur == u.nilPtr {
			return
		} else {
			has = true
			for cur != u.nilPtr {
				if cur.l == u.nilPtr {
					r = cur
					cur = cur.r
					break
				} else {
					p := cur.l
					for p.r != u.nilPtr && p.r != cur {
						p = p.r
					}
					if p.r != cur {
						p.r = cur
						cur = cur.l
					} else {
						p.r = u.nilPtr
						r = cur
						cur = cur.r
						break
					}
				}
			}
			return
		}

	}
}

func (u *CBTree[K, V, C]) corrupt(cur nodePtr[K, V, C]) bool {
	if cur == u.nilPtr {
		return false
	}
	want := cur.c + cur.l.sum + cur.r.sum
	if d := cur.sum - want; d > driftTolerance || d < -driftTolerance {
		return true
	}
	return u.corrupt(cur.l) || u.corrupt(cur.r)
}

// Corrupt [Tree.Corrupt]. Recursive.
// Time: O(n)
func (u *CBTree[K, V, C]) Corrupt() bool {
	return u.corrupt(u.root)
}
