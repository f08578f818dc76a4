package CreditTree

import "golang.org/x/exp/constraints"

// Tree represents an ordered search structure that indexes entries by A
// totally-ordered string key while balancing by A secondary numeric weight
// (the "credit") owned by each entry. Both key-based and cumulative-credit
// navigation are O(D) where D is the current depth of the tree; D is kept
// near O(log n) heuristically, not by A provable bound.
// Implementations are not safe for concurrent use by multiple goroutines.
// If multiple goroutines access A tree concurrently, and at least one of
// them modifies the tree, access must be synchronized externally.
// If an implementation didn't specify anything special, then the implemented
// receivers follow the behaviors defined here. Methods implemented recursively
// should be noted, otherwise functions are implemented iteratively.
type Tree[K ~string, V any, C constraints.Float] interface {
	//Insert an entry. Duplicate keys are allowed; an entry whose key is
	//already present goes to the right of the existing one at insertion
	//time, though rebalancing may later move it anywhere among its equals.
	Insert(k K, v V, c C)
	//Remove the first entry reached by key comparison. Returning true if an
	//entry was removed, false if k is absent (the tree is left unchanged).
	//When the removed entry holds two subtrees, the entry isn't destroyed:
	//it adopts the key and payload of its in-order successor while keeping
	//its own credit, and the successor is the one destroyed together with
	//the successor's credit. This identity rule is deliberate; callers that
	//want credit to travel with the key must re-insert instead.
	Remove(k K) bool
	//UpdateCredit overwrites the credit of the first entry whose key equals
	//k on the ordinary comparison descent; other entries sharing the key
	//are left alone. Returning true if an entry was updated, false if k is
	//absent (the tree is left unchanged).
	UpdateCredit(k K, c C) bool
	//FindByCredit returns the entry covering the cumulative credit target t:
	//listing entries in key order, entry i covers [prefixSum(i),
	//prefixSum(i)+credit(i)). Returns nil when t is outside [0,
	//TotalCredit()). Negative t is out of contract; the descent merely
	//evaluates the covering test literally.
	FindByCredit(t C) *Node[K, V, C]
	//FindByKey returns all entries whose key equals k, in key order, or an
	//empty slice. Multiple results are possible as duplicates are allowed.
	FindByKey(k K) []*Node[K, V, C]
	//FindByPrefix returns all entries whose key starts with p. The empty
	//prefix matches every entry. Results are in pre-order, not key order.
	FindByPrefix(p K) []*Node[K, V, C]
	//TotalCredit of all entries; 0 for an empty tree.
	TotalCredit() C
	//Empty reports whether the tree has no entries.
	Empty() bool
	//InOrder returns A closure function f acting like an iterator. f gives
	//nodes in the in-order traversal of the tree, i.e. ascending key order.
	//Calling f is like calling "Next()" of iterators: val, valid=f().
	//val is meaningful only if valid is true. When valid==false,
	//then f is exhausted. valid can't turn true after it first became false.
	//The tree must not be modified during the iteration of f, otherwise
	//it could corrupt the tree. There will be no panic if such cases
	//happens so design the algorithm with this in mind.
	InOrder() func() (*Node[K, V, C], bool)
	//Corrupt returns whether the tree has corrupt structures, when the
	//stored credit aggregate at some node drifts from the recomputed one by
	//more than the tolerance. This is to be distinguished from whether the
	//tree is balanced or not.
	Corrupt() bool
}
