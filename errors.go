package CreditTree

import "fmt"

// UnsortedSliceError is the panic value of From when safe==true and the
// given slice isn't sorted ascending by key. Left and Right are the subtree
// keys that Mid was checked against; the one that broke the order is the one
// out of [Left, Right].
type UnsortedSliceError[K ~string] struct {
	Left, Mid, Right K
}

func (e UnsortedSliceError[K]) Error() string {
	return fmt.Sprintf("slice not sorted by key: %q placed between %q and %q", e.Mid, e.Left, e.Right)
}
