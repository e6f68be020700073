package frost

import "github.com/gtank/ristretto255"

// NoncePair holds the ephemeral hiding and binding nonces produced by
// Commit. It must be consumed by exactly one Sign call.
//
// Go has no linear types, so the single-use invariant can't be enforced at
// compile time the way a move-only type would in a language that has them.
// Instead every copy of a NoncePair shares one underlying "consumed" flag:
// whichever copy reaches Sign first flips the flag, and every other copy
// (including the original) observes it set and refuses to sign again.
type NoncePair struct {
	hiding   *ristretto255.Scalar
	binding  *ristretto255.Scalar
	consumed *bool
}

func newNoncePair(hiding, binding *ristretto255.Scalar) NoncePair {
	consumed := false
	return NoncePair{hiding: hiding, binding: binding, consumed: &consumed}
}

// consume returns the pair's scalars and marks it used, or fails if an
// earlier call already consumed it.
func (n NoncePair) consume() (*ristretto255.Scalar, *ristretto255.Scalar, error) {
	if *n.consumed {
		return nil, nil, ErrNoncePairConsumed
	}
	*n.consumed = true
	return n.hiding, n.binding, nil
}

// Zeroize overwrites the pair's secret scalars and marks it consumed
// without producing a signature. Use this to discard a committed-but-
// unused nonce pair, e.g. when a signing session is aborted.
func (n NoncePair) Zeroize() {
	*n.consumed = true
	n.hiding.Subtract(n.hiding, n.hiding)
	n.binding.Subtract(n.binding, n.binding)
}
