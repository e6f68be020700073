package frost

import (
	"bytes"
	"slices"

	"github.com/gtank/ristretto255"

	"github.com/frost-ristretto/olaf"
)

// SigningCommitments is the public counterpart of a NoncePair, broadcast to
// every other signer before Sign. Hiding and Binding must never equal the
// identity element.
type SigningCommitments struct {
	Identifier olaf.Identifier
	Hiding     *ristretto255.Element
	Binding    *ristretto255.Element
}

// Bytes returns the canonical wire encoding of the commitments: the
// identifier is not included, since on the wire a commitment is always
// addressed by its position in an externally agreed signer list rather
// than carrying its own identifier.
func (c SigningCommitments) Bytes() []byte {
	return append(c.Hiding.Bytes(), c.Binding.Bytes()...)
}

// ParseSigningCommitments decodes a wire-encoded commitment pair for the
// given identifier.
func ParseSigningCommitments(id olaf.Identifier, data []byte) (SigningCommitments, error) {
	if len(data) != 64 {
		return SigningCommitments{}, ErrDeserialization
	}
	hiding, err := ristretto255.NewIdentityElement().SetCanonicalBytes(data[:32])
	if err != nil {
		return SigningCommitments{}, ErrDeserialization
	}
	binding, err := ristretto255.NewIdentityElement().SetCanonicalBytes(data[32:])
	if err != nil {
		return SigningCommitments{}, ErrDeserialization
	}
	return SigningCommitments{Identifier: id, Hiding: hiding, Binding: binding}, nil
}

// idKey turns an Identifier into a comparable map key.
func idKey(id olaf.Identifier) string {
	b := id.Bytes()
	return string(b)
}

// sortCommitments returns a copy of commitments ordered by identifier, the
// total order every signer and the aggregator must agree on.
func sortCommitments(commitments []SigningCommitments) []SigningCommitments {
	sorted := slices.Clone(commitments)
	slices.SortFunc(sorted, func(a, b SigningCommitments) int {
		return bytes.Compare(a.Identifier.Bytes(), b.Identifier.Bytes())
	})
	return sorted
}

func findCommitment(sorted []SigningCommitments, id olaf.Identifier) (SigningCommitments, bool) {
	for _, c := range sorted {
		if c.Identifier.Equal(id) == 1 {
			return c, true
		}
	}
	return SigningCommitments{}, false
}
