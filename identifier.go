package olaf

import (
	"fmt"

	"github.com/gtank/ristretto255"

	"github.com/frost-ristretto/olaf/internal/transcript"
)

// Identifier is a participant's non-zero scalar identity. It is derived
// deterministically from the sorted set of long-term recipient public keys
// that took part in one DKG run (see DeriveIdentifiers), so every honest
// participant in that run agrees on the same identifiers without any
// further coordination.
type Identifier = *ristretto255.Scalar

// VerifyingShare is g^{s_i}, the public image of participant i's DKG secret
// share.
type VerifyingShare = *ristretto255.Element

// IdentifiedVerifyingShare pairs a participant's Identifier with their
// VerifyingShare. A DKG output's verifying-key table is a flat, ordered
// slice of these, not a map: the order is part of the protocol, fixed by
// the sorted recipient list.
type IdentifiedVerifyingShare struct {
	Identifier     Identifier
	VerifyingShare VerifyingShare
}

// DeriveIdentifiers derives one Identifier per position in sortedPubkeys,
// the canonical encodings of a DKG run's recipient public keys sorted
// ascending. The result is always non-zero and pairwise distinct; a zero
// result or a collision with an earlier identifier causes that position to
// be re-derived under a relabeled counter, exactly as a generic
// Transcript.ChallengeScalar retry would, but scoped per position so that
// re-deriving one identifier never perturbs another.
func DeriveIdentifiers(sortedPubkeys [][]byte) []Identifier {
	ids := make([]Identifier, len(sortedPubkeys))
	for j := range sortedPubkeys {
		base := transcript.New(DomainIdentifiers)
		for _, pk := range sortedPubkeys {
			base.Mix("pubkey", pk)
		}

		label := fmt.Sprintf("identifier-%d", j)
		for attempt := 0; ; attempt++ {
			l := label
			if attempt > 0 {
				l = fmt.Sprintf("%s-collision-%d", label, attempt)
			}
			candidate := base.ChallengeScalar(l)
			if !identifierCollides(ids[:j], candidate) {
				ids[j] = candidate
				break
			}
		}
	}
	return ids
}

func identifierCollides(derived []Identifier, candidate Identifier) bool {
	for _, id := range derived {
		if id.Equal(candidate) == 1 {
			return true
		}
	}
	return false
}
