package simplpedpop

import (
	"encoding/binary"

	"github.com/gtank/ristretto255"

	"github.com/frost-ristretto/olaf"
	"github.com/frost-ristretto/olaf/internal/transcript"
)

// shareMask derives the keystream scalar that encryptShare/decryptShare use
// to mask a single recipient's share. E is the ephemeral sender public key,
// P the recipient's long-term public key, dh the shared Diffie-Hellman
// point (e*P on the sender's side, d*E on the recipient's), and index the
// recipient's position in the sorted recipient vector.
//
// This folds the two-step "derive 32 bytes, then reduce them to a scalar"
// construction into one wide Transcript.ChallengeScalar call: the transcript
// already produces uniformly random output of any requested length, so
// hashing its output a second time adds no security margin.
func shareMask(E, P, dh *ristretto255.Element, index int) *ristretto255.Scalar {
	t := transcript.New(olaf.DomainShareEncryption)
	t.Mix("ephemeral", E.Bytes())
	t.Mix("recipient", P.Bytes())
	t.Mix("dh", dh.Bytes())
	t.Mix("index", binary.BigEndian.AppendUint32(nil, uint32(index)))
	return t.ChallengeScalar("mask")
}

// encryptShare masks share for transport to a single recipient. The scheme
// is not an AEAD: it carries no authentication tag of its own. Integrity of
// the ciphertext is inherited from the transport signature over the whole
// broadcast and from the recipient's polynomial-commitment check of the
// recovered share; shares are one-shot, so unforgeability follows from
// those outer checks rather than from this encryption step.
func encryptShare(share *ristretto255.Scalar, E, P, dh *ristretto255.Element, index int) *ristretto255.Scalar {
	return ristretto255.NewScalar().Add(share, shareMask(E, P, dh, index))
}

// decryptShare recovers a share masked by encryptShare.
func decryptShare(ciphertext *ristretto255.Scalar, E, P, dh *ristretto255.Element, index int) *ristretto255.Scalar {
	return ristretto255.NewScalar().Subtract(ciphertext, shareMask(E, P, dh, index))
}
