package frost

import (
	"github.com/gtank/ristretto255"

	"github.com/frost-ristretto/olaf"
	"github.com/frost-ristretto/olaf/internal/transcript"
)

// computeBindingFactors derives a binding factor rho_i for every signer
// from one shared transcript: all factors are derived from forks of the
// same state, so the binding-factor security proof's requirement that they
// be jointly derived from the full commitment set holds. attempt re-labels
// the derivation on retry, when the resulting group commitment turns out
// to be the identity element.
func computeBindingFactors(groupPublicKey *ristretto255.Element, context, message []byte, sorted []SigningCommitments, attempt int) map[string]*ristretto255.Scalar {
	p := transcript.New(olaf.DomainFROST)
	p.Mix("group-public-key", groupPublicKey.Bytes())
	p.Mix("context", context)
	p.Mix("message", message)
	for _, c := range sorted {
		p.Mix("identifier", c.Identifier.Bytes())
		p.Mix("hiding", c.Hiding.Bytes())
		p.Mix("binding", c.Binding.Bytes())
	}
	if attempt > 0 {
		p.Mix("retry", []byte{byte(attempt)})
	}

	factors := make(map[string]*ristretto255.Scalar, len(sorted))
	for _, c := range sorted {
		bp := p.Clone()
		bp.Mix(olaf.DomainFROSTBinding, c.Identifier.Bytes())
		factors[idKey(c.Identifier)] = bp.ChallengeScalar(olaf.DomainFROSTBinding)
	}
	return factors
}

// computeGroupCommitment computes R = Sum_i (D_i + rho_i * E_i).
func computeGroupCommitment(sorted []SigningCommitments, factors map[string]*ristretto255.Scalar) *ristretto255.Element {
	R := ristretto255.NewIdentityElement()
	for _, c := range sorted {
		rho := factors[idKey(c.Identifier)]
		contribution := ristretto255.NewIdentityElement().ScalarMult(rho, c.Binding)
		contribution.Add(contribution, c.Hiding)
		R.Add(R, contribution)
	}
	return R
}

// computeChallenge derives the Schnorr challenge scalar c = H("OLAF-FROST-CHALLENGE", R, group_public_key, context, message).
func computeChallenge(groupPublicKey *ristretto255.Element, context, message []byte, R *ristretto255.Element) *ristretto255.Scalar {
	p := transcript.New(olaf.DomainFROSTChallenge)
	p.Mix("group-public-key", groupPublicKey.Bytes())
	p.Mix("context", context)
	p.Mix("message", message)
	p.Mix("commitment", R.Bytes())
	return p.ChallengeScalar("challenge")
}

// computeSessionValues computes the binding factors, group commitment, and
// challenge shared by every signer and the aggregator in one session. If R
// happens to land on the identity element, it retries under a relabeled
// transcript; this is vanishingly rare.
func computeSessionValues(groupPublicKey *ristretto255.Element, context, message []byte, sorted []SigningCommitments) (map[string]*ristretto255.Scalar, *ristretto255.Element, *ristretto255.Scalar) {
	identity := ristretto255.NewIdentityElement()

	var factors map[string]*ristretto255.Scalar
	var R *ristretto255.Element
	for attempt := 0; ; attempt++ {
		factors = computeBindingFactors(groupPublicKey, context, message, sorted, attempt)
		R = computeGroupCommitment(sorted, factors)
		if R.Equal(identity) != 1 {
			break
		}
	}

	c := computeChallenge(groupPublicKey, context, message, R)
	return factors, R, c
}

// lagrangeCoefficient computes the Lagrange interpolation coefficient for
// id at x=0 over the given identifier set: lambda_i = Prod_{j != i} j / (j - i).
func lagrangeCoefficient(id olaf.Identifier, ids []olaf.Identifier) *ristretto255.Scalar {
	num := scalarOne()
	den := scalarOne()

	for _, j := range ids {
		if j.Equal(id) == 1 {
			continue
		}
		num.Multiply(num, j)

		negID := ristretto255.NewScalar().Negate(id)
		diff := ristretto255.NewScalar().Add(j, negID)
		den.Multiply(den, diff)
	}

	denInv := ristretto255.NewScalar().Invert(den)
	return ristretto255.NewScalar().Multiply(num, denInv)
}

func scalarOne() *ristretto255.Scalar {
	var b [32]byte
	b[0] = 1
	s, _ := ristretto255.NewScalar().SetCanonicalBytes(b[:])
	return s
}
