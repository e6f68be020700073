package simplpedpop

import "github.com/gtank/ristretto255"

// commitPolynomial returns the public commitment vector [g^{a_0}, g^{a_1},
// ..., g^{a_{t-1}}] for the given secret coefficients.
func commitPolynomial(coeffs []*ristretto255.Scalar) []*ristretto255.Element {
	commitment := make([]*ristretto255.Element, len(coeffs))
	for i, a := range coeffs {
		commitment[i] = ristretto255.NewIdentityElement().ScalarBaseMult(a)
	}
	return commitment
}

// evaluatePolynomial evaluates f(x) = coeffs[0] + coeffs[1]*x + ... +
// coeffs[t-1]*x^(t-1) at x using Horner's method.
func evaluatePolynomial(coeffs []*ristretto255.Scalar, x *ristretto255.Scalar) *ristretto255.Scalar {
	n := len(coeffs)
	result, _ := ristretto255.NewScalar().SetCanonicalBytes(coeffs[n-1].Bytes())
	for i := n - 2; i >= 0; i-- {
		result.Multiply(result, x)
		result.Add(result, coeffs[i])
	}
	return result
}

// evaluateCommitmentAt evaluates a polynomial commitment at x without
// knowledge of the underlying coefficients: Σ_{j=0..t-1} x^j · commitment_j,
// computed in Horner form over group elements.
func evaluateCommitmentAt(commitment []*ristretto255.Element, x *ristretto255.Scalar) *ristretto255.Element {
	n := len(commitment)
	result := ristretto255.NewIdentityElement().Add(ristretto255.NewIdentityElement(), commitment[n-1])
	for i := n - 2; i >= 0; i-- {
		result = ristretto255.NewIdentityElement().ScalarMult(x, result)
		result.Add(result, commitment[i])
	}
	return result
}

// verifyShare reports whether claimedShare is the correct evaluation of
// commitment at x, by constant-time comparison of g^{claimedShare} against
// the evaluated commitment point.
func verifyShare(commitment []*ristretto255.Element, x *ristretto255.Scalar, claimedShare *ristretto255.Scalar) bool {
	lhs := ristretto255.NewIdentityElement().ScalarBaseMult(claimedShare)
	rhs := evaluateCommitmentAt(commitment, x)
	return lhs.Equal(rhs) == 1
}
