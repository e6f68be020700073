package olaf

import "github.com/gtank/ristretto255"

// SigningKeypair is a participant's long-term identity keypair: the key a
// recipient is addressed by in a DKG run, and the key that authenticates
// the transport signature over every AllMessage it sends. It is distinct
// from the secret_share a DKG run produces, which lives only as long as the
// group it was generated for.
type SigningKeypair struct {
	secret *ristretto255.Scalar
	public *ristretto255.Element
}

// NewSigningKeypair wraps a secret scalar, computing its public counterpart.
func NewSigningKeypair(secret *ristretto255.Scalar) *SigningKeypair {
	return &SigningKeypair{
		secret: secret,
		public: ristretto255.NewIdentityElement().ScalarBaseMult(secret),
	}
}

// Secret returns the keypair's secret scalar.
func (k *SigningKeypair) Secret() *ristretto255.Scalar {
	return k.secret
}

// Public returns the keypair's public key.
func (k *SigningKeypair) Public() *ristretto255.Element {
	return k.public
}

// Zeroize overwrites the keypair's secret scalar, rendering the keypair
// unusable. Callers that retain a SigningKeypair for the lifetime of a
// long-term identity should call this once it is no longer needed.
func (k *SigningKeypair) Zeroize() {
	k.secret = ristretto255.NewScalar()
}
