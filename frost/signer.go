package frost

import (
	"io"

	"github.com/gtank/ristretto255"

	"github.com/frost-ristretto/olaf"
	"github.com/frost-ristretto/olaf/simplpedpop"
)

// Signer is a single FROST participant, built from its SimplPedPoP Output.
type Signer struct {
	identifier     olaf.Identifier
	parameters     olaf.Parameters
	verifyingKeys  []olaf.IdentifiedVerifyingShare
	groupPublicKey *ristretto255.Element
	secretShare    *ristretto255.Scalar
}

// NewSigner builds a Signer from a completed DKG output.
func NewSigner(out *simplpedpop.Output) *Signer {
	return &Signer{
		identifier:     out.Identifier,
		parameters:     out.Parameters,
		verifyingKeys:  out.VerifyingKeys,
		groupPublicKey: out.GroupPublicKey,
		secretShare:    out.SecretShare,
	}
}

// Identifier returns the signer's Identifier.
func (s *Signer) Identifier() olaf.Identifier { return s.identifier }

// GroupPublicKey returns the group's public key.
func (s *Signer) GroupPublicKey() *ristretto255.Element { return s.groupPublicKey }

// Commit samples a fresh nonce pair and returns it alongside its public
// commitment. The NoncePair must be retained and passed to exactly one
// later Sign call.
func (s *Signer) Commit(rand io.Reader) (NoncePair, SigningCommitments, error) {
	hiding, D, err := commitScalar(rand)
	if err != nil {
		return NoncePair{}, SigningCommitments{}, err
	}
	binding, E, err := commitScalar(rand)
	if err != nil {
		return NoncePair{}, SigningCommitments{}, err
	}

	return newNoncePair(hiding, binding), SigningCommitments{
		Identifier: s.identifier,
		Hiding:     D,
		Binding:    E,
	}, nil
}

// commitScalar samples a uniform scalar and its base-point commitment,
// retrying on the vanishingly unlikely event that the commitment lands on
// the identity element.
func commitScalar(rand io.Reader) (*ristretto255.Scalar, *ristretto255.Element, error) {
	identity := ristretto255.NewIdentityElement()
	for {
		x, err := readScalar(rand)
		if err != nil {
			return nil, nil, err
		}
		X := ristretto255.NewIdentityElement().ScalarBaseMult(x)
		if X.Equal(identity) != 1 {
			return x, X, nil
		}
	}
}

// Sign produces this signer's signature share for one message. commitments
// must include every participating signer's SigningCommitments, including
// this signer's own, and nonces must be the NoncePair returned for this
// round by Commit.
//
// Preconditions are checked in the order the caller-visible error kinds are
// listed: the number of commitments, the size of the verifying-key table,
// presence and correctness of this signer's own commitment, absence of an
// identity-element commitment, and presence of this signer's own verifying
// share. Finally, a commitment whose identifier has no entry in this
// signer's verifying-key table is rejected with ErrInvalidNonceCommitment.
func (s *Signer) Sign(context, message []byte, commitments []SigningCommitments, nonces NoncePair) (*SigningPackage, error) {
	if len(commitments) < s.parameters.Threshold {
		return nil, ErrInvalidNumberOfSigningCommitments
	}
	if len(s.verifyingKeys) != s.parameters.Participants {
		return nil, ErrIncorrectNumberOfVerifyingShares
	}

	sorted := sortCommitments(commitments)

	hiding, binding, err := nonces.consume()
	if err != nil {
		return nil, err
	}
	// Once consumed, the nonce pair is terminal: zeroize its scalars on
	// every exit from here on, successful or not, rather than only after
	// z is computed.
	defer func() {
		hiding.Subtract(hiding, hiding)
		binding.Subtract(binding, binding)
	}()

	own, ok := findCommitment(sorted, s.identifier)
	if !ok {
		return nil, ErrMissingOwnSigningCommitment
	}
	expectedHiding := ristretto255.NewIdentityElement().ScalarBaseMult(hiding)
	expectedBinding := ristretto255.NewIdentityElement().ScalarBaseMult(binding)
	if own.Hiding.Equal(expectedHiding) != 1 || own.Binding.Equal(expectedBinding) != 1 {
		return nil, ErrMissingOwnSigningCommitment
	}

	identity := ristretto255.NewIdentityElement()
	for _, c := range sorted {
		if c.Hiding.Equal(identity) == 1 || c.Binding.Equal(identity) == 1 {
			return nil, ErrIdentitySigningCommitment
		}
	}

	ownVerifyingShare, ok := findVerifyingShare(s.verifyingKeys, s.identifier)
	if !ok {
		return nil, ErrInvalidOwnVerifyingShare
	}
	expectedShare := ristretto255.NewIdentityElement().ScalarBaseMult(s.secretShare)
	if ownVerifyingShare.Equal(expectedShare) != 1 {
		return nil, ErrInvalidOwnVerifyingShare
	}

	for _, c := range sorted {
		if _, ok := findVerifyingShare(s.verifyingKeys, c.Identifier); !ok {
			return nil, ErrInvalidNonceCommitment
		}
	}

	factors, _, challenge := computeSessionValues(s.groupPublicKey, context, message, sorted)

	ids := make([]olaf.Identifier, len(sorted))
	for i, c := range sorted {
		ids[i] = c.Identifier
	}
	lambda := lagrangeCoefficient(s.identifier, ids)
	rho := factors[idKey(s.identifier)]

	// z_me = d_me + e_me*rho_me + lambda_me*s_me*c
	z := ristretto255.NewScalar().Multiply(binding, rho)
	z.Add(z, hiding)
	lambdaSC := ristretto255.NewScalar().Multiply(lambda, s.secretShare)
	lambdaSC.Multiply(lambdaSC, challenge)
	z.Add(z, lambdaSC)

	return &SigningPackage{
		Common: CommonData{
			Context:            context,
			Message:            message,
			SigningCommitments: sorted,
		},
		Signer: SignerData{
			Identifier:     s.identifier,
			SignatureShare: z,
			VerifyingShare: ownVerifyingShare,
		},
	}, nil
}

func findVerifyingShare(verifyingKeys []olaf.IdentifiedVerifyingShare, id olaf.Identifier) (olaf.VerifyingShare, bool) {
	for _, vk := range verifyingKeys {
		if vk.Identifier.Equal(id) == 1 {
			return vk.VerifyingShare, true
		}
	}
	return nil, false
}

func readScalar(rand io.Reader) (*ristretto255.Scalar, error) {
	buf := make([]byte, 64)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, err
	}
	s, _ := ristretto255.NewScalar().SetUniformBytes(buf)
	return s, nil
}
