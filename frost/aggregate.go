package frost

import (
	"bytes"
	"encoding/binary"

	"github.com/gtank/ristretto255"

	"github.com/frost-ristretto/olaf"
)

// CommonData is the portion of a SigningPackage every signer in a session
// must agree on byte-for-byte.
type CommonData struct {
	Context            []byte
	Message            []byte
	SigningCommitments []SigningCommitments
}

func (c CommonData) equal(o CommonData) bool {
	if !bytes.Equal(c.Context, o.Context) || !bytes.Equal(c.Message, o.Message) {
		return false
	}
	if len(c.SigningCommitments) != len(o.SigningCommitments) {
		return false
	}
	for i := range c.SigningCommitments {
		a, b := c.SigningCommitments[i], o.SigningCommitments[i]
		if a.Identifier.Equal(b.Identifier) != 1 || a.Hiding.Equal(b.Hiding) != 1 || a.Binding.Equal(b.Binding) != 1 {
			return false
		}
	}
	return true
}

// SignerData is one signer's contribution to a signing session.
type SignerData struct {
	Identifier     olaf.Identifier
	SignatureShare *ristretto255.Scalar
	VerifyingShare olaf.VerifyingShare
}

// SigningPackage is what Sign returns and what Aggregate consumes: the
// session's shared CommonData plus one signer's SignerData.
type SigningPackage struct {
	Common CommonData
	Signer SignerData
}

// Bytes returns a length-prefixed wire encoding of the package. Each
// variable-length field carries a fixed-width big-endian u32 length prefix
// rather than a varint; this repo's wire format uses fixed-width prefixes
// throughout rather than mixing in varints for a single message kind.
func (p *SigningPackage) Bytes() []byte {
	var buf bytes.Buffer
	putBytes(&buf, p.Common.Context)
	putBytes(&buf, p.Common.Message)

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(p.Common.SigningCommitments)))
	buf.Write(countBuf[:])
	for _, c := range p.Common.SigningCommitments {
		buf.Write(c.Identifier.Bytes())
		buf.Write(c.Bytes())
	}

	buf.Write(p.Signer.Identifier.Bytes())
	buf.Write(p.Signer.SignatureShare.Bytes())
	buf.Write(p.Signer.VerifyingShare.Bytes())
	return buf.Bytes()
}

func putBytes(buf *bytes.Buffer, data []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf.Write(lenBuf[:])
	buf.Write(data)
}

// Signature is the final, aggregated FROST signature. It satisfies the same
// verification equation as a single-party Schnorr signature over the
// group's public key.
type Signature struct {
	R *ristretto255.Element
	Z *ristretto255.Scalar
}

// Bytes returns the 64-byte wire encoding point(32) || scalar(32).
func (s *Signature) Bytes() []byte {
	return append(s.R.Bytes(), s.Z.Bytes()...)
}

// ParseSignature decodes a wire-encoded Signature.
func ParseSignature(data []byte) (*Signature, error) {
	if len(data) != 64 {
		return nil, ErrDeserialization
	}
	R, err := ristretto255.NewIdentityElement().SetCanonicalBytes(data[:32])
	if err != nil {
		return nil, ErrDeserialization
	}
	z, err := ristretto255.NewScalar().SetCanonicalBytes(data[32:])
	if err != nil {
		return nil, ErrDeserialization
	}
	return &Signature{R: R, Z: z}, nil
}

// Aggregate combines a quorum of SigningPackages into a single Signature.
// It implements the SimplPedPoP/FROST aggregation sequence: reject an empty
// or too-small set, require identical CommonData and a matching commitment
// count across all packages, verify each signer's partial signature and
// collect any culprits, then sum the verified shares and re-check the
// result against the group's own verification equation before returning it.
func Aggregate(groupPublicKey *ristretto255.Element, packages []*SigningPackage) (*Signature, error) {
	if len(packages) == 0 {
		return nil, ErrEmptySigningPackages
	}

	common := packages[0].Common
	threshold := len(common.SigningCommitments)
	if len(packages) < threshold {
		return nil, ErrInvalidNumberOfSigningPackages
	}
	for _, p := range packages[1:] {
		if !p.Common.equal(common) {
			return nil, ErrMismatchedCommonData
		}
	}
	if len(packages) != len(common.SigningCommitments) {
		return nil, ErrMismatchedSignatureSharesAndSigningCommitments
	}

	factors, R, challenge := computeSessionValues(groupPublicKey, common.Context, common.Message, common.SigningCommitments)

	ids := make([]olaf.Identifier, len(common.SigningCommitments))
	for i, c := range common.SigningCommitments {
		ids[i] = c.Identifier
	}

	var culprits []olaf.VerifyingShare
	z := ristretto255.NewScalar()
	for _, p := range packages {
		c, ok := findCommitment(common.SigningCommitments, p.Signer.Identifier)
		if !ok {
			culprits = append(culprits, p.Signer.VerifyingShare)
			continue
		}
		rho := factors[idKey(p.Signer.Identifier)]
		lambda := lagrangeCoefficient(p.Signer.Identifier, ids)

		lhs := ristretto255.NewIdentityElement().ScalarBaseMult(p.Signer.SignatureShare)

		rhs := ristretto255.NewIdentityElement().ScalarMult(rho, c.Binding)
		rhs.Add(rhs, c.Hiding)
		lambdaC := ristretto255.NewScalar().Multiply(lambda, challenge)
		contribution := ristretto255.NewIdentityElement().ScalarMult(lambdaC, p.Signer.VerifyingShare)
		rhs.Add(rhs, contribution)

		if lhs.Equal(rhs) != 1 {
			culprits = append(culprits, p.Signer.VerifyingShare)
			continue
		}
		z.Add(z, p.Signer.SignatureShare)
	}
	if len(culprits) > 0 {
		return nil, &InvalidSignatureShareError{Culprit: culprits}
	}

	sig := &Signature{R: R, Z: z}
	if !Verify(groupPublicKey, common.Context, common.Message, sig) {
		return nil, ErrInvalidSignature
	}
	return sig, nil
}

// Verify checks that sig is a valid FROST/Schnorr signature over message by
// the holder of groupPublicKey's secret key, under the given context.
func Verify(groupPublicKey *ristretto255.Element, context, message []byte, sig *Signature) bool {
	challenge := computeChallenge(groupPublicKey, context, message, sig.R)

	lhs := ristretto255.NewIdentityElement().ScalarBaseMult(sig.Z)
	rhs := ristretto255.NewIdentityElement().ScalarMult(challenge, groupPublicKey)
	rhs.Add(rhs, sig.R)
	return lhs.Equal(rhs) == 1
}
