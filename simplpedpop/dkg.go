package simplpedpop

import (
	"bytes"
	"io"
	"slices"

	"github.com/gtank/ristretto255"

	"github.com/frost-ristretto/olaf"
	"github.com/frost-ristretto/olaf/schnorr"
)

// Output is what a participant holds once it has ingested every broadcast
// of a DKG run: its own additive share of the joint secret, a verifying
// share for every participant, and the group's public key.
type Output struct {
	Parameters     olaf.Parameters
	GroupPublicKey *ristretto255.Element
	// VerifyingKeys is ordered by the sorted recipient set, length
	// Parameters.Participants.
	VerifyingKeys []olaf.IdentifiedVerifyingShare
	SecretShare   *ristretto255.Scalar
	// Identifier is this participant's own Identifier, found by locating
	// its long-term public key in the sorted recipient set.
	Identifier olaf.Identifier
}

// Zeroize overwrites the participant's secret share.
func (o *Output) Zeroize() {
	o.SecretShare = ristretto255.NewScalar()
}

// ContributeAll builds one participant's contribution to a DKG run: a
// random degree-(t-1) polynomial, a commitment to it, and an encrypted
// share of it for every recipient. kp is the contributor's long-term
// identity keypair, used to sign the broadcast's transport signature.
// recipients need not be sorted; ContributeAll sorts them before deriving
// identifiers or encrypting shares.
func ContributeAll(kp *olaf.SigningKeypair, params olaf.Parameters, recipients []*ristretto255.Element, rand io.Reader) (*AllMessage, error) {
	if params.Threshold < olaf.MinThreshold || params.Participants < olaf.MinParticipants ||
		params.Participants > olaf.MaxParticipants || params.Threshold > params.Participants {
		return nil, ErrInvalidParameters
	}
	if len(recipients) != params.Participants {
		return nil, ErrInvalidRecipientSet
	}

	sortedPubkeys := make([][]byte, len(recipients))
	for i, p := range recipients {
		sortedPubkeys[i] = p.Bytes()
	}
	slices.SortFunc(sortedPubkeys, bytes.Compare)
	for i := 1; i < len(sortedPubkeys); i++ {
		if bytes.Equal(sortedPubkeys[i-1], sortedPubkeys[i]) {
			return nil, ErrInvalidRecipientSet
		}
	}

	sortedRecipients := make([]*ristretto255.Element, len(sortedPubkeys))
	for i, pk := range sortedPubkeys {
		p, err := ristretto255.NewIdentityElement().SetCanonicalBytes(pk)
		if err != nil {
			return nil, ErrInvalidRecipientSet
		}
		sortedRecipients[i] = p
	}

	ids := olaf.DeriveIdentifiers(sortedPubkeys)

	coeffs := make([]*ristretto255.Scalar, params.Threshold)
	for i := range coeffs {
		s, err := readScalar(rand)
		if err != nil {
			return nil, err
		}
		coeffs[i] = s
	}

	e, err := readScalar(rand)
	if err != nil {
		return nil, err
	}
	ephemeralPublic := ristretto255.NewIdentityElement().ScalarBaseMult(e)

	commitment := commitPolynomial(coeffs)

	ciphertexts := make([]*ristretto255.Scalar, len(sortedRecipients))
	for j, p := range sortedRecipients {
		share := evaluatePolynomial(coeffs, ids[j])
		dh := ristretto255.NewIdentityElement().ScalarMult(e, p)
		ciphertexts[j] = encryptShare(share, ephemeralPublic, p, dh, j)
	}

	popRand, err := readBytes(rand, 64)
	if err != nil {
		return nil, err
	}
	pop, err := schnorr.Sign(olaf.DomainProofOfPossession, coeffs[0], popRand, bytes.NewReader(commitment[0].Bytes()))
	if err != nil {
		return nil, err
	}

	msg := &AllMessage{
		RecipientPubkeys:  sortedPubkeys,
		Parameters:        params,
		Commitment:        commitment,
		Ciphertexts:       ciphertexts,
		EphemeralPublic:   ephemeralPublic,
		ProofOfPossession: pop,
	}

	transportRand, err := readBytes(rand, 64)
	if err != nil {
		return nil, err
	}
	transportSig, err := schnorr.Sign(olaf.DomainTransport, kp.Secret(), transportRand, bytes.NewReader(msg.signedPrefix()))
	if err != nil {
		return nil, err
	}
	msg.TransportSignature = transportSig

	return msg, nil
}

// RecipientAll ingests every broadcast of a DKG run and produces this
// participant's Output. messages must contain exactly one broadcast per
// participant and agree on the recipient set and parameters; kp's public
// key must appear among the recipients.
//
// messages may come in any order. The wire format carries no sender field,
// so each broadcast's sender is the recipient whose long-term key verifies
// its transport signature; every recipient must have sent exactly one
// broadcast. Errors that name a broadcast use its index in messages.
func RecipientAll(kp *olaf.SigningKeypair, messages []*AllMessage) (*Output, error) {
	if len(messages) == 0 {
		return nil, ErrInvalidRecipientSet
	}

	params := messages[0].Parameters
	sortedPubkeys := messages[0].RecipientPubkeys
	if len(messages) != params.Participants {
		return nil, ErrInvalidRecipientSet
	}
	for _, m := range messages[1:] {
		if m.Parameters != params || !equalPubkeySets(m.RecipientPubkeys, sortedPubkeys) {
			return nil, ErrInvalidRecipientSet
		}
	}

	ownPublic := kp.Public().Bytes()
	ownIndex := -1
	for i, pk := range sortedPubkeys {
		if bytes.Equal(pk, ownPublic) {
			ownIndex = i
			break
		}
	}
	if ownIndex < 0 {
		return nil, ErrUnknownSelf
	}

	ids := olaf.DeriveIdentifiers(sortedPubkeys)

	groupPublicKey := ristretto255.NewIdentityElement()
	verifyingShares := make([]*ristretto255.Element, len(ids))
	for j := range verifyingShares {
		verifyingShares[j] = ristretto255.NewIdentityElement()
	}
	secretShare := ristretto255.NewScalar()

	seen := make([]bool, len(sortedPubkeys))
	for c, m := range messages {
		sender := -1
		for s, pk := range sortedPubkeys {
			senderPubkey, err := ristretto255.NewIdentityElement().SetCanonicalBytes(pk)
			if err != nil {
				return nil, ErrInvalidRecipientSet
			}
			if valid, verr := schnorr.Verify(olaf.DomainTransport, senderPubkey, m.TransportSignature, bytes.NewReader(m.signedPrefix())); verr == nil && valid {
				sender = s
				break
			}
		}
		if sender < 0 {
			return nil, &TransportSignatureError{Broadcast: c}
		}
		if seen[sender] {
			return nil, ErrInvalidRecipientSet
		}
		seen[sender] = true

		if valid, verr := schnorr.Verify(olaf.DomainProofOfPossession, m.Commitment[0], m.ProofOfPossession, bytes.NewReader(m.Commitment[0].Bytes())); verr != nil || !valid {
			return nil, &ProofOfPossessionError{Broadcast: c}
		}

		dh := ristretto255.NewIdentityElement().ScalarMult(kp.Secret(), m.EphemeralPublic)
		share := decryptShare(m.Ciphertexts[ownIndex], m.EphemeralPublic, kp.Public(), dh, ownIndex)

		if !verifyShare(m.Commitment, ids[ownIndex], share) {
			return nil, &InconsistentShareError{Broadcast: c}
		}

		secretShare.Add(secretShare, share)
		groupPublicKey.Add(groupPublicKey, m.Commitment[0])
		for j, id := range ids {
			verifyingShares[j].Add(verifyingShares[j], evaluateCommitmentAt(m.Commitment, id))
		}
	}

	verifyingKeys := make([]olaf.IdentifiedVerifyingShare, len(ids))
	for j, id := range ids {
		verifyingKeys[j] = olaf.IdentifiedVerifyingShare{Identifier: id, VerifyingShare: verifyingShares[j]}
	}

	return &Output{
		Parameters:     params,
		GroupPublicKey: groupPublicKey,
		VerifyingKeys:  verifyingKeys,
		SecretShare:    secretShare,
		Identifier:     ids[ownIndex],
	}, nil
}

func equalPubkeySets(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func readScalar(rand io.Reader) (*ristretto255.Scalar, error) {
	buf, err := readBytes(rand, 64)
	if err != nil {
		return nil, err
	}
	s, _ := ristretto255.NewScalar().SetUniformBytes(buf)
	return s, nil
}

func readBytes(rand io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
