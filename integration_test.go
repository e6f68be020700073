package olaf_test

import (
	"testing"

	"github.com/gtank/ristretto255"
	"github.com/stretchr/testify/require"

	"github.com/frost-ristretto/olaf"
	"github.com/frost-ristretto/olaf/frost"
	"github.com/frost-ristretto/olaf/internal/testdata"
	"github.com/frost-ristretto/olaf/simplpedpop"
)

// TestEndToEnd drives the full pipeline this module implements: a 3-party,
// threshold-2 SimplPedPoP key generation, a FROST signing round run by a
// quorum of two signers, aggregation, and a final verification against the
// group's public key.
func TestEndToEnd(t *testing.T) {
	drbg := testdata.New("olaf end to end")
	const n, threshold = 3, 2
	params := olaf.Parameters{Participants: n, Threshold: threshold}

	keypairs := make([]*olaf.SigningKeypair, n)
	pubkeys := make([]*ristretto255.Element, n)
	for i := range n {
		d, q := drbg.KeyPair()
		keypairs[i] = olaf.NewSigningKeypair(d)
		pubkeys[i] = q
	}

	messages := make([]*simplpedpop.AllMessage, n)
	for i := range n {
		msg, err := simplpedpop.ContributeAll(keypairs[i], params, pubkeys, drbg.Reader())
		require.NoError(t, err)
		messages[i] = msg
	}

	signers := make([]*frost.Signer, n)
	for i := range n {
		out, err := simplpedpop.RecipientAll(keypairs[i], messages)
		require.NoError(t, err)
		signers[i] = frost.NewSigner(out)
	}

	quorum := signers[:threshold]
	context := []byte("olaf-integration-test")
	message := []byte("the treasury moves at dawn")

	nonces := make([]frost.NoncePair, len(quorum))
	commitments := make([]frost.SigningCommitments, len(quorum))
	for i, s := range quorum {
		np, c, err := s.Commit(drbg.Reader())
		require.NoError(t, err)
		nonces[i] = np
		commitments[i] = c
	}

	packages := make([]*frost.SigningPackage, len(quorum))
	for i, s := range quorum {
		p, err := s.Sign(context, message, commitments, nonces[i])
		require.NoError(t, err)
		packages[i] = p
	}

	sig, err := frost.Aggregate(signers[0].GroupPublicKey(), packages)
	require.NoError(t, err)

	require.True(t, frost.Verify(signers[0].GroupPublicKey(), context, message, sig))
	require.False(t, frost.Verify(signers[0].GroupPublicKey(), context, []byte("a different message"), sig))

	parsed, err := frost.ParseSignature(sig.Bytes())
	require.NoError(t, err)
	require.True(t, frost.Verify(signers[0].GroupPublicKey(), context, message, parsed))
}
