package frost_test

import (
	"testing"

	"github.com/gtank/ristretto255"
	"github.com/stretchr/testify/require"

	"github.com/frost-ristretto/olaf"
	"github.com/frost-ristretto/olaf/frost"
	"github.com/frost-ristretto/olaf/internal/testdata"
	"github.com/frost-ristretto/olaf/simplpedpop"
)

// runDKGOutputs drives a full n-participant SimplPedPoP run and returns one
// Output per participant.
func runDKGOutputs(t *testing.T, drbg *testdata.DRBG, n, threshold int) []*simplpedpop.Output {
	t.Helper()

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

	outputs := make([]*simplpedpop.Output, n)
	for i := range n {
		out, err := simplpedpop.RecipientAll(keypairs[i], messages)
		require.NoError(t, err)
		outputs[i] = out
	}
	return outputs
}

// runDKG drives a full n-participant SimplPedPoP run and returns one Signer
// per participant.
func runDKG(t *testing.T, drbg *testdata.DRBG, n, threshold int) []*frost.Signer {
	t.Helper()

	outputs := runDKGOutputs(t, drbg, n, threshold)
	signers := make([]*frost.Signer, len(outputs))
	for i, out := range outputs {
		signers[i] = frost.NewSigner(out)
	}
	return signers
}

// runRound walks a quorum of signers through Commit and Sign, returning
// their SigningPackages.
func runRound(t *testing.T, drbg *testdata.DRBG, quorum []*frost.Signer, context, message []byte) []*frost.SigningPackage {
	t.Helper()

	nonces := make([]frost.NoncePair, len(quorum))
	commitments := make([]frost.SigningCommitments, len(quorum))
	for i, s := range quorum {
		n, c, err := s.Commit(drbg.Reader())
		require.NoError(t, err)
		nonces[i] = n
		commitments[i] = c
	}

	packages := make([]*frost.SigningPackage, len(quorum))
	for i, s := range quorum {
		p, err := s.Sign(context, message, commitments, nonces[i])
		require.NoError(t, err)
		packages[i] = p
	}
	return packages
}

func TestEndToEndHappyPath(t *testing.T) {
	drbg := testdata.New("frost happy path")
	signers := runDKG(t, drbg, 3, 2)

	context := []byte("test-context")
	message := []byte("attack at dawn")
	packages := runRound(t, drbg, signers[:2], context, message)

	sig, err := frost.Aggregate(signers[0].GroupPublicKey(), packages)
	require.NoError(t, err)
	require.True(t, frost.Verify(signers[0].GroupPublicKey(), context, message, sig))
}

func TestEndToEndRejectsWrongMessage(t *testing.T) {
	drbg := testdata.New("frost wrong message")
	signers := runDKG(t, drbg, 3, 2)

	context := []byte("test-context")
	packages := runRound(t, drbg, signers[:2], context, []byte("attack at dawn"))

	sig, err := frost.Aggregate(signers[0].GroupPublicKey(), packages)
	require.NoError(t, err)
	require.False(t, frost.Verify(signers[0].GroupPublicKey(), context, []byte("retreat at dusk"), sig))
}

func TestAggregateRejectsEmptyPackages(t *testing.T) {
	drbg := testdata.New("frost empty")
	signers := runDKG(t, drbg, 3, 2)

	_, err := frost.Aggregate(signers[0].GroupPublicKey(), nil)
	require.ErrorIs(t, err, frost.ErrEmptySigningPackages)
}

func TestAggregateRejectsTooFewPackages(t *testing.T) {
	drbg := testdata.New("frost too few")
	signers := runDKG(t, drbg, 3, 2)

	packages := runRound(t, drbg, signers[:2], []byte("ctx"), []byte("msg"))
	_, err := frost.Aggregate(signers[0].GroupPublicKey(), packages[:1])
	require.ErrorIs(t, err, frost.ErrInvalidNumberOfSigningPackages)
}

func TestAggregateDetectsInvalidSignatureShare(t *testing.T) {
	drbg := testdata.New("frost invalid share")
	signers := runDKG(t, drbg, 2, 2)

	packages := runRound(t, drbg, signers, []byte("ctx"), []byte("msg"))

	var onebuf [32]byte
	onebuf[0] = 1
	one, err := ristretto255.NewScalar().SetCanonicalBytes(onebuf[:])
	require.NoError(t, err)

	for _, p := range packages {
		p.Signer.SignatureShare = ristretto255.NewScalar().Add(p.Signer.SignatureShare, one)
	}

	_, err = frost.Aggregate(signers[0].GroupPublicKey(), packages)
	var shareErr *frost.InvalidSignatureShareError
	require.ErrorAs(t, err, &shareErr)
	require.Len(t, shareErr.Culprit, len(packages))
	for i, p := range packages {
		require.Equal(t, 1, shareErr.Culprit[i].Equal(p.Signer.VerifyingShare))
	}
}

func TestAggregateRejectsMismatchedCommonData(t *testing.T) {
	drbg := testdata.New("frost mismatched common data")
	signers := runDKG(t, drbg, 3, 2)

	packagesA := runRound(t, drbg, signers[:2], []byte("ctx-a"), []byte("msg"))
	packagesB := runRound(t, drbg, signers[1:3], []byte("ctx-b"), []byte("msg"))

	mixed := []*frost.SigningPackage{packagesA[0], packagesB[0]}
	_, err := frost.Aggregate(signers[0].GroupPublicKey(), mixed)
	require.ErrorIs(t, err, frost.ErrMismatchedCommonData)
}

func TestSignRejectsIdentityCommitment(t *testing.T) {
	drbg := testdata.New("frost identity commitment")
	signers := runDKG(t, drbg, 3, 2)

	n0, c0, err := signers[0].Commit(drbg.Reader())
	require.NoError(t, err)
	_, c1, err := signers[1].Commit(drbg.Reader())
	require.NoError(t, err)
	c1.Hiding = ristretto255.NewIdentityElement()

	_, err = signers[0].Sign([]byte("ctx"), []byte("msg"), []frost.SigningCommitments{c0, c1}, n0)
	require.ErrorIs(t, err, frost.ErrIdentitySigningCommitment)
}

func TestSignRejectsMissingOwnCommitment(t *testing.T) {
	drbg := testdata.New("frost missing own commitment")
	signers := runDKG(t, drbg, 3, 2)

	n0, _, err := signers[0].Commit(drbg.Reader())
	require.NoError(t, err)
	_, c1, err := signers[1].Commit(drbg.Reader())
	require.NoError(t, err)
	_, c2, err := signers[2].Commit(drbg.Reader())
	require.NoError(t, err)

	_, err = signers[0].Sign([]byte("ctx"), []byte("msg"), []frost.SigningCommitments{c1, c2}, n0)
	require.ErrorIs(t, err, frost.ErrMissingOwnSigningCommitment)
}

func TestSignRejectsReusedNoncePair(t *testing.T) {
	drbg := testdata.New("frost reused nonce")
	signers := runDKG(t, drbg, 3, 2)

	n0, c0, err := signers[0].Commit(drbg.Reader())
	require.NoError(t, err)
	_, c1, err := signers[1].Commit(drbg.Reader())
	require.NoError(t, err)

	commitments := []frost.SigningCommitments{c0, c1}
	_, err = signers[0].Sign([]byte("ctx"), []byte("msg"), commitments, n0)
	require.NoError(t, err)

	_, err = signers[0].Sign([]byte("ctx"), []byte("msg2"), commitments, n0)
	require.ErrorIs(t, err, frost.ErrNoncePairConsumed)
}

func TestSignRejectsForeignCommitments(t *testing.T) {
	drbg := testdata.New("frost foreign commitments")
	signersA := runDKG(t, drbg, 3, 2)
	signersB := runDKG(t, drbg, 4, 3)

	n0, c0, err := signersA[0].Commit(drbg.Reader())
	require.NoError(t, err)
	_, c1, err := signersB[1].Commit(drbg.Reader())
	require.NoError(t, err)

	_, err = signersA[0].Sign([]byte("ctx"), []byte("msg"), []frost.SigningCommitments{c0, c1}, n0)
	require.Error(t, err)
}

func TestSignRejectsTooFewCommitments(t *testing.T) {
	drbg := testdata.New("frost too few commitments")
	signers := runDKG(t, drbg, 3, 3)

	n0, c0, err := signers[0].Commit(drbg.Reader())
	require.NoError(t, err)

	_, err = signers[0].Sign([]byte("ctx"), []byte("msg"), []frost.SigningCommitments{c0}, n0)
	require.ErrorIs(t, err, frost.ErrInvalidNumberOfSigningCommitments)
}

func TestSignRejectsWrongVerifyingKeyCount(t *testing.T) {
	drbg := testdata.New("frost wrong verifying key count")
	outputs := runDKGOutputs(t, drbg, 3, 2)
	outputs[0].VerifyingKeys = outputs[0].VerifyingKeys[:len(outputs[0].VerifyingKeys)-1]
	truncated := frost.NewSigner(outputs[0])
	other := frost.NewSigner(outputs[1])

	n0, c0, err := truncated.Commit(drbg.Reader())
	require.NoError(t, err)
	_, c1, err := other.Commit(drbg.Reader())
	require.NoError(t, err)

	_, err = truncated.Sign([]byte("ctx"), []byte("msg"), []frost.SigningCommitments{c0, c1}, n0)
	require.ErrorIs(t, err, frost.ErrIncorrectNumberOfVerifyingShares)
}

func TestSignRejectsInvalidOwnVerifyingShare(t *testing.T) {
	drbg := testdata.New("frost invalid own verifying share")
	outputs := runDKGOutputs(t, drbg, 3, 2)
	out := outputs[0]

	for i, vk := range out.VerifyingKeys {
		if vk.Identifier.Equal(out.Identifier) == 1 {
			bogus, _ := drbg.KeyPair()
			out.VerifyingKeys[i].VerifyingShare = ristretto255.NewIdentityElement().ScalarBaseMult(bogus)
		}
	}
	tampered := frost.NewSigner(out)
	other := frost.NewSigner(outputs[1])

	n0, c0, err := tampered.Commit(drbg.Reader())
	require.NoError(t, err)
	_, c1, err := other.Commit(drbg.Reader())
	require.NoError(t, err)

	_, err = tampered.Sign([]byte("ctx"), []byte("msg"), []frost.SigningCommitments{c0, c1}, n0)
	require.ErrorIs(t, err, frost.ErrInvalidOwnVerifyingShare)
}

func TestAggregateRejectsMismatchedShareCount(t *testing.T) {
	drbg := testdata.New("frost mismatched share count")
	signers := runDKG(t, drbg, 3, 2)

	packages := runRound(t, drbg, signers[:2], []byte("ctx"), []byte("msg"))
	withDuplicate := append(append([]*frost.SigningPackage{}, packages...), packages[0])

	_, err := frost.Aggregate(signers[0].GroupPublicKey(), withDuplicate)
	require.ErrorIs(t, err, frost.ErrMismatchedSignatureSharesAndSigningCommitments)
}

func TestSigningPackageRoundTripBytes(t *testing.T) {
	drbg := testdata.New("frost wire")
	signers := runDKG(t, drbg, 3, 2)

	packages := runRound(t, drbg, signers[:2], []byte("ctx"), []byte("msg"))
	require.NotEmpty(t, packages[0].Bytes())
}

func TestSignatureRoundTrip(t *testing.T) {
	drbg := testdata.New("frost signature wire")
	signers := runDKG(t, drbg, 3, 2)

	context := []byte("ctx")
	message := []byte("msg")
	packages := runRound(t, drbg, signers[:2], context, message)

	sig, err := frost.Aggregate(signers[0].GroupPublicKey(), packages)
	require.NoError(t, err)

	parsed, err := frost.ParseSignature(sig.Bytes())
	require.NoError(t, err)
	require.True(t, frost.Verify(signers[0].GroupPublicKey(), context, message, parsed))
}
