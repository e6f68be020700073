// Package frost implements FROST (Flexible Round-Optimized Schnorr
// Threshold signatures) over Ristretto255. A quorum of SimplPedPoP
// shareholders run two rounds, Commit and Sign, then any party runs
// Aggregate to produce a single signature indistinguishable from a
// non-threshold Schnorr signature under the group's public key.
package frost

import (
	"errors"
	"fmt"

	"github.com/frost-ristretto/olaf"
)

// Commit/Sign errors.
var (
	ErrInvalidNumberOfSigningCommitments = errors.New("frost: invalid number of signing commitments")
	ErrMissingOwnSigningCommitment       = errors.New("frost: missing own signing commitment")
	ErrIdentitySigningCommitment         = errors.New("frost: identity signing commitment")
	ErrIncorrectNumberOfVerifyingShares  = errors.New("frost: incorrect number of verifying shares")
	ErrInvalidOwnVerifyingShare          = errors.New("frost: invalid own verifying share")
	ErrInvalidNonceCommitment            = errors.New("frost: invalid nonce commitment")

	// ErrNoncePairConsumed guards the single-use invariant of NoncePair.
	// It is not named in the caller-visible error taxonomy the rest of
	// this package follows, because no source language construct can make
	// the check statically unnecessary in Go: Sign must still refuse a
	// reused NoncePair at runtime.
	ErrNoncePairConsumed = errors.New("frost: nonce pair already consumed")
)

// Aggregate errors.
var (
	ErrEmptySigningPackages                          = errors.New("frost: empty signing packages")
	ErrInvalidNumberOfSigningPackages                = errors.New("frost: invalid number of signing packages")
	ErrMismatchedCommonData                          = errors.New("frost: mismatched common data")
	ErrMismatchedSignatureSharesAndSigningCommitments = errors.New("frost: mismatched signature shares and signing commitments")
	ErrInvalidSignature                              = errors.New("frost: invalid signature")
	errInvalidSignatureShare                         = errors.New("frost: invalid signature share")
)

// Decoding errors.
var (
	ErrDeserialization               = errors.New("frost: deserialization failed")
	ErrSignatureShareDeserialization = errors.New("frost: signature share deserialization failed")
)

// InvalidSignatureShareError reports which signers' partial signatures
// failed verification during Aggregate. Culprit lists their verifying
// shares in the same order as the packages Aggregate was given, enabling
// identifiable abort.
type InvalidSignatureShareError struct {
	Culprit []olaf.VerifyingShare
}

func (e *InvalidSignatureShareError) Error() string {
	return fmt.Sprintf("frost: invalid signature share from %d signer(s)", len(e.Culprit))
}

func (e *InvalidSignatureShareError) Unwrap() error { return errInvalidSignatureShare }
