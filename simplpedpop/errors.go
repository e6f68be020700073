// Package simplpedpop implements SimplPedPoP, a one-round publicly
// verifiable distributed key generation. Each participant contributes a
// broadcast carrying an encrypted share for every other recipient; once a
// participant holds all n broadcasts, it can derive its additive share of
// the joint secret, the group's public key, and a verifying share for every
// other participant, without ever seeing the joint secret itself.
package simplpedpop

import (
	"errors"
	"fmt"
)

// Sentinel errors for DKG failures that carry no further structured payload.
// Use errors.Is against these; broadcast-indexed failures are returned as
// one of the typed errors below instead, which also unwrap to a sentinel.
var (
	ErrInvalidParameters         = errors.New("simplpedpop: invalid parameters")
	ErrInvalidRecipientSet       = errors.New("simplpedpop: invalid recipient set")
	ErrInvalidProofOfPossession  = errors.New("simplpedpop: invalid proof of possession")
	ErrInvalidTransportSignature = errors.New("simplpedpop: invalid transport signature")
	ErrShareDecryptionFailure    = errors.New("simplpedpop: share decryption failure")
	ErrInconsistentShare         = errors.New("simplpedpop: inconsistent share")
	ErrUnknownSelf               = errors.New("simplpedpop: recipient not present in broadcast set")
	ErrOutputDeserialization     = errors.New("simplpedpop: output deserialization failed")
	ErrDeserialization           = errors.New("simplpedpop: deserialization failed")
)

// ProofOfPossessionError reports that the proof of possession carried by one
// broadcast failed to verify against its own degree-zero commitment.
type ProofOfPossessionError struct {
	Broadcast int
}

func (e *ProofOfPossessionError) Error() string {
	return fmt.Sprintf("simplpedpop: invalid proof of possession in broadcast %d", e.Broadcast)
}

func (e *ProofOfPossessionError) Unwrap() error { return ErrInvalidProofOfPossession }

// TransportSignatureError reports that a broadcast's outer transport
// signature failed to verify under its claimed sender's long-term key.
type TransportSignatureError struct {
	Broadcast int
}

func (e *TransportSignatureError) Error() string {
	return fmt.Sprintf("simplpedpop: invalid transport signature in broadcast %d", e.Broadcast)
}

func (e *TransportSignatureError) Unwrap() error { return ErrInvalidTransportSignature }

// ShareDecryptionError reports that a broadcast's share ciphertext for this
// recipient could not be recovered.
type ShareDecryptionError struct {
	Broadcast int
}

func (e *ShareDecryptionError) Error() string {
	return fmt.Sprintf("simplpedpop: share decryption failure in broadcast %d", e.Broadcast)
}

func (e *ShareDecryptionError) Unwrap() error { return ErrShareDecryptionFailure }

// InconsistentShareError reports that the share recovered from one
// broadcast did not match the commitment vector that broadcast published,
// naming the offending broadcast by its index in the input slice.
type InconsistentShareError struct {
	Broadcast int
}

func (e *InconsistentShareError) Error() string {
	return fmt.Sprintf("simplpedpop: inconsistent share from broadcast %d", e.Broadcast)
}

func (e *InconsistentShareError) Unwrap() error { return ErrInconsistentShare }
