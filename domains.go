// Package olaf implements the shared scaffolding that the simplpedpop and
// frost packages build on: participant identifiers, long-term keypairs, and
// the domain-separation labels that keep their transcripts from colliding.
//
// olaf itself never runs a protocol round; it is the vocabulary the two
// sub-protocols speak.
package olaf

// Domain-separation labels, exact ASCII, shared by the DKG and FROST
// transcripts. Each label scopes a Transcript to one purpose so that a
// challenge derived for one use can never be replayed as a challenge for
// another.
const (
	DomainIdentifiers       = "OLAF-SPP-ID"
	DomainShareEncryption   = "OLAF-SPP-ENC"
	DomainProofOfPossession = "OLAF-SPP-POP"
	DomainTransport         = "OLAF-SPP-TRANSPORT"
	DomainFROST             = "OLAF-FROST"
	DomainFROSTBinding      = "OLAF-FROST-BINDING"
	DomainFROSTChallenge    = "OLAF-FROST-CHALLENGE"
)

// Bounds on the (participants, threshold) pair that every DKG run and FROST
// session is parameterized by.
const (
	MinParticipants = 2
	MaxParticipants = 65535
	MinThreshold    = 2
)
