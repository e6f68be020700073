package main

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/gtank/ristretto255"

	"github.com/frost-ristretto/olaf"
	"github.com/frost-ristretto/olaf/simplpedpop"
)

// outputRecord is the CBOR-friendly projection of a simplpedpop.Output:
// every Ristretto255 scalar and point is stored as its canonical 32-byte
// encoding rather than relying on cbor to reach into an opaque type. This
// is operator tooling for exporting a participant's DKG result to disk, a
// different concern from the bit-exact wire formats simplpedpop and frost
// define for protocol messages themselves.
type outputRecord struct {
	Participants   int
	Threshold      int
	GroupPublicKey []byte
	Identifier     []byte
	SecretShare    []byte
	VerifyingKeys  []verifyingKeyRecord
}

type verifyingKeyRecord struct {
	Identifier     []byte
	VerifyingShare []byte
}

func encodeOutput(out *simplpedpop.Output) ([]byte, error) {
	rec := outputRecord{
		Participants:   out.Parameters.Participants,
		Threshold:      out.Parameters.Threshold,
		GroupPublicKey: out.GroupPublicKey.Bytes(),
		Identifier:     out.Identifier.Bytes(),
		SecretShare:    out.SecretShare.Bytes(),
		VerifyingKeys:  make([]verifyingKeyRecord, len(out.VerifyingKeys)),
	}
	for i, vk := range out.VerifyingKeys {
		rec.VerifyingKeys[i] = verifyingKeyRecord{
			Identifier:     vk.Identifier.Bytes(),
			VerifyingShare: vk.VerifyingShare.Bytes(),
		}
	}
	return cbor.Marshal(rec)
}

func decodeOutput(data []byte) (*simplpedpop.Output, error) {
	var rec outputRecord
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	groupPublicKey, err := ristretto255.NewIdentityElement().SetCanonicalBytes(rec.GroupPublicKey)
	if err != nil {
		return nil, err
	}
	identifier, err := ristretto255.NewScalar().SetCanonicalBytes(rec.Identifier)
	if err != nil {
		return nil, err
	}
	secretShare, err := ristretto255.NewScalar().SetCanonicalBytes(rec.SecretShare)
	if err != nil {
		return nil, err
	}

	verifyingKeys := make([]olaf.IdentifiedVerifyingShare, len(rec.VerifyingKeys))
	for i, vk := range rec.VerifyingKeys {
		id, err := ristretto255.NewScalar().SetCanonicalBytes(vk.Identifier)
		if err != nil {
			return nil, err
		}
		share, err := ristretto255.NewIdentityElement().SetCanonicalBytes(vk.VerifyingShare)
		if err != nil {
			return nil, err
		}
		verifyingKeys[i] = olaf.IdentifiedVerifyingShare{Identifier: id, VerifyingShare: share}
	}

	return &simplpedpop.Output{
		Parameters:     olaf.Parameters{Participants: rec.Participants, Threshold: rec.Threshold},
		GroupPublicKey: groupPublicKey,
		VerifyingKeys:  verifyingKeys,
		SecretShare:    secretShare,
		Identifier:     identifier,
	}, nil
}
