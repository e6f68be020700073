package simplpedpop

import (
	"encoding/binary"

	"github.com/gtank/ristretto255"

	"github.com/frost-ristretto/olaf"
)

// AllMessage is the single broadcast a SimplPedPoP contributor sends to
// every recipient: its polynomial commitment, one encrypted share per
// recipient, and the two signatures that let any holder verify it without
// further interaction with the contributor.
type AllMessage struct {
	// RecipientPubkeys is the full recipient set, sorted ascending by
	// canonical encoding. Every honest broadcast in a run carries the same
	// slice; a participant's Identifier is derived from its position in
	// this slice (see olaf.DeriveIdentifiers).
	RecipientPubkeys [][]byte
	Parameters       olaf.Parameters
	// Commitment is the contributor's polynomial commitment, length
	// Parameters.Threshold.
	Commitment []*ristretto255.Element
	// Ciphertexts holds one encrypted share per recipient, in
	// RecipientPubkeys order.
	Ciphertexts        []*ristretto255.Scalar
	EphemeralPublic    *ristretto255.Element
	ProofOfPossession  []byte
	TransportSignature []byte
}

// signedPrefix is the canonical encoding of every field but the transport
// signature: the payload that signature is computed over.
func (m *AllMessage) signedPrefix() []byte {
	n := m.Parameters.Participants
	t := m.Parameters.Threshold

	out := make([]byte, 0, 4+n*32+t*32+n*32+32+64)
	out = binary.BigEndian.AppendUint16(out, uint16(n))
	out = binary.BigEndian.AppendUint16(out, uint16(t))
	for _, pk := range m.RecipientPubkeys {
		out = append(out, pk...)
	}
	for _, c := range m.Commitment {
		out = append(out, c.Bytes()...)
	}
	for _, c := range m.Ciphertexts {
		out = append(out, c.Bytes()...)
	}
	out = append(out, m.EphemeralPublic.Bytes()...)
	out = append(out, m.ProofOfPossession...)
	return out
}

// Bytes returns the canonical wire encoding of the broadcast:
// [u16 n][u16 t][n x pubkey][t x commitment point][n x ciphertext scalar]
// [ephemeral point][pop signature][transport signature].
func (m *AllMessage) Bytes() []byte {
	return append(m.signedPrefix(), m.TransportSignature...)
}

// ParseAllMessage decodes a broadcast previously produced by
// (*AllMessage).Bytes, validating that every scalar and group element it
// contains is canonically encoded.
func ParseAllMessage(data []byte) (*AllMessage, error) {
	if len(data) < 4 {
		return nil, ErrDeserialization
	}

	n := int(binary.BigEndian.Uint16(data[0:2]))
	t := int(binary.BigEndian.Uint16(data[2:4]))
	offset := 4

	want := 4 + n*32 + t*32 + n*32 + 32 + 64 + 64
	if len(data) != want {
		return nil, ErrDeserialization
	}

	pubkeys := make([][]byte, n)
	for i := range n {
		if _, err := ristretto255.NewIdentityElement().SetCanonicalBytes(data[offset : offset+32]); err != nil {
			return nil, ErrDeserialization
		}
		pubkeys[i] = append([]byte(nil), data[offset:offset+32]...)
		offset += 32
	}

	commitment := make([]*ristretto255.Element, t)
	for i := range t {
		e, err := ristretto255.NewIdentityElement().SetCanonicalBytes(data[offset : offset+32])
		if err != nil {
			return nil, ErrDeserialization
		}
		commitment[i] = e
		offset += 32
	}

	ciphertexts := make([]*ristretto255.Scalar, n)
	for i := range n {
		s, err := ristretto255.NewScalar().SetCanonicalBytes(data[offset : offset+32])
		if err != nil {
			return nil, ErrDeserialization
		}
		ciphertexts[i] = s
		offset += 32
	}

	ephemeral, err := ristretto255.NewIdentityElement().SetCanonicalBytes(data[offset : offset+32])
	if err != nil {
		return nil, ErrDeserialization
	}
	offset += 32

	pop := append([]byte(nil), data[offset:offset+64]...)
	offset += 64
	transport := append([]byte(nil), data[offset:offset+64]...)

	return &AllMessage{
		RecipientPubkeys:   pubkeys,
		Parameters:         olaf.Parameters{Participants: n, Threshold: t},
		Commitment:         commitment,
		Ciphertexts:        ciphertexts,
		EphemeralPublic:    ephemeral,
		ProofOfPossession:  pop,
		TransportSignature: transport,
	}, nil
}
