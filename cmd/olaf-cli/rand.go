package main

import (
	"crypto/rand"
	"io"

	"github.com/gtank/ristretto255"
)

// cryptoRandReader adapts crypto/rand.Reader to io.Reader so it can feed
// ContributeAll, Commit, and the rest of this CLI's calls into the
// library's rand io.Reader parameters.
type cryptoRandReader struct{}

func (cryptoRandReader) Read(p []byte) (int, error) { return io.ReadFull(rand.Reader, p) }

func randomScalar() (*ristretto255.Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return nil, err
	}
	s, err := ristretto255.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		return nil, err
	}
	return s, nil
}
