package transcript

import (
	"bytes"
	"fmt"
	"testing"

	fuzz "github.com/trailofbits/go-fuzz-utils"

	"github.com/frost-ristretto/olaf/internal/testdata"
)

// FuzzDivergence generates a random sequence of transcript operations and
// performs them on two separately constructed Transcripts, checking that
// every derived output and the final internal state agree. A Transcript
// has no hidden state beyond its accumulated buffer, so this also serves as
// a determinism check: two transcripts fed the same operations in the same
// order must always squeeze the same bytes.
func FuzzDivergence(f *testing.F) {
	drbg := testdata.New("transcript divergence")
	for range 10 {
		f.Add(drbg.Data(1024))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		opCount, err := tp.GetUint16()
		if err != nil {
			t.Skip(err)
		}

		p1 := New("divergence")
		p2 := New("divergence")

		for range opCount % 50 {
			opTypeRaw, err := tp.GetByte()
			if err != nil {
				t.Skip(err)
			}
			label, err := tp.GetString()
			if err != nil {
				t.Skip(err)
			}

			const opTypeCount = 3 // Mix, Derive, ChallengeBytes
			switch opType := opTypeRaw % opTypeCount; opType {
			case 0: // Mix
				input, err := tp.GetBytes()
				if err != nil {
					t.Skip(err)
				}
				p1.Mix(label, input)
				p2.Mix(label, input)
			case 1: // Derive
				n, err := tp.GetUint16()
				if err != nil || n == 0 {
					t.Skip(err)
				}
				res1, res2 := p1.Derive(label, nil, int(n)), p2.Derive(label, nil, int(n))
				if !bytes.Equal(res1, res2) {
					t.Fatalf("divergent Derive outputs: %x != %x", res1, res2)
				}
			case 2: // ChallengeBytes
				n, err := tp.GetUint16()
				if err != nil || n == 0 {
					t.Skip(err)
				}
				out1, out2 := make([]byte, n%256+1), make([]byte, n%256+1)
				p1.ChallengeBytes(label, out1)
				p2.ChallengeBytes(label, out2)
				if !bytes.Equal(out1, out2) {
					t.Fatalf("divergent ChallengeBytes outputs: %x != %x", out1, out2)
				}
			default:
				panic(fmt.Sprintf("unknown operation type: %v", opType))
			}
		}

		if !bytes.Equal(p1.buf, p2.buf) || p1.domain != p2.domain {
			t.Fatal("divergent final transcript state")
		}
	})
}
