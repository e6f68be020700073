// Command olaf-cli drives SimplPedPoP key generation and FROST threshold
// signing from the shell, simulating every participant in one process.
// There is no networking layer in this repository (see the accompanying
// library's non-goals); olaf-cli exists for local experimentation and
// scripted testing of the protocol, not as a production signing daemon.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gtank/ristretto255"
	"github.com/spf13/cobra"

	"github.com/frost-ristretto/olaf"
	"github.com/frost-ristretto/olaf/frost"
	"github.com/frost-ristretto/olaf/simplpedpop"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "olaf-cli",
		Short: "Simulate SimplPedPoP key generation and FROST threshold signing",
	}
	root.AddCommand(keygenCmd(), signCmd(), verifyCmd())
	return root
}

func keygenCmd() *cobra.Command {
	var n, t int
	var outDir string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Simulate a DKG run and write one output file per participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := olaf.Parameters{Participants: n, Threshold: t}

			keypairs := make([]*olaf.SigningKeypair, n)
			pubkeys := make([]*ristretto255.Element, n)
			for i := range n {
				secret, err := randomScalar()
				if err != nil {
					return err
				}
				kp := olaf.NewSigningKeypair(secret)
				keypairs[i] = kp
				pubkeys[i] = kp.Public()
			}

			messages := make([]*simplpedpop.AllMessage, n)
			for i := range n {
				msg, err := simplpedpop.ContributeAll(keypairs[i], params, pubkeys, cryptoRandReader{})
				if err != nil {
					return fmt.Errorf("contribute from participant %d: %w", i, err)
				}
				messages[i] = msg
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			for i := range n {
				out, err := simplpedpop.RecipientAll(keypairs[i], messages)
				if err != nil {
					return fmt.Errorf("recipient step for participant %d: %w", i, err)
				}
				data, err := encodeOutput(out)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, fmt.Sprintf("participant-%d.cbor", i))
				if err := os.WriteFile(path, data, 0o600); err != nil {
					return err
				}
				if i == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "group public key: %s\n", hex.EncodeToString(out.GroupPublicKey.Bytes()))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 3, "number of participants")
	cmd.Flags().IntVar(&t, "t", 2, "signing threshold")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory to write participant output files")
	return cmd
}

func signCmd() *cobra.Command {
	var inDir, quorumFlag, context, message, outFile string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Run a FROST signing round for a quorum and write the aggregated signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			indices, err := parseQuorum(quorumFlag)
			if err != nil {
				return err
			}

			signers := make([]*frost.Signer, len(indices))
			for i, idx := range indices {
				data, err := os.ReadFile(filepath.Join(inDir, fmt.Sprintf("participant-%d.cbor", idx)))
				if err != nil {
					return err
				}
				out, err := decodeOutput(data)
				if err != nil {
					return err
				}
				signers[i] = frost.NewSigner(out)
			}

			nonces := make([]frost.NoncePair, len(signers))
			commitments := make([]frost.SigningCommitments, len(signers))
			for i, s := range signers {
				np, c, err := s.Commit(cryptoRandReader{})
				if err != nil {
					return err
				}
				nonces[i] = np
				commitments[i] = c
			}

			packages := make([]*frost.SigningPackage, len(signers))
			for i, s := range signers {
				p, err := s.Sign([]byte(context), []byte(message), commitments, nonces[i])
				if err != nil {
					return err
				}
				packages[i] = p
			}

			sig, err := frost.Aggregate(signers[0].GroupPublicKey(), packages)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outFile, sig.Bytes(), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signature: %s\n", hex.EncodeToString(sig.Bytes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&inDir, "in-dir", ".", "directory holding participant output files")
	cmd.Flags().StringVar(&quorumFlag, "quorum", "0,1", "comma-separated participant indices to sign with")
	cmd.Flags().StringVar(&context, "context", "", "signing context string")
	cmd.Flags().StringVar(&message, "message", "", "message to sign")
	cmd.Flags().StringVar(&outFile, "out", "signature.bin", "file to write the signature to")
	return cmd
}

func verifyCmd() *cobra.Command {
	var pubkeyHex, sigFile, context, message string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a FROST signature against a group public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkBytes, err := hex.DecodeString(pubkeyHex)
			if err != nil {
				return err
			}
			groupPublicKey, err := ristretto255.NewIdentityElement().SetCanonicalBytes(pkBytes)
			if err != nil {
				return fmt.Errorf("invalid public key: %w", err)
			}

			sigBytes, err := os.ReadFile(sigFile)
			if err != nil {
				return err
			}
			sig, err := frost.ParseSignature(sigBytes)
			if err != nil {
				return err
			}

			if frost.Verify(groupPublicKey, []byte(context), []byte(message), sig) {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			return fmt.Errorf("signature does not verify")
		},
	}

	cmd.Flags().StringVar(&pubkeyHex, "pubkey", "", "hex-encoded group public key")
	cmd.Flags().StringVar(&sigFile, "sig", "signature.bin", "file holding the signature")
	cmd.Flags().StringVar(&context, "context", "", "signing context string")
	cmd.Flags().StringVar(&message, "message", "", "message that was signed")
	return cmd
}

func parseQuorum(flag string) ([]int, error) {
	parts := strings.Split(flag, ",")
	indices := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid quorum index %q: %w", p, err)
		}
		indices[i] = n
	}
	return indices, nil
}
