package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var CommitmentCmd = &cobra.Command{
	Use:   "commitment [comma separated hex keys]",
	Short: "Print the ring commitment of an ordered ring",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		r, cfg, err := newRegistry()
		if err != nil {
			return err
		}
		ring, err := decodeRing(r, args[0])
		if err != nil {
			return err
		}
		h, ok := r.CreateVerifier(ring, cfg.RingSize)
		if !ok {
			return fmt.Errorf("can't commit to a ring of %d keys with ring size %d", len(ring), cfg.RingSize)
		}
		defer r.ReleaseVerifier(h)
		c := r.Commitment(h).Bytes()
		fmt.Println(hex.EncodeToString(c[:]))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(CommitmentCmd)
}
