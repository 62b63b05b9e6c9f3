package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify an anonymous ring VRF signature",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runVerify(cmd, -1)
	},
}

func runVerify(cmd *cobra.Command, signer int) error {
	input, err := hexFlag(cmd, "input")
	if err != nil {
		return err
	}
	aux, err := hexFlag(cmd, "aux")
	if err != nil {
		return err
	}
	sig, err := hexFlag(cmd, "signature")
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetString("ring")
	if err != nil {
		return err
	}

	r, cfg, err := newRegistry()
	if err != nil {
		return err
	}
	ring, err := decodeRing(r, list)
	if err != nil {
		return err
	}
	h, ok := r.CreateVerifier(ring, cfg.RingSize)
	if !ok {
		return fmt.Errorf("can't build a verifier for %d keys with ring size %d", len(ring), cfg.RingSize)
	}
	defer r.ReleaseVerifier(h)

	var valid bool
	var out [32]byte
	if signer < 0 {
		valid, out = r.Verify(h, input, aux, sig)
	} else {
		valid, out = r.VerifyIETF(h, input, aux, sig, signer)
	}
	logger.Info("verification done", "valid", valid)
	if !valid {
		return fmt.Errorf("signature rejected")
	}
	fmt.Println(hex.EncodeToString(out[:]))
	return nil
}

func addVerifyFlags(cmd *cobra.Command) {
	cmd.Flags().String("ring", "", "comma separated hex public keys, empty entries are padding")
	cmd.Flags().String("input", "", "hex VRF input")
	cmd.Flags().String("aux", "", "hex auxiliary data")
	cmd.Flags().String("signature", "", "hex signature")
	cmd.MarkFlagRequired("ring")      //nolint:errcheck
	cmd.MarkFlagRequired("signature") //nolint:errcheck
}

func init() {
	addVerifyFlags(VerifyCmd)
	RootCmd.AddCommand(VerifyCmd)
}
