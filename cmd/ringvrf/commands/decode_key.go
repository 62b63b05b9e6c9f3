package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/spf13/cobra"
)

var DecodeKeyCmd = &cobra.Command{
	Use:   "decode-key [hex key]...",
	Short: "Check that public keys are canonical subgroup points",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		failed := 0
		for _, arg := range args {
			buf, err := hex.DecodeString(arg)
			if err == nil {
				_, err = bandersnatch.Decode(buf)
			}
			if err != nil {
				failed++
				fmt.Printf("%s invalid: %v\n", arg, err)
				continue
			}
			fmt.Printf("%s ok\n", arg)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d keys rejected", failed, len(args))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(DecodeKeyCmd)
}
