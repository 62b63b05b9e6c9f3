package commands

import (
	"github.com/spf13/cobra"
)

var VerifyIetfCmd = &cobra.Command{
	Use:   "verify-ietf",
	Short: "Verify a signature by a known ring member",
	RunE: func(cmd *cobra.Command, _ []string) error {
		signer, err := cmd.Flags().GetInt("signer")
		if err != nil {
			return err
		}
		return runVerify(cmd, signer)
	},
}

func init() {
	addVerifyFlags(VerifyIetfCmd)
	VerifyIetfCmd.Flags().Int("signer", 0, "ring index of the signer")
	RootCmd.AddCommand(VerifyIetfCmd)
}
