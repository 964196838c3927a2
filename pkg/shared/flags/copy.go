package flags

import (
	"github.com/spf13/cobra"
)

func AddCopy(cmd *cobra.Command) {
	cmd.Flags().
		BoolP("copy", "c", false, "Copy the selected document id to the clipboard.")
}

func HandleCopy(cmd *cobra.Command) (bool, error) {
	return cmd.Flags().GetBool("copy")
}
