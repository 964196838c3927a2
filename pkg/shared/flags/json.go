package flags

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func AddJSON(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print machine-readable JSON instead of text")
}

func HandleJSON(cmd *cobra.Command) (bool, error) {
	return cmd.Flags().GetBool("json")
}

// WriteJSON writes v indented, followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
