package tui

import (
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sift/internal/state"
	"github.com/Paintersrp/sift/internal/tui/search"
	cmdpkg "github.com/Paintersrp/sift/pkg/cmd"
)

func NewCmdTUI(f *cmdpkg.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tui",
		Aliases: []string{"ui"},
		Short:   "Open the interactive search screen.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(f)
		},
	}

	return cmd
}

// Run opens the search screen with logs redirected to the log file.
func Run(f *cmdpkg.Factory) error {
	st, err := f.State(state.LogToFile)
	if err != nil {
		return err
	}
	return search.Run(st)
}
