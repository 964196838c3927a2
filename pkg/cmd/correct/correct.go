package correct

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sift/internal/state"
	cmdpkg "github.com/Paintersrp/sift/pkg/cmd"
	"github.com/Paintersrp/sift/pkg/shared/arg"
)

func NewCmdCorrect(f *cmdpkg.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "correct [query]",
		Aliases: []string{"spell"},
		Short:   "Ask the backend for a spelling correction.",
		Example: `sift correct "machin lerning"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args, f)
		},
	}

	return cmd
}

func run(ctx context.Context, args []string, f *cmdpkg.Factory) error {
	if ctx == nil {
		ctx = context.Background()
	}
	query, err := arg.Query(args)
	if err != nil {
		return err
	}

	st, err := f.State(state.LogToStderr)
	if err != nil {
		return err
	}

	corrected, err := st.Backend.Correction(ctx, query)
	if err != nil {
		return fmt.Errorf("correction for %q: %w", query, err)
	}

	if corrected == "" {
		fmt.Fprintf(f.Out, "No correction for %q.\n", query)
		return nil
	}
	fmt.Fprintln(f.Out, corrected)
	return nil
}
