package evaluate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/sift/internal/state"
	cmdpkg "github.com/Paintersrp/sift/pkg/cmd"
	"github.com/Paintersrp/sift/pkg/shared/flags"
)

func NewCmdEvaluate(f *cmdpkg.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "evaluate",
		Aliases: []string{"eval"},
		Short:   "Print the backend classifier's evaluation metrics.",
		Example: "sift evaluate --json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, f)
		},
	}

	flags.AddJSON(cmd)
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, f *cmdpkg.Factory) error {
	if ctx == nil {
		ctx = context.Background()
	}
	asJSON, err := flags.HandleJSON(cmd)
	if err != nil {
		return err
	}

	st, err := f.State(state.LogToStderr)
	if err != nil {
		return err
	}

	eval, err := st.Backend.Evaluate(ctx)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	if asJSON {
		return flags.WriteJSON(f.Out, eval)
	}
	fmt.Fprintf(f.Out, "accuracy\t%.4f\n", eval.Accuracy)
	fmt.Fprintf(f.Out, "precision\t%.4f\n", eval.Precision)
	fmt.Fprintf(f.Out, "recall\t%.4f\n", eval.Recall)
	fmt.Fprintf(f.Out, "f1\t%.4f\n", eval.F1Score)
	return nil
}
