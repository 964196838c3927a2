package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sift/internal/state"
	cmdpkg "github.com/Paintersrp/sift/pkg/cmd"
	"github.com/Paintersrp/sift/pkg/shared/arg"
	"github.com/Paintersrp/sift/pkg/shared/flags"
)

func NewCmdClassify(f *cmdpkg.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [query]",
		Short: "Predict the topic class of a query.",
		Long: heredoc.Doc(`
			Sends the query to the backend classifier and prints the predicted
			class followed by the ids of the documents filed under it.
		`),
		Example: `sift classify "neural networks"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, args, f)
		},
	}

	flags.AddJSON(cmd)
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, args []string, f *cmdpkg.Factory) error {
	if ctx == nil {
		ctx = context.Background()
	}
	query, err := arg.Query(args)
	if err != nil {
		return err
	}
	asJSON, err := flags.HandleJSON(cmd)
	if err != nil {
		return err
	}

	st, err := f.State(state.LogToStderr)
	if err != nil {
		return err
	}

	class, err := st.Backend.PredictClass(ctx, query)
	if err != nil {
		return fmt.Errorf("classify %q: %w", query, err)
	}

	if asJSON {
		return flags.WriteJSON(f.Out, class)
	}
	fmt.Fprintf(f.Out, "Class: %s\n", class.PredictedClass)
	if len(class.RelevantDocs) > 0 {
		fmt.Fprintf(f.Out, "Documents: %s\n", strings.Join(class.RelevantDocs, ", "))
	}
	return nil
}
