package suggest

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sift/internal/state"
	cmdpkg "github.com/Paintersrp/sift/pkg/cmd"
	"github.com/Paintersrp/sift/pkg/shared/arg"
	"github.com/Paintersrp/sift/pkg/shared/flags"
)

type Output struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

func NewCmdSuggest(f *cmdpkg.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [prefix]",
		Short: "List completions for a partial query.",
		Long: heredoc.Doc(`
			Asks the backend for completions of the given text, one per line.
			Queries at or under the minimum length are sent as typed.
		`),
		Example: heredoc.Doc(`
			sift suggest cat
			sift suggest --json "machine le"
		`),
		Args: cobra.MinimumNArgs(1),
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

	suggestions, err := st.Backend.Suggestions(ctx, query)
	if err != nil {
		return fmt.Errorf("suggestions for %q: %w", query, err)
	}

	if asJSON {
		return flags.WriteJSON(f.Out, Output{Query: query, Suggestions: suggestions})
	}
	for _, s := range suggestions {
		fmt.Fprintln(f.Out, s)
	}
	return nil
}
