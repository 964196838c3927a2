package find

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sift/internal/backend"
	"github.com/Paintersrp/sift/internal/picker"
	"github.com/Paintersrp/sift/internal/render"
	"github.com/Paintersrp/sift/internal/state"
	cmdpkg "github.com/Paintersrp/sift/pkg/cmd"
	searchcmd "github.com/Paintersrp/sift/pkg/cmd/search"
	"github.com/Paintersrp/sift/pkg/shared/arg"
	"github.com/Paintersrp/sift/pkg/shared/flags"
)

// PickFunc chooses one of results.
type PickFunc func(results []backend.Result, renderer *render.Renderer, header string) (backend.Result, error)

type Options struct {
	Pick PickFunc
	Copy func(string) error
}

func NewCmdFind(f *cmdpkg.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "find [query]",
		Aliases: []string{"f"},
		Short:   "Search, then fuzzy pick one result.",
		Long: heredoc.Doc(`
			Runs a search and opens the results in a fuzzy finder with the
			rendered summary as preview. The chosen document id is printed,
			and copied to the clipboard with --copy.
		`),
		Example: heredoc.Doc(`
			sift find "cat food"
			sift find -c transformers
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f, Options{})
		},
	}

	flags.AddCopy(cmd)
	return cmd
}

func run(cmd *cobra.Command, args []string, f *cmdpkg.Factory, opts Options) error {
	if opts.Pick == nil {
		opts.Pick = func(results []backend.Result, r *render.Renderer, header string) (backend.Result, error) {
			return picker.New(results, r, header).Pick("")
		}
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	query, err := arg.Query(args)
	if err != nil {
		return err
	}
	copyID, err := flags.HandleCopy(cmd)
	if err != nil {
		return err
	}

	st, err := f.State(state.LogToStderr)
	if err != nil {
		return err
	}

	out, err := searchcmd.Execute(st, query)
	if err != nil {
		return err
	}
	if len(out.Results) == 0 {
		if out.Correction != "" {
			return fmt.Errorf("no results for %q, did you mean %q?", query, out.Correction)
		}
		return fmt.Errorf("no results for %q", query)
	}

	renderer, err := render.New(st.Config.UI.Theme, f.TermWidth())
	if err != nil {
		return err
	}

	header := fmt.Sprintf("%d results for %q", len(out.Results), query)
	chosen, err := opts.Pick(out.Results, renderer, header)
	if err != nil {
		if errors.Is(err, picker.ErrNoSelection) {
			st.Logger.Debug("find aborted", "query", query)
			return nil
		}
		return err
	}

	fmt.Fprintln(f.Out, chosen.DocumentID)
	if copyID {
		if err := opts.Copy(chosen.DocumentID); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(f.ErrOut, "Copied %s to clipboard\n", chosen.DocumentID)
	}
	return nil
}
