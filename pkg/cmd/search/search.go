package search

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sift/internal/backend"
	"github.com/Paintersrp/sift/internal/render"
	"github.com/Paintersrp/sift/internal/state"
	cmdpkg "github.com/Paintersrp/sift/pkg/cmd"
	"github.com/Paintersrp/sift/pkg/shared/arg"
	"github.com/Paintersrp/sift/pkg/shared/flags"
)

// Output is the JSON shape of a finished search cycle.
type Output struct {
	Query      string           `json:"query"`
	Alpha      *float64         `json:"alpha,omitempty"`
	Results    []backend.Result `json:"results"`
	Correction string           `json:"correction,omitempty"`
}

func NewCmdSearch(f *cmdpkg.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"s", "q"},
		Short:   "Run one search and print the ranked results.",
		Long: heredoc.Doc(`
			Runs a full search cycle without the interactive screen. When the
			backend finds nothing, a spelling correction is requested and printed
			instead.

			The blend weight comes from the config file unless --alpha is given.
		`),
		Example: heredoc.Doc(`
			sift search "cat food"
			sift search --alpha 0.1 machine learning
			sift search --json "neural networks"
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	flags.AddJSON(cmd)
	return cmd
}

func run(cmd *cobra.Command, args []string, f *cmdpkg.Factory) error {
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

	out, err := Execute(st, query)
	if err != nil {
		return err
	}

	if asJSON {
		return flags.WriteJSON(f.Out, out)
	}
	return writeText(f, st, out)
}

// Execute drives one controller search cycle to completion.
func Execute(st *state.State, query string) (Output, error) {
	ctrl := st.NewController()
	defer ctrl.Close()

	ctrl.QueryChanged(query)
	ctrl.Drain(ctrl.Submit())

	result := ctrl.State()
	if result.Err != nil {
		return Output{}, fmt.Errorf("search %q: %w", query, result.Err)
	}

	out := Output{
		Query:      query,
		Results:    result.Results,
		Correction: result.Correction,
	}
	if out.Results == nil {
		out.Results = []backend.Result{}
	}
	if result.Hybrid {
		alpha := result.BlendWeight
		out.Alpha = &alpha
	}
	return out, nil
}

func writeText(f *cmdpkg.Factory, st *state.State, out Output) error {
	if len(out.Results) == 0 {
		if out.Correction != "" {
			fmt.Fprintf(f.Out, "No results for %q. Did you mean %q?\n", out.Query, out.Correction)
			return nil
		}
		fmt.Fprintf(f.Out, "No results for %q.\n", out.Query)
		return nil
	}

	if f.IsTerminal() {
		r, err := render.New(st.Config.UI.Theme, f.TermWidth())
		if err != nil {
			return err
		}
		fmt.Fprintln(f.Out, r.Results(out.Results))
		return nil
	}

	for i, res := range out.Results {
		line := fmt.Sprintf("%d\t%s\t%.4f", i+1, res.DocumentID, res.Score)
		if summary := render.Plain(res.Summary); summary != "" {
			line += "\t" + summary
		}
		fmt.Fprintln(f.Out, strings.TrimRight(line, "\t"))
	}
	return nil
}
