package root

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/sift/internal/constants"
	cmdpkg "github.com/Paintersrp/sift/pkg/cmd"
	"github.com/Paintersrp/sift/pkg/cmd/classify"
	"github.com/Paintersrp/sift/pkg/cmd/correct"
	"github.com/Paintersrp/sift/pkg/cmd/evaluate"
	"github.com/Paintersrp/sift/pkg/cmd/find"
	"github.com/Paintersrp/sift/pkg/cmd/initialize"
	"github.com/Paintersrp/sift/pkg/cmd/search"
	"github.com/Paintersrp/sift/pkg/cmd/suggest"
	"github.com/Paintersrp/sift/pkg/cmd/tui"
)

const envPrefix = "SIFT"

func NewCmdRoot(f *cmdpkg.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Search a document index from the terminal.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			A terminal client for a document search backend. Type to get
			completions, press enter to search, and accept spelling corrections
			when nothing matches.

			With no subcommand the interactive search screen opens.
		`),
		Example: heredoc.Doc(`
			sift
			sift search "cat food"
			sift --backend http://10.0.0.2:5000 find transformers
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(f)
		},
	}

	cmd.PersistentFlags().String("backend", "", "Backend base URL, overriding the config file.")
	cmd.PersistentFlags().Float64("alpha", 0, "Blend weight for hybrid search (0 - 0.25).")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, or error.")
	bindFlags(cmd)

	cmd.AddCommand(
		initialize.NewCmdInit(f),
		tui.NewCmdTUI(f),
		search.NewCmdSearch(f),
		suggest.NewCmdSuggest(f),
		correct.NewCmdCorrect(f),
		find.NewCmdFind(f),
		classify.NewCmdClassify(f),
		evaluate.NewCmdEvaluate(f),
	)

	return cmd
}

// bindFlags lets SIFT_BACKEND, SIFT_ALPHA and SIFT_LOG_LEVEL stand in for
// the persistent flags.
func bindFlags(cmd *cobra.Command) {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for _, name := range []string{"backend", "alpha", "log-level"} {
		_ = viper.BindPFlag(name, cmd.PersistentFlags().Lookup(name))
	}
}
