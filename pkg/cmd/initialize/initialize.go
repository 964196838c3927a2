/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/erikgeiser/promptkit/textinput"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/sift/internal/config"
	cmdpkg "github.com/Paintersrp/sift/pkg/cmd"
)

// Answers holds what the user entered during setup.
type Answers struct {
	BackendURL string
	Hybrid     bool
	Alpha      float64
	Theme      string
}

type prompter interface {
	Text(prompt, initial string, validate func(string) error) (string, error)
	Confirm(prompt string, initial bool) (bool, error)
	Choose(prompt string, choices []string) (string, error)
}

func NewCmdInit(f *cmdpkg.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Set up the sift configuration.",
		Long: heredoc.Doc(`
			Walks through the backend address, hybrid search, the blend weight,
			and the render theme, then writes ~/.sift/config.yaml.
		`),
		Example: "sift init",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f, promptkitPrompter{})
		},
	}

	return cmd
}

func run(f *cmdpkg.Factory, p prompter) error {
	home, err := f.Home()
	if err != nil {
		return err
	}
	cfg, err := config.Load(home)
	if err != nil {
		// Missing or broken files are replaced rather than blocking setup.
		cfg = config.Default()
		cfg.SetHome(home)
	}

	answers, err := ask(p, cfg)
	if err != nil {
		return err
	}
	applyAnswers(cfg, answers)

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(f.Out, "Initialization complete! Config written to %s\n", cfg.GetConfigPath())
	return nil
}

func ask(p prompter, cfg *config.Config) (Answers, error) {
	var a Answers
	var err error

	a.BackendURL, err = p.Text("Backend URL:", cfg.Backend.URL, config.ValidateBackendURL)
	if err != nil {
		return a, err
	}

	a.Hybrid, err = p.Confirm("Enable hybrid search?", cfg.HybridEnabled())
	if err != nil {
		return a, err
	}

	a.Alpha = cfg.BlendWeight()
	if a.Hybrid {
		raw, err := p.Text(
			"Blend weight (0 - 0.25):",
			strconv.FormatFloat(a.Alpha, 'f', -1, 64),
			validateAlpha,
		)
		if err != nil {
			return a, err
		}
		a.Alpha, _ = strconv.ParseFloat(strings.TrimSpace(raw), 64)
	}

	a.Theme, err = p.Choose("Render theme:", []string{"auto", "dark", "light"})
	if err != nil {
		return a, err
	}
	return a, nil
}

func validateAlpha(raw string) error {
	alpha, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", raw)
	}
	return config.ValidateAlpha(alpha)
}

func applyAnswers(cfg *config.Config, a Answers) {
	cfg.Backend.URL = strings.TrimSpace(a.BackendURL)
	hybrid := a.Hybrid
	cfg.Search.Hybrid = &hybrid
	alpha := a.Alpha
	cfg.Search.Alpha = &alpha
	cfg.UI.Theme = a.Theme
}

type promptkitPrompter struct{}

func (promptkitPrompter) Text(prompt, initial string, validate func(string) error) (string, error) {
	input := textinput.New(prompt)
	input.InitialValue = initial
	input.Validate = validate
	return input.RunPrompt()
}

func (promptkitPrompter) Confirm(prompt string, initial bool) (bool, error) {
	value := confirmation.No
	if initial {
		value = confirmation.Yes
	}
	return confirmation.New(prompt, value).RunPrompt()
}

func (promptkitPrompter) Choose(prompt string, choices []string) (string, error) {
	sel := selection.New(prompt, choices)
	sel.Filter = nil
	return sel.RunPrompt()
}
