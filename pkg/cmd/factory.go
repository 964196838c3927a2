package cmd

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/Paintersrp/sift/internal/state"
)

const fallbackWidth = 80

// Factory hands commands their dependencies. State is built on first use so
// persistent flags are parsed before the config is resolved.
type Factory struct {
	Out    io.Writer
	ErrOut io.Writer

	home  string
	state *state.State
}

func NewFactory() *Factory {
	return &Factory{Out: os.Stdout, ErrOut: os.Stderr}
}

// NewFactoryWithHome pins the home directory, which tests point at a temp dir.
func NewFactoryWithHome(home string, out, errOut io.Writer) *Factory {
	return &Factory{Out: out, ErrOut: errOut, home: home}
}

func (f *Factory) Home() (string, error) {
	if f.home != "" {
		return f.home, nil
	}
	home, err := state.GetHomeDir()
	if err != nil {
		return "", err
	}
	f.home = home
	return home, nil
}

func (f *Factory) State(target state.LogTarget) (*state.State, error) {
	if f.state != nil {
		return f.state, nil
	}
	home, err := f.Home()
	if err != nil {
		return nil, err
	}
	st, err := state.NewStateWithHome(home, target)
	if err != nil {
		return nil, err
	}
	f.state = st
	return st, nil
}

func (f *Factory) Close() error {
	if f.state == nil {
		return nil
	}
	err := f.state.Close()
	f.state = nil
	return err
}

// IsTerminal reports whether Out is an interactive terminal.
func (f *Factory) IsTerminal() bool {
	file, ok := f.Out.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// TermWidth is the width of Out, or a fixed fallback when Out is not a
// terminal.
func (f *Factory) TermWidth() int {
	file, ok := f.Out.(*os.File)
	if !ok {
		return fallbackWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}
