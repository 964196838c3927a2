package pathutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePathHandlesWindowsSeparators(t *testing.T) {
	posix := filepath.Join("home", "user", ".sift", "config.yaml")
	windows := strings.ReplaceAll(posix, string(filepath.Separator), "\\")

	assert.Equal(t, posix, NormalizePath(windows))
	assert.Empty(t, NormalizePath(""))
}

func TestExpandHome(t *testing.T) {
	home := filepath.Join(string(filepath.Separator), "home", "user")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/logs/sift.log", want: filepath.Join(home, "logs", "sift.log")},
		{name: "relative", in: "logs/sift.log", want: filepath.Join(home, "logs", "sift.log")},
		{name: "absolute", in: filepath.Join(string(filepath.Separator), "var", "log", "sift.log"), want: filepath.Join(string(filepath.Separator), "var", "log", "sift.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in, home))
		})
	}
}

func TestSameFile(t *testing.T) {
	assert.True(t, SameFile("a/b/../c.yaml", filepath.Join("a", "c.yaml")))
	assert.False(t, SameFile("a/c.yaml", "a/d.yaml"))
}
