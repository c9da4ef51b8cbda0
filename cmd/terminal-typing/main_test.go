package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func findSubcommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("%s command not registered", name)
	return nil
}

func TestFetchInheritsSessionFlags(t *testing.T) {
	root := newRootCmd()
	fetch := findSubcommand(t, root, "fetch")
	for _, name := range []string{"margin", "timeout", "offline", "endpoint"} {
		if fetch.InheritedFlags().Lookup(name) == nil {
			t.Fatalf("expected fetch to inherit --%s", name)
		}
	}
}

func TestSessionOnlyFlagsStayOnRoot(t *testing.T) {
	root := newRootCmd()
	fetch := findSubcommand(t, root, "fetch")
	for _, name := range []string{"passage", "no-cache"} {
		if fetch.InheritedFlags().Lookup(name) != nil {
			t.Fatalf("--%s must not apply to fetch", name)
		}
		if root.Flags().Lookup(name) == nil {
			t.Fatalf("expected --%s on the root command", name)
		}
	}
}

func TestValidateConfigBounds(t *testing.T) {
	root := newRootCmd()
	if err := root.ParseFlags([]string{"--margin", "0"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := sessionConfig(root)
	if err == nil {
		t.Fatalf("expected zero margin to be rejected, got %+v", cfg)
	}
}
