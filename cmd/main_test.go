package main

import (
	"testing"

	"github.com/spf13/viper"
)

func TestBindFlags_OverrideOnlyWhenSet(t *testing.T) {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")

	cmd := newRootCmd()
	if err := cmd.Flags().Parse([]string{"--port", "9001"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		t.Fatalf("bindFlags: %v", err)
	}

	if got := v.GetString("port"); got != "9001" {
		t.Errorf("port = %q, want 9001", got)
	}
	if got := v.GetString("log.level"); got != "info" {
		t.Errorf("log.level = %q, want default info", got)
	}
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "port", "log-level"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing --%s", name)
		}
	}
	if cmd.Flags().ShorthandLookup("c") == nil {
		t.Errorf("missing -c shorthand")
	}
}
