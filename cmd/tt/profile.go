package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tt/internal/prof"
)

// profSession живёт от PersistentPreRunE до выхода из main.
var profSession *prof.Session

func startProfiling(cmd *cobra.Command, _ []string) error {
	pf := cmd.Root().PersistentFlags()
	var cfg prof.Config
	for name, dst := range map[string]*string{"cpuprofile": &cfg.CPU, "memprofile": &cfg.Mem, "exectrace": &cfg.Trace} {
		v, err := pf.GetString(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	if !cfg.Enabled() {
		return nil
	}
	s, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	profSession = s
	return nil
}

func stopProfiling() error {
	s := profSession
	profSession = nil
	return s.Stop()
}
