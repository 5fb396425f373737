package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jh3/agent-session-manager/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "# %s\n%s", a.cfgPath, data)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change a setting and save the config file",
		Long:      "Change a setting and save the config file. Keys: export-path, log-level.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"export-path", "log-level"},
		RunE: func(cmd *cobra.Command, args []string) error {
			// environment overrides must not end up in the file
			cfg, err := config.LoadFile(a.cfgPath)
			if err != nil {
				return err
			}

			switch args[0] {
			case "export-path":
				cfg.ExportPath = args[1]
			case "log-level":
				if _, err := zapcore.ParseLevel(args[1]); err != nil {
					return err
				}
				cfg.Log.Level = args[1]
			default:
				return fmt.Errorf("unknown config key %q", args[0])
			}
			if err := cfg.Save(a.cfgPath); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved %s\n", a.cfgPath)
			return nil
		},
	})

	return cmd
}
