package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jh3/agent-session-manager/internal/config"
	serrors "github.com/jh3/agent-session-manager/internal/errors"
	"github.com/jh3/agent-session-manager/internal/logging"
	"github.com/jh3/agent-session-manager/internal/session"
)

// app carries what every command needs once flags are parsed
type app struct {
	dataDir    string
	configFile string
	debug      bool

	in  io.Reader
	out io.Writer

	cfg      *config.Config
	cfgPath  string
	log      *zap.Logger
	closeLog func()
	store    *session.Store
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:   "agent-session-manager",
		Short: "Browse, search, export and clean up agent conversation logs",
		Long: `agent-session-manager reads the per-project JSONL conversation logs kept
under the data directory (~/.claude by default), resolves each project
back to its real path, and lets you list, read, rename, export, resume
and trash sessions.

Trashed sessions move to <data-dir>/trash and can be restored until the
trash is emptied.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&a.dataDir, "data-dir", "D", "", "session data root (default $CLAUDE_DATA_DIR or ~/.claude)")
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default "+config.Path("")+")")
	root.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "enable debug logging")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newSearchCmd(a),
		newTrashCmd(a),
		newRestoreCmd(a),
		newDeleteCmd(a),
		newEmptyTrashCmd(a),
		newRenameCmd(a),
		newExportCmd(a),
		newResumeCmd(a),
		newResolveCmd(a),
		newConfigCmd(a),
	)

	return root
}

// setup loads config, opens the log and creates the store. A config file
// that cannot be parsed is reported on warn and replaced by the defaults.
func (a *app) setup(warn io.Writer) error {
	a.cfgPath = config.Path(a.configFile)

	cfg, cfgErr := config.Load(a.cfgPath)
	if cfgErr != nil {
		if !serrors.Is(cfgErr, serrors.KindConfig) {
			return cfgErr
		}
		fmt.Fprintf(warn, "Warning: %v; using default settings\n", cfgErr)
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	log, closeLog, err := logging.New(logging.Options{
		File:  cfg.LogPath(a.cfgPath),
		Level: cfg.Log.Level,
		Debug: a.debug,
	})
	if err != nil {
		return err
	}
	a.log, a.closeLog = log, closeLog
	if cfgErr != nil {
		a.log.Warn("config ignored", zap.String("path", a.cfgPath), zap.Error(cfgErr))
	}

	root := config.DataDir(a.dataDir)
	a.store = session.NewStore(root, session.WithLogger(log))
	a.log.Debug("starting", zap.String("data_dir", root), zap.String("config", a.cfgPath))
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}
