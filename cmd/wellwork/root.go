package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/api"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/cache"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/queue"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/storage"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/surface"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/client/syncer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serverURL string
	stateDir  string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wellwork",
	Short: "Calendar notes with offline sync, a companion bot and wellness nudges",
	Long: `wellwork is the command-line client for a WellWork server.
Notes are cached locally; edits made while the server is unreachable are
queued and replayed automatically once connectivity returns.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:4000", "WellWork server base URL")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Local state directory (default ~/.wellwork)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// clientEnv bundles the wired client subsystems for one invocation.
type clientEnv struct {
	logger *zap.Logger
	api    *api.Client
	cache  *cache.Cache
	sess   api.Session
	queue  *queue.Queue
	sync   *syncer.Syncer
	surf   *surface.Surface
}

func resolveStateDir() (string, error) {
	if stateDir != "" {
		return stateDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".wellwork"), nil
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newEnv wires storage, cache, queue, syncer and surface. With requireLogin
// the persisted session must exist.
func newEnv(requireLogin bool) (*clientEnv, error) {
	dir, err := resolveStateDir()
	if err != nil {
		return nil, err
	}
	logger := newLogger()

	kv, err := storage.Open(dir, storage.WithLogger(logger.Named("storage")))
	if err != nil {
		return nil, err
	}

	env := &clientEnv{
		logger: logger,
		api:    api.New(serverURL),
		cache:  cache.New(kv),
	}

	sess, ok := env.cache.LoadSession()
	if !ok {
		if requireLogin {
			return nil, errors.New("not logged in; run `wellwork login` first")
		}
		return env, nil
	}
	env.sess = sess
	env.api.SetToken(sess.Token)

	env.queue = queue.Open(kv, sess.User.ID, queue.WithLogger(logger.Named("queue")))
	env.sync = syncer.New(env.api, env.cache, env.queue, sess.User.ID,
		syncer.WithLogger(logger.Named("syncer")),
		syncer.OnDrop(func(dropped []queue.Operation) {
			fmt.Fprintf(os.Stderr, "warning: could not sync %d change(s); they were discarded\n", len(dropped))
		}),
	)
	env.surf = surface.New(env.api, env.cache, env.queue, env.sync, sess.User.ID,
		surface.WithLogger(logger.Named("surface")))
	return env, nil
}
