// Package main provides the CLI entrypoint for terminal-typing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JackRKennedy/terminal-typing/internal/config"
	"github.com/JackRKennedy/terminal-typing/internal/content"
	"github.com/JackRKennedy/terminal-typing/internal/model"
	"github.com/JackRKennedy/terminal-typing/internal/store"
	"github.com/JackRKennedy/terminal-typing/internal/textnorm"
	"github.com/JackRKennedy/terminal-typing/internal/tui"
	"github.com/JackRKennedy/terminal-typing/internal/wrap"
)

const (
	defaultMargin      = wrap.Margin
	defaultTimeoutSecs = 10
)

var (
	sessionMargin   int
	sessionTimeout  int
	sessionOffline  bool
	sessionEndpoint string
	sessionPassage  string
	sessionNoCache  bool

	fetchWidth int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "terminal-typing",
		Short:         "Terminal typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSessionCmd,
	}

	// Shared with subcommands that resolve the session config.
	rootCmd.PersistentFlags().IntVar(&sessionMargin, "margin", defaultMargin, "columns reserved at the terminal edge")
	rootCmd.PersistentFlags().IntVar(&sessionTimeout, "timeout", defaultTimeoutSecs, "passage fetch timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&sessionOffline, "offline", false, "use only cached passages, never the network")
	rootCmd.PersistentFlags().StringVar(&sessionEndpoint, "endpoint", content.DefaultEndpoint, "passage source URL")
	rootCmd.Flags().StringVar(&sessionPassage, "passage", "", "type a literal passage instead of fetching one")
	rootCmd.Flags().BoolVar(&sessionNoCache, "no-cache", false, "disable the passage cache")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newFetchCmd())

	return rootCmd
}

func sessionConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "margin", &sessionMargin, fileCfg.Session.Margin)
	applyIntConfig(cmd, "timeout", &sessionTimeout, fileCfg.Session.TimeoutSecs)
	applyBoolConfig(cmd, "offline", &sessionOffline, fileCfg.Session.Offline)
	applyStringConfig(cmd, "endpoint", &sessionEndpoint, fileCfg.Session.Endpoint)

	cfg := model.Config{
		Margin:   sessionMargin,
		Timeout:  time.Duration(sessionTimeout) * time.Second,
		Offline:  sessionOffline,
		Endpoint: sessionEndpoint,
		Passage:  sessionPassage,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Margin <= 0 {
		return fmt.Errorf("--margin must be > 0")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("--endpoint must not be empty")
	}
	return nil
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := sessionConfig(cmd)
	if err != nil {
		return err
	}

	var cache *store.Store
	if !sessionNoCache {
		cache, err = store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open passage cache: %v\n", err)
		} else {
			defer func() {
				if cerr := cache.Close(); cerr != nil {
					logErrf("failed to close passage cache: %v\n", cerr)
				}
			}()
		}
	}

	fetcher := content.NewFetcher(cfg.Endpoint, cfg.Timeout)
	m := tui.NewModel(cfg, fetcher, cache)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and print a passage without starting a session",
		Args:  cobra.NoArgs,
		RunE:  runFetchCmd,
	}
	cmd.Flags().IntVar(&fetchWidth, "width", 0, "wrap width (default: terminal width)")
	return cmd
}

func runFetchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := sessionConfig(cmd)
	if err != nil {
		return err
	}

	fetcher := content.NewFetcher(cfg.Endpoint, cfg.Timeout)
	passage, err := fetcher.FetchPassage(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch passage: %w", err)
	}

	width := fetchWidth
	if width <= 0 {
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || w <= 0 {
			w = 80
		}
		width = w
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s\n\n", passage.Title); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	lines := wrap.WrapWidth(textnorm.Typeable(passage.Body), wrap.EffectiveWidth(width, cfg.Margin))
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# terminal-typing configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# margin = %d        # Columns reserved at the terminal edge
# timeout-secs = %d  # Passage fetch timeout in seconds
# offline = false    # Use only cached passages, never the network
# endpoint = %q
`,
		defaultMargin,
		defaultTimeoutSecs,
		content.DefaultEndpoint,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
