package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose    bool
	configPath string
	backend    string
	path       string
	format     string
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "quicknotes",
		Short:         "Take, tag and search short notes from the terminal",
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), opts.verbose))
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&opts.configPath, "config", getConfigPath(), "Path to the config file")
	flags.StringVar(&opts.backend, "backend", "", "Store backend: file, sqlite or memory")
	flags.StringVar(&opts.path, "path", "", "Directory (or database file) holding the notes")
	flags.StringVar(&opts.format, "format", "", "Store format: json or yaml")

	root.AddCommand(
		newListCmd(opts),
		newTagsCmd(opts),
		newAddCmd(opts),
		newDeleteCmd(opts),
	)
	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveConfig layers the config file, .env, environment and flags.
func (o *rootOptions) resolveConfig() (Config, error) {
	cfg := loadConfig(o.configPath)
	if err := applyEnv(&cfg, filepath.Dir(o.configPath)); err != nil {
		return cfg, err
	}
	if o.backend != "" {
		cfg.Store.Backend = o.backend
	}
	if o.path != "" {
		cfg.Store.Path = o.path
	}
	if o.format != "" {
		cfg.Store.Format = o.format
	}
	return cfg, nil
}

// openStore resolves the configuration and loads the persisted notes.
// The caller closes the returned slot.
func (o *rootOptions) openStore(ctx context.Context) (*Store, Slot, Config, error) {
	cfg, err := o.resolveConfig()
	if err != nil {
		return nil, nil, cfg, err
	}
	slot, codec, err := OpenSlot(ctx, cfg.Store)
	if err != nil {
		return nil, nil, cfg, err
	}
	store := NewStore(slot,
		WithKey(cfg.Store.Key),
		WithCodec(codec),
		WithLogger(slog.Default()),
	)
	if err := store.Load(ctx); err != nil {
		slot.Close()
		return nil, nil, cfg, err
	}
	return store, slot, cfg, nil
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	logPath := filepath.Join(filepath.Dir(opts.configPath), "quicknotes.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	f, err := tea.LogToFile(logPath, "quicknotes")
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer f.Close()
	slog.SetDefault(newLogger(f, opts.verbose))

	store, slot, cfg, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer slot.Close()

	m := newModel(ctx, store, newStyles(cfg.Colors), slog.Default())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		query  string
		tags   []string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes matching a search and tag filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, slot, _, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			notes := Filter(store.All(), Query{Text: query, Tags: tags})
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(notes)
			}

			now := time.Now()
			for _, n := range notes {
				line := n.ID + "  " + n.Title
				if len(n.Tags) > 0 {
					line += "  #" + strings.Join(n.Tags, " #")
				}
				fmt.Fprintf(out, "%s  (%s)\n", line, FormatAge(n.Updated(), now))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search title, content and tags")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Only notes carrying this tag (repeatable, all must match)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func newTagsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, slot, _, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slot.Close()

			for _, tag := range AllTags(store.All()) {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var title, content, tags string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, slot, _, err := opts.openStore(ctx)
			if err != nil {
				return err
			}
			defer slot.Close()

			editor := NewEditor(store, nil, slog.Default())
			n, err := editor.CreateNote(ctx)
			if err != nil {
				return err
			}
			draft := editor.Draft()
			if cmd.Flags().Changed("title") {
				draft.Title = title
			}
			draft.Content = content
			draft.Tags = tags
			editor.SetDraft(draft)
			if err := editor.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&content, "content", "", "Note body")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma separated tags")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, slot, _, err := opts.openStore(ctx)
			if err != nil {
				return err
			}
			defer slot.Close()

			var confirm Confirmer = stdinConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirm = ConfirmFunc(func(string) bool { return true })
			}
			deleted, err := NewEditor(store, confirm, slog.Default()).Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// stdinConfirmer asks on out and reads a y/N answer from in.
func stdinConfirmer(in io.Reader, out io.Writer) Confirmer {
	return ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
