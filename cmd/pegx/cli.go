package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ava12/pegx"
	"github.com/ava12/pegx/grammars"
	"github.com/ava12/pegx/internal/config"
	"github.com/ava12/pegx/internal/logutil"
	"github.com/ava12/pegx/parser"
	"github.com/ava12/pegx/tree"
)

const stdinName = "<stdin>"

// session holds settings shared by subcommands.
type session struct {
	configPath string
	grammar    string
	rule       string
	format     string
	jobs       int

	cfg     config.Config
	logger  *slog.Logger
	parsers map[string]*parser.Parser
}

type result struct {
	name string
	root *tree.Node
	err  error
}

func NewCLI() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:   "pegx",
		Short: "Parse files with bundled PEG grammars",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return s.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "config file name")
	rootCmd.SetUsageTemplate(rootCmd.UsageTemplate() + envDocs())

	cobra.EnableCommandSorting = false

	parseCmd := &cobra.Command{
		Use:   "parse [file ...]",
		Short: "Print parse trees",
		Long:  "Parse files (standard input when none given) and print their parse trees in argument order",
		RunE:  s.parseHandler,
	}
	s.inputFlags(parseCmd)
	parseCmd.Flags().StringVarP(&s.format, "format", "f", "", "output format: "+strings.Join(config.Formats, ", "))

	checkCmd := &cobra.Command{
		Use:   "check file ...",
		Short: "Check that files match a grammar",
		Args:  cobra.MinimumNArgs(1),
		RunE:  s.checkHandler,
	}
	s.inputFlags(checkCmd)

	grammarCmd := &cobra.Command{
		Use:   "grammar [name]",
		Short: "Print grammar rules or list bundled grammars",
		Args:  cobra.MaximumNArgs(1),
		RunE:  s.grammarHandler,
	}

	rootCmd.AddCommand(parseCmd, checkCmd, grammarCmd)
	return rootCmd
}

// envDocs lists environment variables for the usage template.
func envDocs() string {
	vars := config.Default().AsMap()
	var b strings.Builder
	b.WriteString("\nEnvironment Variables:\n\n")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "    %-16s%s\n", name, vars[name].Description)
	}
	return b.String()
}

func (s *session) inputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.grammar, "grammar", "g", "", "grammar name, default is the file name extension: "+strings.Join(grammars.Names(), ", "))
	cmd.Flags().StringVarP(&s.rule, "rule", "r", "", "start rule, default is the grammar start rule")
	cmd.Flags().IntVarP(&s.jobs, "jobs", "j", 0, "number of files parsed concurrently")
}

func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = s.format
	}
	if flags.Changed("jobs") {
		cfg.Jobs = s.jobs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cfg = cfg
	s.logger = logutil.NewLogger(cmd.ErrOrStderr(), cfg.Level())
	s.logger.Debug("settings", "values", cfg.Values())
	s.parsers = make(map[string]*parser.Parser)
	return nil
}

// grammarFor returns grammar name for named input.
func (s *session) grammarFor(name string) (string, error) {
	if s.grammar != "" {
		return s.grammar, nil
	}

	gname := strings.TrimPrefix(filepath.Ext(name), ".")
	if gname == "" || name == stdinName {
		return "", fmt.Errorf("%s: cannot guess grammar, use --grammar", name)
	}
	return gname, nil
}

// parserFor returns the parser for named grammar, creating it on first use.
func (s *session) parserFor(gname string) (*parser.Parser, error) {
	if p, found := s.parsers[gname]; found {
		return p, nil
	}

	g, found := grammars.Lookup(gname)
	if !found {
		return nil, fmt.Errorf("unknown grammar %q, expecting one of %s", gname, strings.Join(grammars.Names(), ", "))
	}

	p := parser.New(g, parser.WithMaxDepth(s.cfg.MaxDepth), parser.WithLogger(s.logger))
	s.parsers[gname] = p
	return p, nil
}

// parseAll parses named inputs concurrently, results are in argument order.
// Parse errors are stored in results, I/O and setup errors abort the run.
func (s *session) parseAll(ctx context.Context, names []string, stdin io.Reader) ([]result, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}

	results := make([]result, len(names))
	parsers := make([]*parser.Parser, len(names))
	gnames := make([]string, len(names))
	for i, name := range names {
		if name == "-" {
			name = stdinName
		}
		results[i].name = name

		var err error
		if gnames[i], err = s.grammarFor(name); err != nil {
			return nil, err
		}
		if parsers[i], err = s.parserFor(gnames[i]); err != nil {
			return nil, err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Jobs)
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r := &results[i]
			var data []byte
			var err error
			if r.name == stdinName {
				data, err = io.ReadAll(stdin)
			} else {
				data, err = os.ReadFile(r.name)
			}
			if err != nil {
				return err
			}

			p := parsers[i]
			rule := s.rule
			if rule == "" {
				rule = p.Grammar().Start()
			}
			r.root, r.err = p.ParseRule(rule, r.name, data)
			var pe *pegx.Error
			if errors.As(r.err, &pe) {
				r.err = pe.Renamed(grammars.Describer(gnames[i]))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *session) parseHandler(cmd *cobra.Command, args []string) error {
	results, err := s.parseAll(cmd.Context(), args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var parsed []result
	for _, r := range results {
		if r.err == nil {
			parsed = append(parsed, r)
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), prettyError(r.err))
		}
	}

	if err := render(cmd.OutOrStdout(), s.cfg.Format, parsed); err != nil {
		return err
	}
	return failures(len(results)-len(parsed), len(results))
}

func (s *session) checkHandler(cmd *cobra.Command, args []string) error {
	results, err := s.parseAll(cmd.Context(), args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	failed := 0
	w := cmd.OutOrStdout()
	for _, r := range results {
		if r.err == nil {
			fmt.Fprintf(w, "%s: ok\n", r.name)
		} else {
			failed++
			fmt.Fprintln(w, prettyError(r.err))
		}
	}
	return failures(failed, len(results))
}

func (s *session) grammarHandler(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, name := range grammars.Names() {
			fmt.Fprintln(w, name)
		}
		return nil
	}

	g, found := grammars.Lookup(args[0])
	if !found {
		return fmt.Errorf("unknown grammar %q, expecting one of %s", args[0], strings.Join(grammars.Names(), ", "))
	}
	_, err := io.WriteString(w, g.String())
	return err
}

func prettyError(err error) string {
	var pe interface{ Pretty() string }
	if errors.As(err, &pe) {
		return pe.Pretty()
	}
	return err.Error()
}

func failures(failed, total int) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d inputs failed", failed, total)
}
