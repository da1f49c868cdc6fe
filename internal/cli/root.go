// Package cli implements the serde command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	serde "github.com/opikgo/serde"
	"github.com/opikgo/serde/i18n"
	"github.com/opikgo/serde/opik"
	"github.com/opikgo/serde/source/fastjson"
	"github.com/opikgo/serde/source/yaml"
)

// ErrInvalid is returned when the input does not satisfy the entity schema.
// The issues have already been printed when it is returned.
var ErrInvalid = errors.New("input is invalid")

// IO bundles the streams the commands use.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO returns the process streams.
func StdIO() IO { return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr} }

type app struct {
	io      IO
	schemas *opik.Schemas
	log     zerolog.Logger
	cfg     Config

	configPath string
	verbose    bool
	flags      Config
}

// NewRootCmd creates the root command.
func NewRootCmd(streams IO) *cobra.Command {
	a := &app{
		io:      streams,
		schemas: opik.NewSchemas(),
		log:     zerolog.Nop(),
		flags:   DefaultConfig(),
	}

	rootCmd := &cobra.Command{
		Use:           "serde",
		Short:         "Validate and normalize Opik REST payloads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&a.flags.Driver, "driver", a.flags.Driver, "JSON driver (gojson, fastjson)")
	pf.StringVar(&a.flags.Format, "format", a.flags.Format, "Input format (json, yaml)")
	pf.BoolVar(&a.flags.CollectAll, "collect-all", false, "Report every issue instead of the first one")
	pf.StringVar(&a.flags.DuplicateKeys, "duplicate-keys", a.flags.DuplicateKeys, "Duplicate key policy (ignore, warn, error)")
	pf.IntVar(&a.flags.MaxDepth, "max-depth", 0, "Maximum nesting depth (0 = unlimited)")
	pf.Int64Var(&a.flags.MaxBytes, "max-bytes", 0, "Maximum input size in bytes (0 = unlimited)")
	pf.StringVar(&a.flags.Language, "lang", a.flags.Language, "Issue message language (en, ja)")

	rootCmd.AddCommand(
		a.newValidateCmd(),
		a.newNormalizeCmd(),
		a.newSchemaCmd(),
		a.newEntitiesCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	level := zerolog.InfoLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.io.Err, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	cfg := DefaultConfig()
	if a.configPath != "" {
		loaded, err := LoadConfig(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		a.log.Debug().Str("path", a.configPath).Msg("loaded configuration")
	}
	a.cfg = mergeFlags(cfg, a.flags, cmd)
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	i18n.SetLanguage(a.cfg.Language)
	return nil
}

// mergeFlags overrides cfg with every flag the user set explicitly.
func mergeFlags(cfg, flags Config, cmd *cobra.Command) Config {
	changed := cmd.Flags().Changed
	if changed("driver") {
		cfg.Driver = flags.Driver
	}
	if changed("format") {
		cfg.Format = flags.Format
	}
	if changed("collect-all") {
		cfg.CollectAll = flags.CollectAll
	}
	if changed("duplicate-keys") {
		cfg.DuplicateKeys = flags.DuplicateKeys
	}
	if changed("max-depth") {
		cfg.MaxDepth = flags.MaxDepth
	}
	if changed("max-bytes") {
		cfg.MaxBytes = flags.MaxBytes
	}
	if changed("lang") {
		cfg.Language = flags.Language
	}
	return cfg
}

func (a *app) entity(name string) (opik.Entity, error) {
	if name == "" {
		return nil, errors.New("--entity is required")
	}
	e, ok := a.schemas.Entity(name)
	if !ok {
		return nil, fmt.Errorf("unknown entity %q (see 'serde entities')", name)
	}
	return e, nil
}

// readInput reads the file argument, or stdin for "-" or no argument.
func (a *app) readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(a.io.In)
		return b, "<stdin>", err
	}
	b, err := os.ReadFile(args[0]) //nolint:gosec // path is provided by caller
	return b, args[0], err
}

// source picks the token source for data according to the configuration.
func (a *app) source(data []byte) serde.Source {
	if a.cfg.Format == FormatYAML {
		return yaml.Bytes(data)
	}
	if a.cfg.Driver == DriverFastJSON {
		return fastjson.Bytes(data)
	}
	return serde.DefaultJSONDriver().NewBytes(data)
}

// checkSize enforces max_bytes before any driver sees the input.
func (a *app) checkSize(data []byte) error {
	if a.cfg.MaxBytes > 0 && int64(len(data)) > a.cfg.MaxBytes {
		return serde.NewIssue(serde.CodeTruncated, nil)
	}
	return nil
}

func (a *app) parseOpt() (serde.ParseOpt, error) {
	return a.cfg.ParseOpt(func(it serde.Issue) {
		a.log.Warn().Str("path", it.Pointer()).Str("code", it.Code).Msg(it.Message)
	})
}
