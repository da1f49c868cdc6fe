package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	serde "github.com/opikgo/serde"
	js "github.com/opikgo/serde/jsonschema"
)

func (a *app) newValidateCmd() *cobra.Command {
	var (
		entity string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a payload against an entity schema",
		Long: `Parse FILE (or stdin) with the schema of the given entity and print
every issue found as "path (pointer): code: message".`,
		Example: `  serde validate --entity TraceBatchWrite traces.json
  serde validate --entity DatasetItem --format yaml --collect-all item.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.Context(), entity, asJSON, args)
		},
	}
	cmd.Flags().StringVarP(&entity, "entity", "e", "", "Entity name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print issues as a JSON array")
	return cmd
}

func (a *app) runValidate(ctx context.Context, entity string, asJSON bool, args []string) error {
	e, err := a.entity(entity)
	if err != nil {
		return err
	}
	data, name, err := a.readInput(args)
	if err != nil {
		return err
	}
	opt, err := a.parseOpt()
	if err != nil {
		return err
	}

	start := time.Now()
	err = a.checkSize(data)
	if err == nil {
		err = e.Validate(ctx, a.source(data), opt)
	}
	a.log.Debug().
		Str("entity", e.Name()).
		Str("input", name).
		Int("bytes", len(data)).
		Str("driver", a.cfg.Driver).
		Dur("elapsed", time.Since(start)).
		Msg("validated")

	if err != nil && asJSON {
		return a.reportJSON(err)
	}
	if err != nil {
		return a.report(err)
	}
	if asJSON {
		_, err = fmt.Fprintln(a.io.Out, "[]")
		return err
	}
	_, _ = fmt.Fprintf(a.io.Out, "%s: valid %s\n", name, e.Name())
	return nil
}

// report prints Issues and turns them into ErrInvalid. Other errors pass
// through unchanged.
func (a *app) report(err error) error {
	iss, ok := serde.AsIssues(err)
	if !ok {
		return err
	}
	for _, it := range iss {
		writeIssue(a.io.Out, it)
	}
	a.log.Debug().Int("issues", len(iss)).Msg("validation failed")
	return ErrInvalid
}

// reportJSON is report with the issues printed as a JSON array.
func (a *app) reportJSON(err error) error {
	iss, ok := serde.AsIssues(err)
	if !ok {
		return err
	}
	b, merr := gojson.MarshalIndent(iss.Report(), "", "  ")
	if merr != nil {
		return fmt.Errorf("encode issues: %w", merr)
	}
	_, _ = fmt.Fprintln(a.io.Out, string(b))
	return ErrInvalid
}

func writeIssue(w io.Writer, it serde.Issue) {
	path := it.FieldPath()
	if path == "" {
		path = "<root>"
	}
	_, _ = fmt.Fprintf(w, "%s (%s): %s: %s\n", path, it.Pointer(), it.Code, it.Message)
}

func (a *app) newNormalizeCmd() *cobra.Command {
	var (
		entity  string
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "normalize [FILE]",
		Short: "Parse a payload and print its canonical wire form",
		Long: `Parse FILE (or stdin) with the schema of the given entity, serialize the
result and print it as JSON. Unknown keys are dropped, dates are rendered in
UTC and keys follow the schema declaration order.`,
		Example: `  serde normalize --entity DatasetItem item.json
  serde normalize --entity TraceWrite --format yaml trace.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runNormalize(cmd.Context(), entity, compact, args)
		},
	}
	cmd.Flags().StringVarP(&entity, "entity", "e", "", "Entity name")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print compact JSON")
	return cmd
}

func (a *app) runNormalize(ctx context.Context, entity string, compact bool, args []string) error {
	e, err := a.entity(entity)
	if err != nil {
		return err
	}
	data, name, err := a.readInput(args)
	if err != nil {
		return err
	}
	opt, err := a.parseOpt()
	if err != nil {
		return err
	}
	if err := a.checkSize(data); err != nil {
		return a.report(err)
	}
	raw, err := e.Normalize(ctx, a.source(data), opt)
	if err != nil {
		return a.report(err)
	}
	a.log.Debug().Str("entity", e.Name()).Str("input", name).Msg("normalized")

	out, err := gojson.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if !compact {
		var buf bytes.Buffer
		if err := gojson.Indent(&buf, out, "", "  "); err != nil {
			return fmt.Errorf("indent: %w", err)
		}
		out = buf.Bytes()
	}
	_, err = fmt.Fprintln(a.io.Out, string(out))
	return err
}

func (a *app) newSchemaCmd() *cobra.Command {
	var entity string
	cmd := &cobra.Command{
		Use:     "schema",
		Short:   "Print the JSON Schema of an entity",
		Example: `  serde schema --entity TraceBatchWrite`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.entity(entity)
			if err != nil {
				return err
			}
			doc, err := e.Document()
			if err != nil {
				return err
			}
			b, err := js.Marshal(doc)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.io.Out, string(b))
			return err
		},
	}
	cmd.Flags().StringVarP(&entity, "entity", "e", "", "Entity name")
	return cmd
}

func (a *app) newEntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List the entity names accepted by --entity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, e := range a.schemas.Entities() {
				if _, err := fmt.Fprintln(a.io.Out, e.Name()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
