package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fightgraphs/pipeline/internal/config"
	"github.com/fightgraphs/pipeline/internal/identity"
	"github.com/fightgraphs/pipeline/internal/source"
	"github.com/fightgraphs/pipeline/internal/transform"
)

// previewCmd maps one stored document and prints the rows without writing.
func previewCmd() *cobra.Command {
	var key, format string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the rows one document maps to, without writing",
	}
	cmd.PersistentFlags().StringVar(&key, "key", "", "Natural key: fighter url, event name or fight url")
	cmd.PersistentFlags().StringVar(&format, "format", "json", "Output format (json, yaml)")

	kind := func(use string, fn func(ctx context.Context, src *source.Client, key string) (interface{}, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: "Preview a " + use + " document",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if key == "" {
					return fmt.Errorf("--key is required")
				}
				if format != "json" && format != "yaml" {
					return fmt.Errorf("unknown format %q", format)
				}
				return runSource(func(ctx context.Context, cfg *config.Config, src *source.Client) error {
					v, err := fn(ctx, src, key)
					if err != nil {
						return err
					}
					return writePreview(os.Stdout, v, format)
				})
			},
		}
	}

	cmd.AddCommand(kind(transform.EntityFighter, func(ctx context.Context, src *source.Client, key string) (interface{}, error) {
		doc, err := src.Fighter(ctx, key)
		if err != nil {
			return nil, err
		}
		image, err := src.FighterImage(ctx, key)
		if err != nil {
			return nil, err
		}
		var m transform.MappedFighter
		m.Fighter, m.Record, err = transform.MapFighter(doc, image)
		return m, err
	}))
	cmd.AddCommand(kind(transform.EntityEvent, func(ctx context.Context, src *source.Client, key string) (interface{}, error) {
		doc, err := src.Event(ctx, key)
		if err != nil {
			return nil, err
		}
		var m transform.MappedEvent
		m.Event, m.Fights, err = transform.MapEvent(doc)
		return m, err
	}))
	cmd.AddCommand(kind(transform.EntityFight, func(ctx context.Context, src *source.Client, key string) (interface{}, error) {
		doc, err := src.Fight(ctx, key)
		if err != nil {
			return nil, err
		}
		events, err := src.Events(ctx)
		if err != nil {
			return nil, err
		}
		return transform.MapFight(doc, transform.NewEventIndex(events).EventFor(doc))
	}))
	return cmd
}

// writePreview prints v as indented JSON, or as YAML keyed by the same
// field names.
func writePreview(w io.Writer, v interface{}, format string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if format != "yaml" {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(numbers(generic)); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return enc.Close()
}

// numbers replaces json.Number values so ids print as integers.
func numbers(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, e := range t {
			t[k] = numbers(e)
		}
	case []interface{}:
		for i, e := range t {
			t[i] = numbers(e)
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	}
	return v
}

// idCmd prints the surrogate id of a natural key. It needs no config.
func idCmd() *cobra.Command {
	var digits int
	cmd := &cobra.Command{
		Use:   "id <natural-key>",
		Short: "Print the surrogate id a natural key maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := identity.GenerateID(args[0], digits)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatInt(id, 10))
			return err
		},
	}
	cmd.Flags().IntVar(&digits, "digits", identity.DefaultDigits, "Id width in digits (1-18)")
	return cmd
}
