package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/jsonbind/pkg/manifest"
	"github.com/example/jsonbind/pkg/meta"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonbind",
		Short: "jsonbind development tools",
	}
	cmd.AddCommand(newManifestCmd())
	cmd.AddCommand(newKindsCmd())
	return cmd
}

func newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Binding manifest utilities",
	}
	cmd.AddCommand(newManifestVetCmd())
	return cmd
}

// manifestSummary is what `manifest vet` reports for a valid file.
type manifestSummary struct {
	Version    int `json:"version" yaml:"version"`
	Packages   int `json:"packages" yaml:"packages"`
	Types      int `json:"types" yaml:"types"`
	Properties int `json:"properties" yaml:"properties"`
}

func newManifestVetCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "vet <file>",
		Short: "Parse and validate a binding manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			properties := 0
			for _, t := range m.Types {
				properties += len(t.Properties)
			}
			summary := manifestSummary{
				Version:    m.Version,
				Packages:   len(m.Packages),
				Types:      len(m.Types),
				Properties: properties,
			}
			return writeOutput(cmd.OutOrStdout(), format, summary)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: json or yaml")
	return cmd
}

// kindInfo describes one tag kind for the `kinds` listing.
type kindInfo struct {
	Name                string `json:"name" yaml:"name"`
	Repeatable          bool   `json:"repeatable" yaml:"repeatable"`
	TransientCompatible bool   `json:"transientCompatible" yaml:"transientCompatible"`
}

func newKindsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List tag kinds and their conflict policy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			incompatible := map[meta.Kind]bool{}
			for _, k := range meta.TransientIncompatible() {
				incompatible[k] = true
			}

			out := make([]kindInfo, 0, len(meta.Kinds()))
			for _, k := range meta.Kinds() {
				out = append(out, kindInfo{
					Name:                k.String(),
					Repeatable:          k.Repeatable(),
					TransientCompatible: !incompatible[k],
				})
			}
			return writeOutput(cmd.OutOrStdout(), format, out)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: json or yaml")
	return cmd
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q (expected json or yaml)", format)
	}
}
