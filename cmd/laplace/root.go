package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/laplace"
	"github.com/aretw0/laplace/internal/cli"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "laplace",
	Short: "Laplace is an interactive explorer of the Laplace transform",
	Long: `Laplace samples the time response f(t), the frequency response F(jω)
and the s-plane magnitude |F(σ+jω)| of a catalog of classic signals.

Use it one-shot from the terminal, or serve it over HTTP (with live SSE
frames) and MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.Version = strings.TrimSpace(laplace.Version)
}

// newExplorer builds a standalone in-memory Explorer for one-shot commands.
func newExplorer(cmd *cobra.Command) *laplace.Explorer {
	debug, _ := cmd.Flags().GetBool("debug")
	return laplace.New(laplace.WithLogger(cli.NewLogger(debug)))
}

// paramFlags registers the repeatable --param flag.
func paramFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("param", "p", nil, "Parameter value as name=value (repeatable)")
}

func readParams(cmd *cobra.Command) (domain.Params, error) {
	pairs, _ := cmd.Flags().GetStringArray("param")
	return cli.ParseParams(pairs)
}
