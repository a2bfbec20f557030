package main

import (
	"os"

	"github.com/aretw0/laplace/internal/cli"
	"github.com/aretw0/laplace/internal/presentation/chart"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the signal catalog",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return cli.ListSignals(cmd.OutOrStdout(), newExplorer(cmd), cli.OutputOptions{JSON: asJSON})
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <signal>",
	Short: "Show formulas, poles and parameters of a signal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := readParams(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cli.OutputOptions{JSON: asJSON, Styled: cli.IsTerminal(os.Stdout)}
		return cli.Describe(cmd.OutOrStdout(), newExplorer(cmd), args[0], params, out)
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample <signal>",
	Short: "Sample the time, frequency and s-plane views of a signal",
	Long: `Samples a signal over the fixed grids and prints a summary of each view.
With --json the full frame is printed; undefined points (poles) are null.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := readParams(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return cli.Sample(cmd.Context(), cmd.OutOrStdout(), newExplorer(cmd), args[0], params, cli.OutputOptions{JSON: asJSON})
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <signal>",
	Short: "Draw every view of a signal as PNG or SVG charts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := readParams(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("out")
		rawFormat, _ := cmd.Flags().GetString("format")
		format, err := chart.ParseFormat(rawFormat)
		if err != nil {
			return err
		}
		return cli.RenderCharts(cmd.Context(), cmd.OutOrStdout(), newExplorer(cmd), args[0], params, dir, format)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <signal>",
	Short: "Write the sampled views of a signal to an xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := readParams(cmd)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("out")
		return cli.ExportWorkbook(cmd.Context(), cmd.OutOrStdout(), newExplorer(cmd), args[0], params, path)
	},
}

var polesCmd = &cobra.Command{
	Use:   "poles <signal>",
	Short: "Print the pole-zero map of a signal as a Mermaid chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := readParams(cmd)
		if err != nil {
			return err
		}
		return cli.PoleZeroMap(cmd.OutOrStdout(), newExplorer(cmd), args[0], params)
	},
}

func init() {
	rootCmd.AddCommand(listCmd, describeCmd, sampleCmd, renderCmd, exportCmd, polesCmd)

	listCmd.Flags().Bool("json", false, "Print the catalog as JSON")

	paramFlags(describeCmd)
	describeCmd.Flags().Bool("json", false, "Print the catalog entry as JSON")

	paramFlags(sampleCmd)
	sampleCmd.Flags().Bool("json", false, "Print the full frame as JSON")

	paramFlags(renderCmd)
	renderCmd.Flags().StringP("out", "o", "charts", "Output directory")
	renderCmd.Flags().StringP("format", "f", "png", "Image format: png or svg")

	paramFlags(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Output file (default <signal>.xlsx)")

	paramFlags(polesCmd)
}
