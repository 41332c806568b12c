package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/softmetapod/netlog/internal/aggregator"
	"github.com/softmetapod/netlog/internal/classifier"
	"github.com/softmetapod/netlog/internal/output"
	"github.com/softmetapod/netlog/internal/source"
)

var (
	outputPath string
	topN       int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <logfile>",
	Short: "Analyze a network log file and produce a troubleshooting report",
	Long: `Analyze reads a network log in one pass, classifies every line against
the built-in recognizers, and writes a sectioned plain-text report.

Examples:
  netlog analyze /var/log/firewall.log
  netlog analyze gateway.log --top 20
  netlog analyze "/var/log/**/*.log" -o report.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().IntVarP(&topN, "top", "n", 10, "number of top entries to display per section")

	viper.BindPFlag("output", analyzeCmd.Flags().Lookup("output"))
	viper.BindPFlag("top", analyzeCmd.Flags().Lookup("top"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	top := viper.GetInt("top")
	if top < 1 {
		return fmt.Errorf("--top must be a positive integer, got %d", top)
	}

	paths, err := source.Expand(args[0])
	if err != nil {
		return err
	}

	reports := make([]string, 0, len(paths))
	for _, path := range paths {
		report, err := analyzeFile(path, top)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}
	combined := strings.Join(reports, "\n")

	if out := viper.GetString("output"); out != "" {
		if err := os.WriteFile(out, []byte(combined), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintln(os.Stderr, styleStatus.Render("report written to "+out))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), combined)
	return nil
}

// analyzeFile runs the whole pipeline for one file: load, classify each line
// in order, aggregate, render.
func analyzeFile(path string, top int) (string, error) {
	lines, err := source.Load(path)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(os.Stderr, styleStatus.Render(fmt.Sprintf("loaded %d lines from %s", len(lines), path)))

	agg := aggregator.New(path, len(lines))
	for _, ln := range lines {
		agg.Consume(classifier.Classify(ln))
	}

	return output.Render(agg.Snapshot(), top), nil
}
