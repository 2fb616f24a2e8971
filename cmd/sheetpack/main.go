// Package main provides the CLI entry point for sheetpack-go.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack"
)

var (
	outputPath   string
	pretty       bool
	patternsPath string
	delimiter    string
	charset      string
	insecure     bool
	verbose      bool
)

// patternsFile is the schema of the --patterns YAML file.
type patternsFile struct {
	Patterns    map[string]string `yaml:"patterns"`
	DateLayouts []string          `yaml:"date_layouts"`
	TimeLayouts []string          `yaml:"time_layouts"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetpack [path or URL]",
		Short: "Compress spreadsheet contents into a category-to-ranges summary",
		Long: `sheetpack-go parses a spreadsheet (local file or URL) and groups its
cells by content category, compressing each group's cell references
into ranges. The resulting JSON is compact enough to hand to an LLM
while preserving where each kind of data lives.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&patternsPath, "patterns", "", "YAML file with custom patterns and date/time layouts")
	rootCmd.Flags().StringVar(&delimiter, "delimiter", ",", "CSV field delimiter")
	rootCmd.Flags().StringVar(&charset, "charset", "", "CSV charset as an IANA name (default: UTF-8)")
	rootCmd.Flags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification for URL input")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	compressor, err := sheetpack.New(opts)
	if err != nil {
		return err
	}

	var summary sheetpack.Summary
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		summary, err = compressor.ParseURL(cmd.Context(), input)
	} else {
		if _, statErr := os.Stat(input); os.IsNotExist(statErr) {
			return fmt.Errorf("file not found: %s", input)
		}
		summary, err = compressor.ParsePath(input)
	}
	if err != nil {
		return err
	}

	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(summary, "", "  ")
	} else {
		jsonData, err = json.Marshal(summary)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	fmt.Println(string(jsonData))
	return nil
}

func buildOptions() (sheetpack.Options, error) {
	opts := sheetpack.DefaultOptions()

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return opts, err
		}
		opts.Logger = logger
	}

	if patternsPath != "" {
		data, err := os.ReadFile(patternsPath)
		if err != nil {
			return opts, fmt.Errorf("reading patterns file: %w", err)
		}
		var pf patternsFile
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return opts, fmt.Errorf("parsing patterns file: %w", err)
		}
		opts.CustomPatterns = pf.Patterns
		opts.DateLayouts = pf.DateLayouts
		opts.TimeLayouts = pf.TimeLayouts
	}

	if delimiter != "" {
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return opts, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		opts.CSVDelimiter = runes[0]
	}
	opts.CSVCharset = charset
	opts.InsecureSkipVerify = insecure

	return opts, nil
}
