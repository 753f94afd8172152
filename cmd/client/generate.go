package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"doc-quiz/internal/dto"
	"doc-quiz/internal/session"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Extract a document and print a generated quiz",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	defaults := session.DefaultParams()
	cmd.Flags().String("model", defaults.Model, "Model name")
	cmd.Flags().Float64("temperature", defaults.Temperature, "Sampling temperature (0.0-1.0)")
	cmd.Flags().Int("max-tokens", defaults.MaxTokens, "Completion token budget (100-3000)")
	cmd.Flags().StringP("output", "o", "json", "Output format: json or yaml")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	model, _ := cmd.Flags().GetString("model")
	temperature, _ := cmd.Flags().GetFloat64("temperature")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	output, _ := cmd.Flags().GetString("output")

	if output != "json" && output != "yaml" {
		return fmt.Errorf("unknown output format %q (want json or yaml)", output)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	sess := session.New(newClient(cmd))
	sess.SetModel(model)
	sess.SetTemperature(temperature)
	sess.SetMaxTokens(maxTokens)

	if err := sess.Upload(cmd.Context(), filepath.Base(args[0]), data); err != nil {
		return fmt.Errorf("extract %s: %w", args[0], err)
	}
	if err := sess.Generate(cmd.Context()); err != nil {
		return fmt.Errorf("generate quiz: %w", err)
	}

	quiz := dto.NewQuizResponse(sess.Quiz())
	out := cmd.OutOrStdout()
	if output == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(quiz); err != nil {
			return fmt.Errorf("encode quiz: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(quiz)
}
