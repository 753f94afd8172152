package main

import (
	"os"

	"github.com/spf13/cobra"

	"doc-quiz/internal/client"
	"doc-quiz/internal/config"
	"doc-quiz/internal/logger"
	"doc-quiz/internal/session"
	"doc-quiz/internal/tui"
)

const serverEnv = "DOCQUIZ_SERVER"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "doc-quiz",
		Short:        "Turn documents into multiple-choice quizzes",
		Long:         "doc-quiz uploads a PDF, DOCX, TXT or HTML document to a doc-quiz server, generates a quiz from its text and lets you answer it in the terminal.",
		SilenceUsage: true,
		RunE:         runTUI,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("log-file")
			if path == "" {
				return nil
			}
			return logger.Initialize(config.LoggerConfig{Level: "debug", Env: "production", Output: path})
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().String("server", defaultServer(), "Server base URL (overrides "+serverEnv+" env var)")
	root.PersistentFlags().String("log-file", "", "Write debug logs to this file (the terminal is left to the UI)")

	root.AddCommand(newTUICmd())
	root.AddCommand(newExtractCmd())
	root.AddCommand(newGenerateCmd())
	return root
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive quiz (default)",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	sess := session.New(newClient(cmd))
	return tui.Run(cmd.Context(), sess)
}

// defaultServer returns the DOCQUIZ_SERVER env var, or the local default.
func defaultServer() string {
	if s := os.Getenv(serverEnv); s != "" {
		return s
	}
	return client.DefaultBaseURL
}

func newClient(cmd *cobra.Command) *client.Client {
	server, _ := cmd.Flags().GetString("server")
	return client.New(server)
}
