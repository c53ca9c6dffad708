package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soliscottude/ec2-self-healing-demo/internal/service/handler"
	"github.com/soliscottude/ec2-self-healing-demo/internal/version"
)

var (
	// configPath stores the path to an optional YAML settings file.
	configPath string

	// rootCmd represents the base command for the local handler CLI.
	rootCmd = &cobra.Command{
		Use:   "alarmctl",
		Short: "Run the self-healing alarm handler locally.",
		Long: `Command-line companion to the Lambda alarm handler.

Runs the exact handler code path against real AWS clients, which makes it
suitable for smoke-testing a deployed configuration (bucket permissions,
instance permissions, alarm payload shape) without going through SNS.`,
	}

	// invokeCmd runs the handler once against an event file.
	invokeCmd = &cobra.Command{
		Use:   "invoke <event-file>",
		Short: "Invoke the handler once with an SNS envelope read from a file.",
		Long: `Reads an SNS envelope JSON document from the given file and processes it
exactly as the deployed handler would: the EC2 and S3 calls are real.

Configuration comes from the environment (LOG_BUCKET, INSTANCE_ID,
AWS_REGION, LOG_LEVEL), optionally overlaid on a YAML settings file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &handler.InvokeOptions{
				ConfigPath: configPath,
				EventPath:  args[0],
			}

			response, err := handler.Invoke(ctx, options)
			if err != nil {
				return err
			}

			return printResponse(cmd, response)
		},
	}
)

// Execute runs the alarmctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// printResponse renders the handler response as indented JSON on stdout.
func printResponse(cmd *cobra.Command, response *handler.Response) error {
	output, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(output))

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	invokeCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to optional settings file")

	rootCmd.AddCommand(invokeCmd)
}
