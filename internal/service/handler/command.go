package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/soliscottude/ec2-self-healing-demo/internal/awsclient"
	"github.com/soliscottude/ec2-self-healing-demo/internal/config"
	"github.com/soliscottude/ec2-self-healing-demo/internal/logger"
	"github.com/soliscottude/ec2-self-healing-demo/internal/repository/auditlog"
)

// InvokeOptions controls a local handler invocation from the CLI.
type InvokeOptions struct {
	// ConfigPath is an optional YAML settings file; environment wins.
	ConfigPath string
	// EventPath is the file holding the SNS envelope JSON to process.
	EventPath string
}

// Run wires the handler from the environment and hands control to the Lambda
// runtime. It blocks until the runtime shuts the process down.
func Run(ctx context.Context) error {
	svc, err := newFromEnvironment(ctx, "")
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Starting alarm handler",
		"log_bucket", svc.cfg.LogBucket,
		"default_instance_id", svc.cfg.InstanceID)

	lambda.StartWithOptions(svc.Handle, lambda.WithContext(ctx))

	return nil
}

// Invoke runs the handler once against a local event file, using real AWS
// clients. Intended for smoke-testing a deployed configuration.
func Invoke(ctx context.Context, opts *InvokeOptions) (*Response, error) {
	svc, err := newFromEnvironment(ctx, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(filepath.Clean(opts.EventPath))
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}

	response, err := svc.Handle(ctx, json.RawMessage(raw))
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// newFromEnvironment builds the fully wired service: configuration, log
// level, AWS clients, and the S3 audit repository.
func newFromEnvironment(ctx context.Context, configPath string) (*Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if cfg.LogLevel != "" {
		if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
			logger.SetLevel(level)
		}
	}

	clients, err := awsclient.New(ctx)
	if err != nil {
		return nil, err
	}

	logs := auditlog.NewS3Repository(clients.S3, cfg.LogBucket)

	return NewService(cfg, clients.EC2, clients.EC2, logs), nil
}
