package awsclient

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Clients bundles the AWS service clients the handler needs. They are built
// once at cold start and reused for every invocation; timeout and retry
// policy stays with the SDK defaults.
type Clients struct {
	// EC2 serves both the status lookup and the reboot command.
	EC2 *ec2.Client
	// S3 receives the audit log objects.
	S3 *s3.Client
}

// New resolves the default AWS configuration chain (environment, Lambda
// execution role) and constructs the service clients.
func New(ctx context.Context) (*Clients, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Clients{
		EC2: ec2.NewFromConfig(cfg),
		S3:  s3.NewFromConfig(cfg),
	}, nil
}
