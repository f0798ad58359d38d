package clients

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type AWSOptions struct {
	Region string
	// Endpoint overrides the service endpoint, e.g. DynamoDB Local. Empty
	// uses the AWS default.
	Endpoint string
}

var (
	awsCfg   aws.Config
	awsErr   error
	awsOnce  sync.Once
	endpoint string
)

func GetAWSConfig(ctx context.Context, opts AWSOptions) (aws.Config, error) {
	awsOnce.Do(func() {
		slog.Info("[AWSClient] Initializing AWS Config...",
			slog.String("region", opts.Region),
			slog.String("endpoint", opts.Endpoint))

		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
		if err != nil {
			awsErr = fmt.Errorf("[AWSClient] failed to load AWS config: %w", err)
			return
		}

		awsCfg = cfg
		endpoint = opts.Endpoint
		slog.Info("[AWSClient] AWS Config Initialized")
	})

	return awsCfg, awsErr
}

func GetDynamoDBClient(ctx context.Context, opts AWSOptions) (*dynamodb.Client, error) {
	cfg, err := GetAWSConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}
