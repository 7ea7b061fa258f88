package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appconfig "github.com/semmidev/stackvault/internal/config"
)

// S3Usage answers read-only size queries against the object store
// backing the repository.
type S3Usage struct {
	client *s3.Client
}

// NewS3 creates an S3Usage using AWS SDK v2 with static credentials.
func NewS3(cfg *appconfig.Config) (*S3Usage, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.ObjectStoreRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.ObjectStoreAccessKey, cfg.ObjectStoreSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Usage{client: s3.NewFromConfig(awsCfg)}, nil
}

// TotalSize sums the sizes of every object in the bucket.
func (s *S3Usage) TotalSize(ctx context.Context, bucket string) (int64, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: &bucket,
	})

	var total int64
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to list S3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			total += aws.ToInt64(obj.Size)
		}
	}

	return total, nil
}
