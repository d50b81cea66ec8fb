// Package s3 は S3 バケット上の JSON オブジェクトを給与ソースとして読み込みます。
package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ogurasousui/employee-records/internal/core/employee"
)

// ObjectGetter は必要な S3 操作だけを切り出したインターフェースです。
type ObjectGetter interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

// Reader は s3://<bucket>/<prefix><source>.json を読み込む employee.SampleReader 実装です。
type Reader struct {
	client ObjectGetter
	bucket string
	prefix string
}

// NewReader は既定の認証チェーンで S3 クライアントを構築し Reader を生成します。
func NewReader(ctx context.Context, bucket, prefix, region string) (*Reader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}
	if region != "" {
		cfg.Region = region
	}

	return NewReaderWithClient(awss3.NewFromConfig(cfg), bucket, prefix), nil
}

// NewReaderWithClient はクライアント注入用のコンストラクタです。
func NewReaderWithClient(client ObjectGetter, bucket, prefix string) *Reader {
	return &Reader{client: client, bucket: bucket, prefix: prefix}
}

// ReadSamples は名前付きソースを読み込みます。オブジェクトの不在は失敗です。
func (r *Reader) ReadSamples(ctx context.Context, source string) ([]employee.Sample, error) {
	key := r.prefix + source + ".json"

	out, err := r.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", r.bucket, key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", r.bucket, key, err)
	}

	var samples []employee.Sample
	if err := json.Unmarshal(b, &samples); err != nil {
		return nil, fmt.Errorf("parse s3://%s/%s: %w", r.bucket, key, err)
	}

	return samples, nil
}
