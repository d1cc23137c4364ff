package s3

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
	"github.com/olusolaa/visual-drift-detector/internal/limiter"
)

const (
	PublisherTypeS3 = "s3"

	summaryObject     = "summary.json"
	uploadConcurrency = 4
)

type Config struct {
	Bucket            string `yaml:"bucket" mapstructure:"bucket" validate:"required"`
	Prefix            string `yaml:"prefix" mapstructure:"prefix"`
	Region            string `yaml:"region" mapstructure:"region"`
	RequestsPerSecond int    `yaml:"requests_per_second" mapstructure:"requests_per_second" validate:"gte=0"`
}

type ObjectClient interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

type IdentityClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Publisher uploads the screenshots, diff images and a JSON summary of a run
// to s3://bucket/prefix/<run id>/.
type Publisher struct {
	cfg       Config
	outputDir string
	objects   ObjectClient
	identity  IdentityClient
	limiter   *limiter.Limiter
	logger    ports.Logger
}

func NewPublisher(ctx context.Context, cfg Config, outputDir string, logger ports.Logger) (*Publisher, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to load default AWS config")
	}
	return NewPublisherWithClients(cfg, outputDir, awss3.NewFromConfig(awsCfg), sts.NewFromConfig(awsCfg), logger)
}

func NewPublisherWithClients(cfg Config, outputDir string, objects ObjectClient, identity IdentityClient, logger ports.Logger) (*Publisher, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for S3 publisher")
	}
	if cfg.Bucket == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "S3 publishing needs a bucket", "Set publish.s3.bucket.")
	}
	if objects == nil || identity == nil {
		return nil, errors.New(errors.CodeConfigValidation, "S3 publisher requires AWS clients")
	}
	logger = logger.WithFields(map[string]any{"component": "s3_publisher", "bucket": cfg.Bucket})
	return &Publisher{
		cfg:       cfg,
		outputDir: outputDir,
		objects:   objects,
		identity:  identity,
		limiter:   limiter.New(cfg.RequestsPerSecond, logger),
		logger:    logger,
	}, nil
}

func (p *Publisher) Type() string {
	return PublisherTypeS3
}

func (p *Publisher) Publish(ctx context.Context, summary domain.RunSummary) error {
	identity, err := p.identity.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return handleAWSError(ctx, "GetCallerIdentity", "sts", err)
	}
	p.logger.Debugf(ctx, "Publishing as %s", aws.ToString(identity.Arn))

	artifacts := p.artifacts(summary)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for _, file := range artifacts {
		file := file
		g.Go(func() error {
			return p.uploadFile(gctx, summary.RunID, file)
		})
	}
	g.Go(func() error {
		return p.uploadSummary(gctx, summary)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	p.logger.Infof(ctx, "Published %d artifacts to s3://%s/%s", len(artifacts)+1, p.cfg.Bucket, p.key(summary.RunID, ""))
	return nil
}

// artifacts lists every existing file referenced by the summary, sorted and
// without duplicates. Failed tests may have no screenshot on disk.
func (p *Publisher) artifacts(summary domain.RunSummary) []string {
	seen := make(map[string]bool)
	add := func(file string) {
		if file == "" || seen[file] {
			return
		}
		if info, err := os.Stat(file); err != nil || info.IsDir() {
			return
		}
		seen[file] = true
	}
	for _, t := range summary.Tests {
		add(t.Screenshot)
	}
	for _, c := range summary.Comparisons {
		add(c.LiveScreenshot)
		add(c.DevScreenshot)
		add(c.DiffScreenshot)
	}

	out := make([]string, 0, len(seen))
	for file := range seen {
		out = append(out, file)
	}
	sort.Strings(out)
	return out
}

func (p *Publisher) uploadFile(ctx context.Context, runID, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, errors.CodePublishError, fmt.Sprintf("cannot read artifact %s", file))
	}
	return p.put(ctx, p.key(runID, p.relative(file)), "image/png", data)
}

func (p *Publisher) uploadSummary(ctx context.Context, summary domain.RunSummary) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CodePublishError, "cannot encode run summary")
	}
	return p.put(ctx, p.key(summary.RunID, summaryObject), "application/json", data)
}

func (p *Publisher) put(ctx context.Context, key, contentType string, data []byte) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, errors.CodePublishError, "rate limiter wait failed")
	}
	_, err := p.objects.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return handleAWSError(ctx, "PutObject", p.cfg.Bucket+"/"+key, err)
	}
	p.logger.Debugf(ctx, "Uploaded %s", key)
	return nil
}

func (p *Publisher) key(runID, name string) string {
	return path.Join(strings.Trim(p.cfg.Prefix, "/"), runID, name)
}

// relative returns file relative to the output directory in slash form, or
// its base name when it lives elsewhere.
func (p *Publisher) relative(file string) string {
	if p.outputDir != "" {
		if rel, err := filepath.Rel(p.outputDir, file); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(file)
}
