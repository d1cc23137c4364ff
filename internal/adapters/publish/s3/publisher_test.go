package s3

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	portsmocks "github.com/olusolaa/visual-drift-detector/internal/core/ports/mocks"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
	"github.com/olusolaa/visual-drift-detector/mocks"
)

type PublisherTestSuite struct {
	suite.Suite
	mockS3     *mocks.MockS3Client
	mockSTS    *mocks.MockSTSClient
	mockLogger *portsmocks.Logger
	outputDir  string
	publisher  *Publisher
	ctx        context.Context
}

func (s *PublisherTestSuite) SetupTest() {
	s.mockS3 = new(mocks.MockS3Client)
	s.mockSTS = new(mocks.MockSTSClient)
	s.mockLogger = new(portsmocks.Logger)
	s.ctx = context.Background()
	s.outputDir = s.T().TempDir()

	s.mockLogger.On("WithFields", mock.Anything).Return(s.mockLogger).Maybe()
	s.mockLogger.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	s.mockLogger.On("Infof", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	s.mockLogger.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()

	var err error
	s.publisher, err = NewPublisherWithClients(Config{Bucket: "drift-artifacts", Prefix: "/nightly/"},
		s.outputDir, s.mockS3, s.mockSTS, s.mockLogger)
	s.Require().NoError(err)
}

func (s *PublisherTestSuite) TearDownTest() {
	s.mockS3.AssertExpectations(s.T())
	s.mockSTS.AssertExpectations(s.T())
}

func (s *PublisherTestSuite) writeArtifact(rel string) string {
	path := filepath.Join(s.outputDir, filepath.FromSlash(rel))
	s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
	s.Require().NoError(os.WriteFile(path, []byte(rel), 0o644))
	return path
}

func (s *PublisherTestSuite) summary() domain.RunSummary {
	live := s.writeArtifact("screenshots/live/home.png")
	dev := s.writeArtifact("screenshots/dev/home.png")
	diff := s.writeArtifact("diffs/home-diff.png")
	return domain.RunSummary{
		RunID: "run-42",
		Tests: []domain.TestResult{
			{Name: "home", Environment: domain.EnvironmentLive, Passed: true, Screenshot: live},
			{Name: "home", Environment: domain.EnvironmentDev, Passed: true, Screenshot: dev},
			{Name: "checkout", Environment: domain.EnvironmentDev, Screenshot: filepath.Join(s.outputDir, "screenshots/dev/checkout.png")},
		},
		Comparisons: []domain.ComparisonResult{
			{Route: "/", LiveScreenshot: live, DevScreenshot: dev, DiffScreenshot: diff, DiffPercentage: 3.5, HasDifferences: true},
		},
	}
}

func (s *PublisherTestSuite) expectIdentity() {
	s.mockSTS.On("GetCallerIdentity", mock.Anything, mock.Anything, mock.Anything).
		Return(&sts.GetCallerIdentityOutput{Arn: aws.String("arn:aws:iam::123456789012:user/ci")}, nil).Once()
}

func (s *PublisherTestSuite) TestType() {
	s.Equal(PublisherTypeS3, s.publisher.Type())
}

func (s *PublisherTestSuite) TestPublishUploadsArtifactsAndSummary() {
	summary := s.summary()
	s.expectIdentity()
	s.mockS3.On("PutObject", mock.Anything, mock.MatchedBy(func(in *awss3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "drift-artifacts"
	}), mock.Anything).Return(&awss3.PutObjectOutput{}, nil).Times(4)

	s.Require().NoError(s.publisher.Publish(s.ctx, summary))

	keys := s.mockS3.Keys()
	sort.Strings(keys)
	s.Equal([]string{
		"nightly/run-42/diffs/home-diff.png",
		"nightly/run-42/screenshots/dev/home.png",
		"nightly/run-42/screenshots/live/home.png",
		"nightly/run-42/summary.json",
	}, keys)
	s.Equal("screenshots/live/home.png", string(s.mockS3.Uploads["nightly/run-42/screenshots/live/home.png"]))

	var decoded domain.RunSummary
	s.Require().NoError(jsoniter.Unmarshal(s.mockS3.Uploads["nightly/run-42/summary.json"], &decoded))
	s.Equal("run-42", decoded.RunID)
	s.Len(decoded.Comparisons, 1)
}

func (s *PublisherTestSuite) TestPublishIdentityFailure() {
	s.mockSTS.On("GetCallerIdentity", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "ExpiredToken", Message: "token expired"}).Once()

	err := s.publisher.Publish(s.ctx, s.summary())

	s.Require().Error(err)
	s.Equal(errors.CodePublishAuthError, errors.GetCode(err))
	s.mockS3.AssertNotCalled(s.T(), "PutObject", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PublisherTestSuite) TestPublishUploadFailure() {
	s.expectIdentity()
	s.mockS3.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "missing"}).Maybe()

	err := s.publisher.Publish(s.ctx, domain.RunSummary{RunID: "run-1"})

	s.Require().Error(err)
	s.Equal(errors.CodePublishError, errors.GetCode(err))
	_, _, userFacing := errors.GetUserFacingMessage(err)
	s.True(userFacing)
}

func TestPublisherTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherTestSuite))
}

func TestNewPublisherWithClients(t *testing.T) {
	logger := portsmocks.NewLogger(t)
	logger.On("WithFields", mock.Anything).Return(logger).Maybe()

	_, err := NewPublisherWithClients(Config{}, "out", new(mocks.MockS3Client), new(mocks.MockSTSClient), logger)
	if errors.GetCode(err) != errors.CodeConfigValidation {
		t.Fatalf("missing bucket: got %v", err)
	}

	_, err = NewPublisherWithClients(Config{Bucket: "b"}, "out", nil, new(mocks.MockSTSClient), logger)
	if errors.GetCode(err) != errors.CodeConfigValidation {
		t.Fatalf("missing client: got %v", err)
	}

	_, err = NewPublisherWithClients(Config{Bucket: "b"}, "out", new(mocks.MockS3Client), new(mocks.MockSTSClient), nil)
	if errors.GetCode(err) != errors.CodeConfigValidation {
		t.Fatalf("missing logger: got %v", err)
	}
}

func TestHandleAWSError(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name         string
		ctx          context.Context
		err          error
		expectedCode errors.Code
		userFacing   bool
	}{
		{"access denied", context.Background(), &smithy.GenericAPIError{Code: "AccessDenied"}, errors.CodePublishAuthError, true},
		{"signature mismatch", context.Background(), &smithy.GenericAPIError{Code: "SignatureDoesNotMatch"}, errors.CodePublishAuthError, true},
		{"missing bucket", context.Background(), &smithy.GenericAPIError{Code: "NoSuchBucket"}, errors.CodePublishError, true},
		{"throttled", context.Background(), &smithy.GenericAPIError{Code: "SlowDown"}, errors.CodePublishError, false},
		{"context canceled", canceled, &smithy.GenericAPIError{Code: "AccessDenied"}, errors.CodePublishError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handleAWSError(tt.ctx, "PutObject", "bucket/key", tt.err)
			if got := errors.GetCode(err); got != tt.expectedCode {
				t.Fatalf("code = %s, want %s", got, tt.expectedCode)
			}
			if _, _, uf := errors.GetUserFacingMessage(err); uf != tt.userFacing {
				t.Fatalf("user facing = %v, want %v", uf, tt.userFacing)
			}
		})
	}

	if handleAWSError(context.Background(), "PutObject", "x", nil) != nil {
		t.Fatal("nil error should map to nil")
	}
}
