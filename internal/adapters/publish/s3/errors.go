package s3

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

var authErrorCodes = map[string]bool{
	"AccessDenied":                true,
	"AuthFailure":                 true,
	"ExpiredToken":                true,
	"InvalidAccessKeyId":          true,
	"InvalidClientTokenId":        true,
	"SignatureDoesNotMatch":       true,
	"UnrecognizedClientException": true,
}

// handleAWSError maps an SDK error from operation on target to an AppError.
func handleAWSError(ctx context.Context, operation, target string, err error) error {
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), errors.CodePublishError,
			fmt.Sprintf("context canceled during %s on %s", operation, target))
	}

	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case authErrorCodes[code]:
			return errors.WrapUserFacing(err, errors.CodePublishAuthError,
				fmt.Sprintf("AWS rejected credentials for %s on %s", operation, target),
				"Refresh your AWS credentials or check the IAM policy for s3:PutObject.")
		case code == "NoSuchBucket":
			return errors.WrapUserFacing(err, errors.CodePublishError,
				fmt.Sprintf("bucket %s does not exist", target),
				"Create the bucket or fix publish.s3.bucket.")
		}
	}

	return errors.Wrap(err, errors.CodePublishError, fmt.Sprintf("%s failed for %s", operation, target))
}
