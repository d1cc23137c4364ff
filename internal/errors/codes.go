package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeNotImplemented   Code = "NOT_IMPLEMENTED"
	CodeTimeout          Code = "TIMEOUT_ERROR"

	// Browser facility
	CodeBrowserLaunchError  Code = "BROWSER_LAUNCH_ERROR"
	CodeBrowserDisconnected Code = "BROWSER_DISCONNECTED"
	CodeBrowserContextError Code = "BROWSER_CONTEXT_ERROR"
	CodeNavigationError     Code = "NAVIGATION_ERROR"
	CodeInteractionError    Code = "INTERACTION_ERROR"
	CodeScreenshotError     Code = "SCREENSHOT_ERROR"

	// Test suites
	CodeSuiteReadError  Code = "SUITE_READ_ERROR"
	CodeSuiteParseError Code = "SUITE_PARSE_ERROR"
	CodeSuiteEmpty      Code = "SUITE_EMPTY"

	// Image comparison
	CodeImageDecodeError   Code = "IMAGE_DECODE_ERROR"
	CodeImageEncodeError   Code = "IMAGE_ENCODE_ERROR"
	CodeComparisonError    Code = "COMPARISON_ERROR"
	CodeArtifactWriteError Code = "ARTIFACT_WRITE_ERROR"

	// Outputs
	CodeReportError         Code = "REPORT_ERROR"
	CodePublishError        Code = "PUBLISH_ERROR"
	CodePublishAuthError    Code = "PUBLISH_AUTH_ERROR"
	CodeVisualDriftDetected Code = "VISUAL_DRIFT_DETECTED"
)

func (c Code) String() string {
	return string(c)
}
