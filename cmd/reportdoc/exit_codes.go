package main

import (
	"errors"
	"os"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/config"
	"github.com/alnah/go-reportdoc/internal/generate"
	"github.com/alnah/go-reportdoc/internal/store"
)

// Exit codes for the reportdoc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Command completed
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied, store errors
	ExitBrowser    = 4 // Browser/Chrome errors
	ExitGeneration = 5 // Model/API errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, reportdoc.ErrBrowserConnect) ||
		errors.Is(err, reportdoc.ErrPageCreate) ||
		errors.Is(err, reportdoc.ErrPageLoad) ||
		errors.Is(err, reportdoc.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, generate.ErrMissingAPIKey) ||
		errors.Is(err, generate.ErrEmptyResponse) ||
		errors.Is(err, generate.ErrInvalidBenchmarkJSON) ||
		errors.Is(err, generate.ErrGeneration) {
		return ExitGeneration
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, generate.ErrLoadBusinessData) ||
		errors.Is(err, store.ErrOpenStore) ||
		errors.Is(err, store.ErrReportNotFound) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, reportdoc.ErrEmptyText) ||
		errors.Is(err, reportdoc.ErrInvalidFormat) ||
		errors.Is(err, reportdoc.ErrInvalidLang) ||
		errors.Is(err, reportdoc.ErrInvalidPageSize) ||
		errors.Is(err, reportdoc.ErrInvalidOrientation) ||
		errors.Is(err, reportdoc.ErrInvalidMargin) ||
		errors.Is(err, reportdoc.ErrInvalidFooterPosition) ||
		errors.Is(err, reportdoc.ErrInvalidWatermarkColor) ||
		errors.Is(err, reportdoc.ErrInvalidWatermarkOpacity) ||
		errors.Is(err, reportdoc.ErrInvalidWatermarkAngle) ||
		errors.Is(err, reportdoc.ErrCoverLogoNotFound) ||
		errors.Is(err, reportdoc.ErrInvalidTOCDepth) ||
		errors.Is(err, reportdoc.ErrInvalidOrphans) ||
		errors.Is(err, reportdoc.ErrInvalidWidows) ||
		errors.Is(err, reportdoc.ErrStyleNotFound) ||
		errors.Is(err, reportdoc.ErrInvalidAssetPath) ||
		errors.Is(err, generate.ErrMissingField) ||
		errors.Is(err, generate.ErrInvalidDetailLevel) ||
		errors.Is(err, generate.ErrInvalidManualType) ||
		errors.Is(err, generate.ErrInvalidLang) ||
		errors.Is(err, generate.ErrTemplateNotFound) ||
		errors.Is(err, store.ErrInvalidRating) {
		return ExitUsage
	}

	return ExitGeneral
}
