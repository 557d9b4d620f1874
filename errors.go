package reportdoc

import (
	"errors"

	"github.com/alnah/go-reportdoc/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyText      = errors.New("report text cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Input validation errors.
	ErrInvalidFormat = errors.New("invalid input format")
	ErrInvalidLang   = errors.New("unsupported language")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Watermark validation errors.
	ErrInvalidWatermarkColor   = errors.New("invalid watermark color")
	ErrInvalidWatermarkOpacity = errors.New("invalid watermark opacity")
	ErrInvalidWatermarkAngle   = errors.New("invalid watermark angle")

	// Cover errors.
	ErrCoverLogoNotFound = errors.New("cover logo file not found")
	ErrCoverRender       = pipeline.ErrCoverRender

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")

	// Page breaks validation errors.
	ErrInvalidOrphans = errors.New("invalid orphans value")
	ErrInvalidWidows  = errors.New("invalid widows value")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
