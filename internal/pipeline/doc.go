// Package pipeline turns report text into a styled HTML document.
//
// The stages run in order:
//   - preprocessing (line endings, byte order mark, Markdown placeholders)
//   - HTML conversion, either the report renderer or Goldmark for Markdown
//   - DOM rewrites (heading ids, relative asset paths)
//   - CSS, cover page and table of contents injection
//
// WordEnvelope repackages the result for Word. PDF output lives in the root
// reportdoc package, which drives headless Chrome.
package pipeline
