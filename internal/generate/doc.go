// Package generate produces consulting reports, operations manuals and KPI
// benchmarks from a business profile using a large language model.
//
// Prompts ask the model to follow the conventions the report renderer
// understands: numbered "# N. Title" sections, a dashed rule between
// sections, a <page-break> marker before every section after the first, and
// pipe-separated tables. The model sits behind the Generator interface;
// GeminiGenerator is the production implementation.
package generate
