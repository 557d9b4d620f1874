// Package assets provides the stylesheets and cover template used to dress
// rendered reports.
//
// Built-in assets are embedded at compile time. A custom directory can
// override any of them:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// AssetResolver looks in the custom directory first and falls back to the
// embedded copy when an asset is missing there. Names are validated and
// resolved paths must stay inside basePath.
package assets
