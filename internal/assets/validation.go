package assets

import (
	"fmt"
	"strings"
)

// Names of the built-in assets.
const (
	DefaultStyleName  = "report"
	CoverTemplateName = "cover"
)

// AssetLoader loads stylesheets and HTML templates by name. Names carry no
// extension.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName rejects names that could address anything other than a
// single file in the asset directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
