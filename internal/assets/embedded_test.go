package assets

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range []string{"report", "dark", "minimal"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			css, err := loader.LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", name, err)
			}
			for _, class := range []string{".report-h1", ".report-item", ".page-break", ".cover"} {
				if !strings.Contains(css, class) {
					t.Errorf("LoadStyle(%q) has no %s rule", name, class)
				}
			}
		})
	}

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("nope"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(\"nope\") error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("../report"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle(\"../report\") error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	cover, err := loader.LoadTemplate(CoverTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) unexpected error: %v", CoverTemplateName, err)
	}
	if !strings.Contains(cover, "data-cover-end") {
		t.Error("cover template must end with the data-cover-end marker")
	}

	if _, err := loader.LoadTemplate("signature"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(\"signature\") error = %v, want ErrTemplateNotFound", err)
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	want := []string{"dark", "minimal", "report"}
	if diff := cmp.Diff(want, StyleNames()); diff != "" {
		t.Errorf("StyleNames() mismatch (-want +got):\n%s", diff)
	}
}
