package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var fixed = time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)

func TestLayout_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		layout string
		lang   string
		want   string
	}{
		{"iso", "YYYY-MM-DD", "en", "2026-03-07"},
		{"european", "DD/MM/YYYY", "en", "07/03/2026"},
		{"short year", "D.M.YY", "en", "7.3.26"},
		{"long english", "MMMM D, YYYY", "en", "March 7, 2026"},
		{"abbreviated english", "D MMM YYYY", "", "7 Mar 2026"},
		{"long arabic", "D MMMM YYYY", "ar", "7 مارس 2026"},
		{"abbreviated arabic uses full name", "MMM YYYY", "ar-EG", "مارس 2026"},
		{"bracket literal", "[Issued] YYYY", "en", "Issued 2026"},
		{"literal letters kept", "Q1 YYYY", "en", "Q1 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := ParseLayout(tt.layout)
			if err != nil {
				t.Fatalf("ParseLayout(%q) unexpected error: %v", tt.layout, err)
			}
			if got := l.Format(fixed, tt.lang); got != tt.want {
				t.Errorf("Format(%q, %q) = %q, want %q", tt.layout, tt.lang, got, tt.want)
			}
		})
	}
}

func TestParseLayout_Errors(t *testing.T) {
	t.Parallel()

	for _, layout := range []string{"", "[unclosed YYYY", strings.Repeat("Y", MaxLayoutLength+1)} {
		if _, err := ParseLayout(layout); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseLayout(%q) error = %v, want ErrInvalidDateFormat", layout, err)
		}
	}
}

func TestResolveDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		lang    string
		want    string
		wantErr bool
	}{
		{"passthrough", "Q1 2026", "en", "Q1 2026", false},
		{"empty passthrough", "", "en", "", false},
		{"auto", "auto", "en", "2026-03-07", false},
		{"auto upper case", "AUTO", "en", "2026-03-07", false},
		{"custom layout", "auto:DD/MM/YYYY", "en", "07/03/2026", false},
		{"preset", "auto:long", "en", "March 7, 2026", false},
		{"preset case insensitive", "auto:US", "en", "03/07/2026", false},
		{"arabic preset", "auto:long", "ar", "مارس 7, 2026", false},
		{"empty layout", "auto:", "en", "", true},
		{"bad syntax", "automatic", "en", "", true},
		{"bad layout", "auto:[YYYY", "en", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, fixed, tt.lang)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("ResolveDate(%q) error = %v, want ErrInvalidDateFormat", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDate(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
