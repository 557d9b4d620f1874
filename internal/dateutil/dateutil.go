// Package dateutil formats cover and footer dates from user-friendly layouts
// such as "DD/MM/YYYY" or "MMMM D, YYYY", with month names in English or
// Arabic.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates a malformed layout or "auto" value.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxLayoutLength bounds layout strings.
const MaxLayoutLength = 50

// DefaultLayout is used by a bare "auto".
const DefaultLayout = "YYYY-MM-DD"

// Presets are named layouts accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Tokens, longest first so matching is greedy.
var tokens = []string{"YYYY", "MMMM", "MMM", "YY", "MM", "DD", "M", "D"}

var arabicMonths = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

type part struct {
	token   string
	literal string
}

// Layout is a parsed date layout.
type Layout struct {
	parts []part
}

// ParseLayout parses tokens YYYY, YY, MMMM, MMM, MM, M, DD and D. Text in
// square brackets is copied literally, as is any other character.
func ParseLayout(format string) (Layout, error) {
	if format == "" {
		return Layout{}, fmt.Errorf("%w: layout cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxLayoutLength {
		return Layout{}, fmt.Errorf("%w: layout exceeds %d characters", ErrInvalidDateFormat, MaxLayoutLength)
	}

	var parts []part
	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return Layout{}, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			parts = append(parts, part{literal: format[i+1 : i+1+end]})
			i += end + 2
			continue
		}

		token := matchToken(format[i:])
		if token != "" {
			parts = append(parts, part{token: token})
			i += len(token)
			continue
		}
		parts = append(parts, part{literal: format[i : i+1]})
		i++
	}
	return Layout{parts: parts}, nil
}

func matchToken(s string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

// Format renders t. Month names are Arabic when lang is "ar" (or an "ar-"
// variant) and English otherwise.
func (l Layout) Format(t time.Time, lang string) string {
	arabic := lang == "ar" || strings.HasPrefix(lang, "ar-")

	var sb strings.Builder
	for _, p := range l.parts {
		switch p.token {
		case "":
			sb.WriteString(p.literal)
		case "YYYY":
			sb.WriteString(fmt.Sprintf("%04d", t.Year()))
		case "YY":
			sb.WriteString(fmt.Sprintf("%02d", t.Year()%100))
		case "MMMM", "MMM":
			name := t.Month().String()
			if arabic {
				name = arabicMonths[t.Month()-1]
			} else if p.token == "MMM" {
				name = name[:3]
			}
			sb.WriteString(name)
		case "MM":
			sb.WriteString(fmt.Sprintf("%02d", int(t.Month())))
		case "M":
			sb.WriteString(strconv.Itoa(int(t.Month())))
		case "DD":
			sb.WriteString(fmt.Sprintf("%02d", t.Day()))
		case "D":
			sb.WriteString(strconv.Itoa(t.Day()))
		}
	}
	return sb.String()
}

// ResolveDate expands "auto" (today as YYYY-MM-DD), "auto:LAYOUT" and
// "auto:PRESET" against now. Any other value is returned unchanged.
func ResolveDate(value string, now time.Time, lang string) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	layout := DefaultLayout
	switch {
	case lower == "auto":
	case strings.HasPrefix(lower, "auto:"):
		layout = value[len("auto:"):]
		if layout == "" {
			return "", fmt.Errorf("%w: layout cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := Presets[strings.ToLower(layout)]; ok {
			layout = preset
		}
	default:
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:LAYOUT\"", ErrInvalidDateFormat, value)
	}

	l, err := ParseLayout(layout)
	if err != nil {
		return "", err
	}
	return l.Format(now, lang), nil
}
