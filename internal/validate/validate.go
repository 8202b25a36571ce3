package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"sucree/internal/domain"
)

var (
	reID     = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reFolder = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)
	reSpaces = regexp.MustCompile(`\s+`)
	reSlug   = regexp.MustCompile(`[^a-z0-9_-]+`)
)

// ID validates a simple resource identifier (product/category ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Folder validates an upload folder name.
func Folder(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reFolder.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > 80 {
		return "", false
	}
	return s, true
}

// Q cleans a free-text catalog query. Empty is valid and means no filter.
func Q(s string) (string, bool) {
	if len([]rune(s)) > 80 {
		s = string([]rune(s)[:80])
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", false
		}
	}
	return s, true
}

func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 99 {
		return 99
	} // clamp to avoid abuse
	return n
}

// Slugify turns a display name into a category id: "Pães Doces" -> "paes-doces".
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	s := strings.ToLower(strings.TrimSpace(plain))
	s = reSpaces.ReplaceAllString(s, "-")
	s = reSlug.ReplaceAllString(s, "")
	if len(s) > 64 {
		s = s[:64]
	}
	return strings.Trim(s, "-")
}

// HeroLink accepts an in-page anchor ("#product-grid") or an absolute http(s) URL.
func HeroLink(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if strings.HasPrefix(s, "#") {
		return s, len(s) > 1 && !strings.ContainsAny(s, " \t\n")
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Price parses a price sent either as a JSON number or a numeric string.
// A decimal comma ("12,50") is accepted.
func Price(raw json.RawMessage) (float64, error) {
	if isNull(raw) {
		return 0, fmt.Errorf("%w: price is required", domain.ErrValidation)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%w: price must be a number", domain.ErrValidation)
		}
		s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, fmt.Errorf("%w: price %q is not numeric", domain.ErrValidation, s)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("%w: price must be a non-negative number", domain.ErrValidation)
	}
	return f, nil
}

// Stock parses an integer stock level. Missing means zero; fractions are truncated.
func Stock(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("%w: stock must be an integer", domain.ErrValidation)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			if f, err = strconv.ParseFloat(s, 64); err != nil {
				return 0, fmt.Errorf("%w: stock %q is not an integer", domain.ErrValidation, s)
			}
		} else {
			f = float64(n)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: stock must be a non-negative integer", domain.ErrValidation)
	}
	return int(f), nil
}

// Ingredients accepts a JSON list (kept as is) or a comma separated string.
func Ingredients(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			list = []string{}
		}
		return list, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: ingredients must be text or a list", domain.ErrValidation)
	}
	return SplitIngredients(s), nil
}

// SplitIngredients splits "Trigo, Ovo, " into ["Trigo" "Ovo"].
func SplitIngredients(s string) []string {
	out := []string{}
	if strings.TrimSpace(s) == "" {
		return out
	}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
