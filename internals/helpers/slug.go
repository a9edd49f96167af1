package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

const defaultSlugLen = 80

// Slugify turns free text into [a-z0-9-] with diacritics stripped.
// It may return "" when nothing survives.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = defaultSlugLen
	}
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(strings.TrimSpace(s))) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	out := reNonAlnum.ReplaceAllString(b.String(), "-")
	out = strings.Trim(reHyphen.ReplaceAllString(out, "-"), "-")

	if len(out) > maxLen {
		out = strings.Trim(out[:maxLen], "-")
	}
	return out
}

// EnsureUniqueSlug appends -2, -3, ... until no row in table has the slug,
// then falls back to a short time-based suffix.
func EnsureUniqueSlug(ctx context.Context, db *gorm.DB, table, column, base string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = defaultSlugLen
	}
	slug := base
	for i := 0; i < 20; i++ {
		var count int64
		if err := db.WithContext(ctx).Table(table).
			Where(fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(slug)).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = withSuffix(base, fmt.Sprintf("-%d", i+2), maxLen)
	}
	return withSuffix(base, fmt.Sprintf("-%x", time.Now().UnixNano()&0xffff), maxLen), nil
}

func withSuffix(base, suffix string, maxLen int) string {
	keep := maxLen - len(suffix)
	if keep < 1 {
		keep = 1
	}
	if len(base) > keep {
		base = strings.Trim(base[:keep], "-")
	}
	if base == "" {
		base = "x"
	}
	return base + suffix
}
