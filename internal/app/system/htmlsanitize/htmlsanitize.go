// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from user-submitted text
// before it is stored. The storefront renders stored values into the
// page, so sanitizing happens once at the write path.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// strict removes all markup; used for plain-text fields like
	// contact messages and product titles.
	strict = bluemonday.StrictPolicy()

	// ugc allows basic formatting tags; used for product long
	// descriptions, which admins may author with simple markup.
	ugc = bluemonday.UGCPolicy()
)

// PlainText strips every tag from s.
func PlainText(s string) string {
	return strict.Sanitize(s)
}

// RichText keeps benign formatting markup and strips the rest.
func RichText(s string) string {
	return ugc.Sanitize(s)
}
