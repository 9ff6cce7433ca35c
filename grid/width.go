package grid

import "github.com/rivo/uniseg"

// NextCluster consumes one grapheme cluster from s (a user-perceived
// character, possibly composed of multiple code points) and returns its
// text, display width in columns (1 or 2, per Unicode East Asian Width),
// and the remainder of s. Zero-width clusters (combining marks with no
// base, or control bytes that slipped through as text) are reported with
// width 0; the caller decides whether to advance the cursor for them.
//
// Built on github.com/rivo/uniseg, which provides both grapheme
// segmentation and East-Asian-width measurement from one library.
func NextCluster(s string) (cluster string, width int, rest string) {
	if s == "" {
		return "", 0, ""
	}
	c, r, w, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return c, w, r
}

// RuneWidth returns the display width of a single rune: 2 for wide
// characters (CJK ideographs, fullwidth forms, many emoji), 1 for normal
// characters, 0 for zero-width marks and control characters.
func RuneWidth(r rune) int {
	return uniseg.StringWidth(string(r))
}

// StringWidth returns the total display width of s (sum of cluster
// widths).
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
