package itinerary

import (
	"fmt"
	"regexp"
	"strings"
)

// URL fragments that are known to serve broken images.
var brokenURLFragments = []string{
	"googleusercontent.com/gps-cs-s/",
	"brw-",
	"ZAxdA-eob4MR40Zy",
}

var (
	blankRuns = regexp.MustCompile(`\n{3,}`)
	imageLine = regexp.MustCompile(`(?m)^Image: (\S+)`)
)

const (
	maxImageURLLen = 500
	maxEmbedImages = 6

	imagesHeading       = "## 📸 Destination Images"
	practicalTipsAnchor = "## Practical Tips"
)

// CleanContent strips known-broken URL artifacts and collapses the
// whitespace noise models tend to emit.
func CleanContent(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "*" {
			continue
		}
		if len(line) > 200 && strings.Contains(line, "http") {
			continue
		}
		if containsBrokenFragment(line) && strings.Contains(line, "http") {
			continue
		}
		kept = append(kept, line)
	}

	out := strings.Join(kept, "\n")
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// EmbedImages harvests image URLs from the hotel and place blocks and
// appends them as a gallery section, before the practical-tips section
// when one exists.
func EmbedImages(itinerary, hotelsText, placesText string) string {
	urls := extractImageURLs(hotelsText + "\n" + placesText)
	if len(urls) == 0 {
		return itinerary
	}

	var gallery strings.Builder
	gallery.WriteString(imagesHeading + "\n\n")
	for i, u := range urls {
		fmt.Fprintf(&gallery, "![Destination image %d](%s)\n\n", i+1, u)
	}

	if idx := strings.Index(itinerary, practicalTipsAnchor); idx >= 0 {
		return itinerary[:idx] + gallery.String() + itinerary[idx:]
	}
	return itinerary + "\n\n" + gallery.String()
}

func extractImageURLs(text string) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, m := range imageLine.FindAllStringSubmatch(text, -1) {
		u := m[1]
		if !validImageURL(u) || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
		if len(urls) == maxEmbedImages {
			break
		}
	}
	return urls
}

func validImageURL(u string) bool {
	if !strings.HasPrefix(u, "http") {
		return false
	}
	if len(u) <= 10 || len(u) > maxImageURLLen {
		return false
	}
	return !containsBrokenFragment(u)
}

func containsBrokenFragment(s string) bool {
	for _, frag := range brokenURLFragments {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}
