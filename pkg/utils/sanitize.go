package utils

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	itineraryPolicyOnce sync.Once
	itineraryPolicy     *bluemonday.Policy
)

// ItineraryHTML renders model output for an HTML page. Any markup the model
// produced is stripped; line breaks are kept.
func ItineraryHTML(text string) template.HTML {
	itineraryPolicyOnce.Do(func() {
		itineraryPolicy = bluemonday.StrictPolicy()
	})

	cleaned := itineraryPolicy.Sanitize(strings.ReplaceAll(text, "\r\n", "\n"))
	lines := strings.Split(strings.TrimSpace(cleaned), "\n")
	return template.HTML(strings.Join(lines, "<br>\n"))
}
