package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItineraryHTML(t *testing.T) {
	out := string(ItineraryHTML("Day 1: <script>alert(1)</script>Museum & cafe\r\nDay 2: <b>Beach</b>\n"))

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "Museum &amp; cafe<br>\nDay 2: Beach")
}
