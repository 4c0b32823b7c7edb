package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownBasics(t *testing.T) {
	html, err := RenderMarkdown("# Offer Details\n\nPrice band **41-43**.")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Offer Details</h1>")
	assert.Contains(t, html, "<strong>41-43</strong>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	html, err := RenderMarkdown("hello <script>alert(1)</script> world")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "alert(1)")
	assert.Contains(t, html, "hello")
}

func TestRenderMarkdownEmpty(t *testing.T) {
	html, err := RenderMarkdown("")
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestParseIPOTerms(t *testing.T) {
	band, size, err := ParseIPOTerms("42.50", "3000000")
	require.NoError(t, err)
	assert.Equal(t, "42.5", band)
	assert.Equal(t, "3000000", size)

	_, _, err = ParseIPOTerms("forty", "3000000")
	assert.Error(t, err)

	_, _, err = ParseIPOTerms("42", "big")
	assert.Error(t, err)
}
