package post

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainTextStripsHTML(t *testing.T) {
	got := PlainText("<p>Build <b>APIs</b> in Go.</p> <ul><li>5+ years</li></ul>")
	assert.Equal(t, "Build APIs in Go. 5+ years", got)
}

func TestPlainTextLeavesPlainInputAlone(t *testing.T) {
	assert.Equal(t, "Build APIs in Go.", PlainText("Build APIs in Go."))
}

func TestPlainTextCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", PlainText("  a\n\tb  c "))
}

func TestHashtag(t *testing.T) {
	assert.Equal(t, "SeniorGoEngineer", Hashtag("Senior Go Engineer"))
	assert.Equal(t, "DevOpsLead2", Hashtag("DevOps Lead (#2)"))
	assert.Equal(t, "", Hashtag("---"))
}

func TestCompose(t *testing.T) {
	got := Compose("Go Engineer", "<p>Ship services.</p>")

	assert.True(t, strings.HasPrefix(got, "🚀 We're hiring a Go Engineer!"))
	assert.Contains(t, got, "Ship services.")
	assert.NotContains(t, got, "<p>", "markup never leaks into the post")
	assert.Contains(t, got, "#Hiring #GoEngineer #TechJobs #CareerOpportunity")
}
