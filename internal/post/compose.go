package post

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Compose builds the default social post for a job when AI generation is
// off and the user hasn't typed anything yet. Descriptions come back from
// the server as HTML, so they get flattened first.
func Compose(title, description string) string {
	return fmt.Sprintf(`🚀 We're hiring a %s!

Join our innovative team and help us build the future of technology. We're looking for a talented professional to:

• Work on cutting-edge projects
• Collaborate with a dynamic team
• Grow your career in a supportive environment

Requirements:
%s

Ready to take the next step in your career? Apply now!

#Hiring #%s #TechJobs #CareerOpportunity`,
		title, PlainText(description), Hashtag(title))
}

// PlainText strips markup and collapses whitespace. Input that isn't HTML
// comes back unchanged apart from whitespace cleanup.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return cleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanText(s)
	}
	return cleanText(doc.Text())
}

// Hashtag squeezes a job title into a tag: letters and digits only.
func Hashtag(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
