package x

import (
	"fmt"
	"strings"
	"time"
)

// GeneratePost assembles local post text from a topic, tone and length. No
// network involved; purely a convenience for drafting.
func GeneratePost(topic, tone, length string) string {
	if tone == "" {
		tone = "professional"
	}
	if length == "" {
		length = "short"
	}

	base := ""
	if topic != "" {
		base = fmt.Sprintf("About %s: ", topic)
	}

	var body string
	switch length {
	case "short":
		body = fmt.Sprintf("%sQuick thoughts on %s.", base, topic)
	case "long":
		body = fmt.Sprintf("%sA deeper look at %s with insights, takeaways, and next steps.", base, topic)
	default:
		body = fmt.Sprintf("%sSharing an update on %s.", base, topic)
	}

	cta := "Comments welcome."
	if tone == "casual" {
		cta = "What do you think?"
	}

	hashtags := ""
	if topic != "" {
		hashtags = " #" + strings.ReplaceAll(topic, " ", "")
	}

	now := time.Now().Format("1/2/2006")
	return fmt.Sprintf("%s (%s) %s%s", body, now, cta, hashtags)
}
