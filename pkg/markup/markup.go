package markup

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Colored wraps s in a color tag
func Colored(s string, c Color) string {
	return "<color=" + Name(c) + "> " + s + " </color>"
}

// Bold wraps s in a bold tag
func Bold(s string) string {
	return "<b> " + s + " </b>"
}

var (
	boldTag  = regexp.MustCompile(`(?s)<b>(.*?)</b>`)
	colorTag = regexp.MustCompile(`(?s)<color=([^>]+)>(.*?)</color>`)
)

// Strip removes color and bold tags, keeping the enclosed text
func Strip(s string) string {
	s = boldTag.ReplaceAllString(s, "$1")
	return colorTag.ReplaceAllString(s, "$2")
}

// ToANSI renders color and bold tags as terminal styles. Tags with a color
// that cannot be parsed are removed.
func ToANSI(s string) string {
	s = boldTag.ReplaceAllStringFunc(s, func(m string) string {
		inner := boldTag.FindStringSubmatch(m)[1]
		return lipgloss.NewStyle().Bold(true).Render(inner)
	})

	return colorTag.ReplaceAllStringFunc(s, func(m string) string {
		groups := colorTag.FindStringSubmatch(m)
		c, err := ParseColor(groups[1])
		if err != nil {
			return groups[2]
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.rgbHex())).Render(groups[2])
	})
}
