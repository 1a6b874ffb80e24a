package speech

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	pauses = []struct{ mark, tag string }{
		{". ", ". <break time='0.5s'/> "},
		{"? ", "? <break time='0.5s'/> "},
		{"! ", "! <break time='0.5s'/> "},
		{", ", ", <break time='0.2s'/> "},
	}

	emphasized = []string{"SNAP", "Medicaid", "Medicare", "Section 8", "housing", "benefits", "eligibility"}

	breakTag = regexp.MustCompile(`<break[^>]*/>`)
	anyTag   = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
)

// Markup wraps text in SSML: pauses after sentence and clause punctuation,
// emphasis on program names and a prosody rate when speed is not 1.0
func Markup(text string, speed float64) string {
	for _, p := range pauses {
		text = strings.ReplaceAll(text, p.mark, p.tag)
	}

	for _, word := range emphasized {
		text = strings.ReplaceAll(text, word, "<emphasis>"+word+"</emphasis>")
	}

	if speed != DefaultSpeed {
		text = fmt.Sprintf("<prosody rate='%s'>%s</prosody>", rateFor(speed), text)
	}

	return `<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="en-US">` + text + `</speak>`
}

// PlainText removes the markup again. Pauses become single spaces.
func PlainText(markup string) string {
	text := breakTag.ReplaceAllString(markup, " ")
	text = anyTag.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

func rateFor(speed float64) string {
	switch {
	case speed < 0.8:
		return "slow"
	case speed > 1.2:
		return "fast"
	default:
		return "medium"
	}
}
