package intake

import (
	"regexp"
	"strings"
	"unicode"
)

// Best-effort contact extraction for the contact-info stage. These are
// heuristics, not a parser: a miss leaves the field empty and the sales
// team works from the transcript instead.

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().\-]{5,}\d`)
)

// ExtractContact pulls name, email and phone out of one free-text message.
// The email is matched first and removed so its digits and dots cannot
// bleed into the phone or name heuristics.
func ExtractContact(text string) ClientInfo {
	var info ClientInfo

	if email := emailPattern.FindString(text); email != "" {
		info.Email = email
		text = strings.Replace(text, email, " ", 1)
	}

	if phone := phonePattern.FindString(text); phone != "" {
		info.Phone = strings.TrimSpace(phone)
		text = strings.Replace(text, phone, " ", 1)
	}

	info.Name = firstCapitalizedWord(text)
	return info
}

// firstCapitalizedWord returns the first token that starts with an
// uppercase letter and contains only letters.
func firstCapitalizedWord(text string) string {
	for _, tok := range strings.Fields(text) {
		tok = strings.Trim(tok, ",.;:!?")
		if tok == "" {
			continue
		}
		runes := []rune(tok)
		if !unicode.IsUpper(runes[0]) {
			continue
		}
		alpha := true
		for _, r := range runes {
			if !unicode.IsLetter(r) {
				alpha = false
				break
			}
		}
		if alpha {
			return tok
		}
	}
	return ""
}
