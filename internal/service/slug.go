package service

import "strings"

// Slugify derives a URL slug from a title: lowercase, runs of characters
// outside [a-z0-9] collapse to a single hyphen, no leading or trailing
// hyphens. The same title always yields the same slug.
func Slugify(title string) string {
	title = strings.ToLower(title)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range title {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
