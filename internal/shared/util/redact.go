package util

import (
	"net/url"
	"regexp"
)

const redacted = "****"

// RedactPassword masks password where it appears as a credential in s: the
// userinfo of a connection URL (":pw@") or a key/value "password=pw" pair.
// Other occurrences are left alone, so a password equal to the user name
// does not hide the user name.
func RedactPassword(s, password string) string {
	if password == "" {
		return s
	}
	forms := []string{password}
	if esc := url.UserPassword("", password).String()[1:]; esc != password {
		forms = append(forms, esc)
	}
	for _, pw := range forms {
		q := regexp.QuoteMeta(pw)
		userinfo := regexp.MustCompile(`(:)` + q + `(@)`)
		s = userinfo.ReplaceAllString(s, "${1}"+redacted+"${2}")
		keyValue := regexp.MustCompile(`(password=)('?)` + q + `('?)(\s|&|$)`)
		s = keyValue.ReplaceAllString(s, "${1}${2}"+redacted+"${3}${4}")
	}
	return s
}
