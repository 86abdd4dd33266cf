package chromecookie

import "strings"

// BuildCookieHeader builds an HTTP Cookie header value from records.
// Format: "name1=val1; name2=val2"
func BuildCookieHeader(records []CookieRecord) string {
	if len(records) == 0 {
		return ""
	}

	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = r.Name + "=" + r.Value
	}
	return strings.Join(parts, "; ")
}
