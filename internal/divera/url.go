package divera

import "net/url"

// redactURL strips the access key from a request URL so it can be logged
// or embedded in an error without leaking the credential.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		// Not parseable, refuse to surface it at all.
		return "<unparseable url>"
	}
	q := u.Query()
	if q.Has(paramAccessKey) {
		q.Del(paramAccessKey)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
