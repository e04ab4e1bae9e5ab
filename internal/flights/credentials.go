package flights

import "strings"

// PlaceholderKey is the sample value shipped in example env files. It counts
// as "no credential".
const PlaceholderKey = "your_rapidapi_key_here"

// Credentials are the RapidAPI headers sent with every request.
type Credentials struct {
	Key  string
	Host string
}

// Configured reports whether a usable, non-placeholder key is present.
func (c Credentials) Configured() bool {
	key := strings.TrimSpace(c.Key)
	return key != "" && key != PlaceholderKey
}

// CredentialFunc supplies the current credentials. It is called on every
// request, so a credential added at runtime takes effect immediately.
type CredentialFunc func() Credentials

// StaticCredentials returns a CredentialFunc that always yields c.
func StaticCredentials(c Credentials) CredentialFunc {
	return func() Credentials { return c }
}
