package qualify

// EmailInput is the qualification request body. Field names match the
// public API contract.
type EmailInput struct {
	Subject   string `json:"subject"`
	EmailBody string `json:"email_body"`
}

// RequestMeta carries the request attributes worth logging. The email text
// itself is never persisted.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

const (
	maxSubjectLen = 1_000
	maxBodyLen    = 50_000
)

// tooLarge reports whether the input exceeds the accepted size bounds.
func (in EmailInput) tooLarge() bool {
	return len(in.Subject) > maxSubjectLen || len(in.EmailBody) > maxBodyLen
}
