package constants

const (
	CookieKeySecretToken = "statdash_admin"

	CtxKeyRequestID = "request_id"
)
