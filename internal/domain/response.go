package domain

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Dashboard is the read model of one category page.
type Dashboard struct {
	Meta []*Indicator `json:"meta"`
	Data []*DataPoint `json:"data"`
}
