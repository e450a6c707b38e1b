package badukdto

// DomainError is the client-facing shape of a roster rule violation.
type DomainError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func (e *DomainError) Error() string {
	return e.Message
}
