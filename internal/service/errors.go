package service

// AuthError is a rejected login/signup or a request made with a missing or
// invalid credential. Message is the gateway's response body verbatim.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NotFoundError is a request that referenced an entity the gateway no
// longer has, typically a stale ID after an external deletion.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NetworkError is a transport failure with no gateway response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }
