package auth

import "errors"

var (
	NotAuthenticatedErr = errors.New("not authenticated")
	SessionExpiredErr   = errors.New("session expired")
)
