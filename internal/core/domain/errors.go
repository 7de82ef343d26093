package domain

import "errors"

var ErrUnknownCarrier = errors.New("unknown carrier")
var ErrFetchFailed = errors.New("upstream fetch failed")
var ErrBadPayload = errors.New("malformed source payload")
var ErrInvalidCredentials = errors.New("invalid credentials")
