package ports

import "context"

// AuthService issues bearer tokens for machine clients of the tracking
// API using the client-credentials flow.
type AuthService interface {
	IssueToken(ctx context.Context, clientID, clientSecret string) (token string, expiresIn int64, err error)
}
