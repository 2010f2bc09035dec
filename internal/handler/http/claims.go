package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

var errMissingClaims = errors.New("access token is missing required claims")

// requestClaims pulls the authenticated identity out of the verified
// token: who is acting, for which tenant, with which roles.
func requestClaims(r *http.Request) (tenantID, userID string, roles []string, err error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", nil, err
	}

	tenantID, _ = claims["tenant_id"].(string)
	userID, _ = claims["user_id"].(string)
	if tenantID == "" || userID == "" {
		return "", "", nil, errMissingClaims
	}

	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, v := range raw {
			if role, ok := v.(string); ok {
				roles = append(roles, role)
			}
		}
	}
	return tenantID, userID, roles, nil
}
