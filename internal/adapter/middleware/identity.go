package middleware

import (
	"errors"
	"net/http"
	"strings"

	"mutualfund-backend/pkg/id"

	"github.com/labstack/echo/v4"
)

// HeaderMemberID carries the caller's member id, set by the gateway after authentication.
const HeaderMemberID = "Ax-Member-Id"

const memberKey = "member_id"

func memberFromHeader(req *http.Request) (string, error) {
	memberID := strings.TrimSpace(req.Header.Get(HeaderMemberID))
	if memberID == "" {
		return "", errors.New("missing " + HeaderMemberID)
	}
	if !id.Valid(memberID) {
		return "", errors.New("invalid " + HeaderMemberID)
	}
	return memberID, nil
}

// Identity rejects requests without a well-formed Ax-Member-Id and stores it on the context.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			memberID, err := memberFromHeader(c.Request())
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			c.Set(memberKey, memberID)
			return next(c)
		}
	}
}

// MemberID returns the id stored by Identity, or "" when the middleware did not run.
func MemberID(c echo.Context) string {
	s, _ := c.Get(memberKey).(string)
	return s
}
