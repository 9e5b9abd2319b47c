package middleware

import (
	"net/http"
	"strings"

	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const requesterKey = "requester"

type Auth struct {
	secret []byte
	users  repository.UserRepository
}

func NewAuth(secret string, users repository.UserRepository) *Auth {
	return &Auth{secret: []byte(secret), users: users}
}

// Required rejects requests without a valid Bearer token. The requester's
// role is read from the store once per request, not trusted from the token.
func (a *Auth) Required(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := a.resolve(c)
		if err != nil {
			return err
		}
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		SetRequester(c, user)
		return next(c)
	}
}

// Optional resolves the requester when a token is present and proceeds
// anonymously otherwise.
func (a *Auth) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := a.resolve(c)
		if err != nil {
			return err
		}
		if user != nil {
			SetRequester(c, user)
		}
		return next(c)
	}
}

func (a *Auth) resolve(c echo.Context) (*models.User, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return nil, nil
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}

	user, err := a.users.FindByID(c.Request().Context(), uint(rawID))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return user, nil
}

// SetRequester stores the resolved user on the request context.
func SetRequester(c echo.Context, user *models.User) {
	c.Set(requesterKey, user)
}

// Requester returns the resolved user for the request, or nil when anonymous.
func Requester(c echo.Context) *models.User {
	user, _ := c.Get(requesterKey).(*models.User)
	return user
}
