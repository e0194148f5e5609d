package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

func CreateJWTToken(userID int64, userName string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["name"] = userName
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// ExtractTokenUser pulls the authenticated user out of the context set by
// the JWT middleware. Returns zero values for an invalid token.
func ExtractTokenUser(c echo.Context) (uint64, string) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return 0, ""
	}

	claims := user.Claims.(jwt.MapClaims)
	userID, _ := claims["userID"].(float64)
	name, _ := claims["name"].(string)
	return uint64(userID), name
}
