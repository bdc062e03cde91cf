package authenticator

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type standardClaims struct {
	jwt.RegisteredClaims
	Object any `json:"obj,omitempty"`
}

type verifiedClaims struct {
	jwt.RegisteredClaims
	Object json.RawMessage `json:"obj,omitempty"`
}

type jwtTokenEngine struct {
	secret []byte
}

var ErrEmptySecret = errors.New("token secret is empty")

func NewTokenEngine(secret string) (*jwtTokenEngine, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &jwtTokenEngine{secret: []byte(secret)}, nil
}

func (e *jwtTokenEngine) Generate(expiration time.Duration, obj any) (string, error) {
	now := time.Now()
	claims := standardClaims{
		Object: obj,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.secret)
}

func (e *jwtTokenEngine) Verify(token string, obj any) error {
	var claims verifiedClaims
	_, err := jwt.ParseWithClaims(
		token, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return e.secret, nil
		},
	)
	if err != nil {
		return err
	}

	if len(claims.Object) == 0 {
		return nil
	}

	return json.Unmarshal(claims.Object, obj)
}
