package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNotAllowed   = errors.New("entrance not allowed")
)

// Identity is what a validated access token says about its holder.
type Identity struct {
	ExtID  int
	Email  string
	Claims map[string]string
}

// Auth validates access tokens issued by the main server
type Auth struct {
	secret   []byte
	issuer   string
	audience string
}

func NewAuth(secret []byte, issuer, audience string) *Auth {
	return &Auth{secret: secret, issuer: issuer, audience: audience}
}

// loadOrCreateSecret loads the JWT secret from the database, or generates
// and persists a new one if none exists.
func loadOrCreateSecret(db *DB, log logrus.FieldLogger) ([]byte, error) {
	if db != nil {
		h, err := db.GetSetting(settingJWTSecret)
		if err != nil {
			return nil, err
		}
		if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
			return b, nil
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating jwt secret: %w", err)
	}
	if db != nil {
		if err := db.SetSetting(settingJWTSecret, hex.EncodeToString(secret)); err != nil {
			log.WithError(err).Warn("could not persist jwt secret")
		}
	}
	return secret, nil
}

// ValidateToken checks signature, issuer and audience, and resolves the
// external id from the sub claim.
func (a *Auth) ValidateToken(tokenStr string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.audience),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	ext, err := strconv.Atoi(sub)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: sub %q is not an id", ErrInvalidToken, sub)
	}
	email, ok := claims["email"].(string)
	if !ok {
		return Identity{}, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	id := Identity{ExtID: ext, Email: email, Claims: make(map[string]string, len(claims))}
	for k, v := range claims {
		if s, err := cast.ToStringE(v); err == nil {
			id.Claims[k] = s
		}
	}
	return id, nil
}

// tokenFromRequest reads the access token from the access_token query
// parameter, falling back to an Authorization: Bearer header.
func tokenFromRequest(r *http.Request) string {
	if t := r.URL.Query().Get("access_token"); t != "" {
		return t
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// EntrancePolicy lists claim patterns; a connection may enter ranked queues
// if all patterns of at least one rule match its claims. An empty policy
// lets everyone in.
type EntrancePolicy []map[string]*regexp.Regexp

// ParsePolicy builds a policy from a loosely typed list of claim->regex maps,
// as found in config files and the initialize response.
func ParsePolicy(raw any) (EntrancePolicy, error) {
	rules, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, err
	}
	policy := make(EntrancePolicy, 0, len(rules))
	for i, r := range rules {
		m, err := cast.ToStringMapStringE(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rule := make(map[string]*regexp.Regexp, len(m))
		for claim, pat := range m {
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("rule %d claim %s: %w", i, claim, err)
			}
			rule[claim] = re
		}
		policy = append(policy, rule)
	}
	return policy, nil
}

func (p EntrancePolicy) Allows(claims map[string]string) bool {
	if len(p) == 0 {
		return true
	}
	for _, rule := range p {
		if matchesRule(rule, claims) {
			return true
		}
	}
	return false
}

func matchesRule(rule map[string]*regexp.Regexp, claims map[string]string) bool {
	for claim, re := range rule {
		v, ok := claims[claim]
		if !ok || !re.MatchString(v) {
			return false
		}
	}
	return true
}
