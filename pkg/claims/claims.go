// Package claims extracts an authenticated principal's identity and role
// set from a request's authorization context.
//
// Claims arrive in one of two ways: a structured authorizer document
// attached by an upstream gateway (the X-Authorizer-Context header), or a
// bearer token whose payload is decoded without signature verification as
// a demo-friendly fallback. The fallback is insecure by design and only
// consulted when the structured document carries no value for a claim.
package claims

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthorizerHeader carries the upstream authorizer document as JSON.
const AuthorizerHeader = "X-Authorizer-Context"

var groupClaimKeys = []string{"cognito:groups", "groups"}

// Claims holds the merged structured claims plus the decoded bearer
// payload used as a fallback. Lookups never fail; absent claims resolve
// to the empty string.
type Claims struct {
	attached map[string]interface{}
	token    map[string]interface{}
}

// Resolve builds the claim set for a request. It never returns an error;
// malformed documents or tokens simply yield empty claims.
func Resolve(r *http.Request) Claims {
	c := Claims{attached: map[string]interface{}{}}

	if doc := r.Header.Get(AuthorizerHeader); doc != "" {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(doc), &parsed); err == nil {
			mergeAuthorizerDoc(c.attached, parsed)
		}
	}

	if token := bearerToken(r); token != "" {
		c.token = decodeUnverified(token)
	}

	return c
}

// mergeAuthorizerDoc flattens the known claim locations in merge order:
// jwt.claims, then claims, then document-root keys. Later sources
// override earlier ones on key collision.
func mergeAuthorizerDoc(dst map[string]interface{}, doc map[string]interface{}) {
	if jwtSection, ok := doc["jwt"].(map[string]interface{}); ok {
		if nested, ok := jwtSection["claims"].(map[string]interface{}); ok {
			for k, v := range nested {
				dst[k] = v
			}
		}
	}
	if nested, ok := doc["claims"].(map[string]interface{}); ok {
		for k, v := range nested {
			dst[k] = v
		}
	}
	for k, v := range doc {
		if k == "jwt" || k == "claims" {
			continue
		}
		if _, isObject := v.(map[string]interface{}); isObject {
			continue
		}
		dst[k] = v
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[len("bearer "):])
}

// decodeUnverified reads a JWT payload without checking the signature.
func decodeUnverified(token string) map[string]interface{} {
	mapClaims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, mapClaims); err != nil {
		return nil
	}
	return map[string]interface{}(mapClaims)
}

// Get returns the named claim, preferring structured claims over the
// decoded token payload. Missing claims return "".
func (c Claims) Get(key string) string {
	if value, ok := c.attached[key]; ok {
		return stringify(value)
	}
	if value, ok := c.token[key]; ok {
		return stringify(value)
	}
	return ""
}

// Groups derives the role set from a groups-like claim, which may be a
// comma-separated string or a sequence. Values are trimmed; empties are
// dropped. An empty set means the request carries no usable claims.
func (c Claims) Groups() map[string]struct{} {
	groups := map[string]struct{}{}
	for _, key := range groupClaimKeys {
		raw, ok := c.attached[key]
		if !ok {
			raw, ok = c.token[key]
		}
		if !ok || raw == nil {
			continue
		}
		collectGroups(groups, raw)
		if len(groups) > 0 {
			return groups
		}
	}
	return groups
}

func collectGroups(dst map[string]struct{}, raw interface{}) {
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				dst[trimmed] = struct{}{}
			}
		}
	case []interface{}:
		for _, item := range v {
			if trimmed := strings.TrimSpace(stringify(item)); trimmed != "" {
				dst[trimmed] = struct{}{}
			}
		}
	case []string:
		for _, item := range v {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				dst[trimmed] = struct{}{}
			}
		}
	}
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.Trim(string(encoded), `"`)
	}
}
