// Package signer implementa la firma OAuth 1.0 con HMAC-SHA256 para los
// requests salientes al RESTlet del ERP (token-based authentication).
//
// El componente es puro: no hace I/O ni guarda estado mutable. Nonce y
// timestamp entran como parámetros para que la firma sea verificable contra
// vectores fijos; el cliente HTTP es quien provee valores frescos por request.
package signer

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
)

const (
	// SignatureMethod método de firma anunciado en oauth_signature_method.
	SignatureMethod = "HMAC-SHA256"
	// Version valor fijo de oauth_version.
	Version = "1.0"

	nonceLength   = 11
	nonceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Credentials credenciales OAuth del integration record y del token.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	TokenID        string
	TokenSecret    string
	Realm          string // account id en mayúsculas; sandbox conserva el '_'
}

// Signer firma requests con un juego fijo de credenciales.
type Signer struct {
	creds Credentials
}

// New construye el firmador. Las credenciales se copian; no hay estado global.
func New(creds Credentials) *Signer {
	return &Signer{creds: creds}
}

// AuthorizationHeader construye el valor completo del header Authorization:
//
//	OAuth realm="ACCT", oauth_consumer_key="...", ..., oauth_signature="..."
//
// con los parámetros ordenados por clave y los valores percent-encoded.
// Un solo byte distinto en cualquier input produce una firma distinta; un
// encoding incorrecto hace que el ERP rechace la llamada con fallo de auth.
func (s *Signer) AuthorizationHeader(method, rawURL, nonce string, timestamp int64) string {
	params := s.oauthParams(nonce, timestamp)
	params["oauth_signature"] = s.Signature(method, rawURL, nonce, timestamp)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`OAuth realm="`)
	b.WriteString(s.creds.Realm)
	b.WriteString(`"`)
	for _, k := range keys {
		b.WriteString(", ")
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(PercentEncode(params[k]))
		b.WriteString(`"`)
	}
	return b.String()
}

// Signature calcula la firma base64 para método+URL+nonce+timestamp dados.
// Determinista: mismos inputs, misma firma.
func (s *Signer) Signature(method, rawURL, nonce string, timestamp int64) string {
	baseURL, queryParams := splitQuery(rawURL)

	params := s.oauthParams(nonce, timestamp)
	pairs := make([][2]string, 0, len(params)+len(queryParams))
	for k, v := range params {
		pairs = append(pairs, [2]string{PercentEncode(k), PercentEncode(v)})
	}
	for _, kv := range queryParams {
		pairs = append(pairs, [2]string{PercentEncode(kv[0]), PercentEncode(kv[1])})
	}

	// Orden lexicográfico por clave codificada y luego por valor codificado
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	encoded := make([]string, len(pairs))
	for i, p := range pairs {
		encoded[i] = p[0] + "=" + p[1]
	}
	paramString := strings.Join(encoded, "&")

	baseString := strings.ToUpper(method) + "&" +
		PercentEncode(baseURL) + "&" +
		PercentEncode(paramString)

	signingKey := PercentEncode(s.creds.ConsumerSecret) + "&" + PercentEncode(s.creds.TokenSecret)

	mac := hmac.New(sha256.New, []byte(signingKey))
	mac.Write([]byte(baseString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (s *Signer) oauthParams(nonce string, timestamp int64) map[string]string {
	return map[string]string{
		"oauth_consumer_key":     s.creds.ConsumerKey,
		"oauth_token":            s.creds.TokenID,
		"oauth_signature_method": SignatureMethod,
		"oauth_timestamp":        fmt.Sprintf("%d", timestamp),
		"oauth_nonce":            nonce,
		"oauth_version":          Version,
	}
}

// PercentEncode codifica según RFC 3986 estricto: hex en mayúsculas y
// conjunto unreserved = letras, dígitos y "-._~". Todo lo demás se escapa.
func PercentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			b.WriteString(fmt.Sprintf("%%%02X", c))
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// Nonce genera un nonce alfanumérico aleatorio de 11 caracteres con
// crypto/rand (probabilidad de colisión despreciable).
func Nonce() string {
	buf := make([]byte, nonceLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand no falla en plataformas soportadas; si llegara a
		// fallar preferimos un pánico temprano a firmar con nonce vacío.
		panic("signer: crypto/rand: " + err.Error())
	}
	out := make([]byte, nonceLength)
	for i, v := range buf {
		out[i] = nonceAlphabet[int(v)%len(nonceAlphabet)]
	}
	return string(out)
}

// splitQuery separa la URL base de sus query params (clave/valor en orden de
// aparición). Los query params participan del parameter string de la firma.
func splitQuery(rawURL string) (string, [][2]string) {
	idx := strings.IndexByte(rawURL, '?')
	if idx < 0 {
		return rawURL, nil
	}
	base := rawURL[:idx]
	var pairs [][2]string
	for _, kv := range strings.Split(rawURL[idx+1:], "&") {
		if kv == "" {
			continue
		}
		if eq := strings.IndexByte(kv, '='); eq >= 0 {
			pairs = append(pairs, [2]string{kv[:eq], kv[eq+1:]})
		} else {
			pairs = append(pairs, [2]string{kv, ""})
		}
	}
	return base, pairs
}
