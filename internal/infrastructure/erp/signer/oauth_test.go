package signer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewshoe/top40-api/internal/infrastructure/erp/signer"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de referencia de la firma OAuth 1.0 HMAC-SHA256.
//
// Estos tests son el "canario en la mina" de la integración con el ERP: un
// solo byte mal codificado en el parameter string, el base string o la signing
// key invalida la firma y el ERP rechaza todas las llamadas con fallo de auth.
// Los vectores se calcularon por fuera replicando el algoritmo paso a paso
// (percent-encoding RFC 3986, orden lexicográfico, HMAC-SHA256, base64).
// ──────────────────────────────────────────────────────────────────────────────

const (
	testURL = "https://123456.restlets.api.netsuite.com/app/site/hosting/restlet.nl"

	// Vector 1: credenciales con caracteres que requieren escape (+, /, =, &)
	v1Sig = "OXy75YQ4MJhPsE8EAbWLzo8u3f2cHflXMvtMOXoAUo4="
	// Vector 2: igual al 1 pero con el último byte del consumer key cambiado
	v2Sig = "NnFYlnzAYVbbZMbP05nf5OAlkU0IOOjhHuriwmtljwA="
	// Vector 3: credenciales ASCII simples
	v3Sig = "7mmQv+yy6LmgM2AdWYj+hV2cJXKY588M5Eg5Egi/DpA="
	// Vector 4: GET con query params (script/deploy) incluidos en el parameter string
	v4Sig = "jnAHFlf7zyNPeZFZtXMCiarROCpJMDGKRo7MlbxGsE8="
)

func v1Signer() *signer.Signer {
	return signer.New(signer.Credentials{
		ConsumerKey:    "ck-0123456789abcdef",
		ConsumerSecret: "cs-secreto+especial/=",
		TokenID:        "tk-fedcba9876543210",
		TokenSecret:    "ts-otro&secreto",
		Realm:          "123456",
	})
}

func v3Signer() *signer.Signer {
	return signer.New(signer.Credentials{
		ConsumerKey:    "consumer123",
		ConsumerSecret: "secret123",
		TokenID:        "token123",
		TokenSecret:    "tokensecret123",
		Realm:          "123456",
	})
}

func TestSignature_VectorConCaracteresEspeciales(t *testing.T) {
	got := v1Signer().Signature("POST", testURL, "KmXb29aT4Qz", 1766000000)
	assert.Equal(t, v1Sig, got, "la firma debe coincidir con el vector de referencia")
}

func TestSignature_SensibilidadUnByte(t *testing.T) {
	s := signer.New(signer.Credentials{
		ConsumerKey:    "ck-0123456789abcdeg", // solo cambia el último byte
		ConsumerSecret: "cs-secreto+especial/=",
		TokenID:        "tk-fedcba9876543210",
		TokenSecret:    "ts-otro&secreto",
		Realm:          "123456",
	})
	got := s.Signature("POST", testURL, "KmXb29aT4Qz", 1766000000)
	assert.Equal(t, v2Sig, got)
	assert.NotEqual(t, v1Sig, got, "un byte distinto en cualquier input cambia la firma")
}

func TestSignature_Determinista(t *testing.T) {
	s := v1Signer()
	sig1 := s.Signature("POST", testURL, "KmXb29aT4Qz", 1766000000)
	sig2 := s.Signature("POST", testURL, "KmXb29aT4Qz", 1766000000)
	assert.Equal(t, sig1, sig2, "mismo nonce y timestamp producen firma idéntica")
}

func TestSignature_VectorSimple(t *testing.T) {
	got := v3Signer().Signature("POST", testURL, "AAAAAAAAAAA", 1700000000)
	assert.Equal(t, v3Sig, got)
}

func TestSignature_QueryParamsEntranAlParameterString(t *testing.T) {
	got := v3Signer().Signature("GET", testURL+"?script=512&deploy=1", "AAAAAAAAAAA", 1700000000)
	assert.Equal(t, v4Sig, got)
	assert.NotEqual(t, v3Sig, got, "los query params participan de la firma")
}

func TestAuthorizationHeader_FormatoCompleto(t *testing.T) {
	header := v3Signer().AuthorizationHeader("POST", testURL, "AAAAAAAAAAA", 1700000000)

	want := `OAuth realm="123456", ` +
		`oauth_consumer_key="consumer123", ` +
		`oauth_nonce="AAAAAAAAAAA", ` +
		`oauth_signature="7mmQv%2Byy6LmgM2AdWYj%2BhV2cJXKY588M5Eg5Egi%2FDpA%3D", ` +
		`oauth_signature_method="HMAC-SHA256", ` +
		`oauth_timestamp="1700000000", ` +
		`oauth_token="token123", ` +
		`oauth_version="1.0"`
	assert.Equal(t, want, header,
		"header con realm primero y parámetros ordenados por clave, valores percent-encoded")
}

// ── percent-encoding RFC 3986 ─────────────────────────────────────────────────

func TestPercentEncode_ConjuntoUnreserved(t *testing.T) {
	// letras, dígitos y -._~ pasan intactos; el resto se escapa con hex mayúsculas
	assert.Equal(t, "Ab3-._~%20%2F%2B%3D%25", signer.PercentEncode("Ab3-._~ /+=%"))
	assert.Equal(t, "", signer.PercentEncode(""))
}

func TestPercentEncode_UTF8PorBytes(t *testing.T) {
	assert.Equal(t, "%C3%B1", signer.PercentEncode("ñ"), "multibyte se escapa byte a byte")
}

func TestPercentEncode_HexEnMayusculas(t *testing.T) {
	assert.Equal(t, "%2F", signer.PercentEncode("/"))
	assert.NotEqual(t, "%2f", signer.PercentEncode("/"),
		"hex en minúsculas invalidaría la firma del lado del ERP")
}

// ── nonce ─────────────────────────────────────────────────────────────────────

func TestNonce_LongitudYAlfabeto(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := signer.Nonce()
		require.Len(t, n, 11)
		for _, r := range n {
			ok := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			require.True(t, ok, "nonce solo alfanumérico, obtuvo %q", n)
		}
		seen[n] = true
	}
	assert.Greater(t, len(seen), 45, "los nonces deben ser efectivamente aleatorios")
}
