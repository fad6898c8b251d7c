package http_test

import (
	"encoding/json"
	"net/http"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pathParamRe = regexp.MustCompile(`:([A-Za-z_]+)`)

// El documento OpenAPI se mantiene a mano: este test evita que el router y
// docs/swagger.json se desincronicen al agregar rutas.
func TestSwaggerDoc_CubreTodasLasRutasDeLaAPI(t *testing.T) {
	raw, err := os.ReadFile("../../../docs/swagger.json")
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	app := buildAPI(defaultGateway())
	for _, route := range app.GetRoutes(true) {
		if !strings.HasPrefix(route.Path, "/api/") || route.Method == http.MethodHead {
			continue
		}
		docPath := pathParamRe.ReplaceAllString(route.Path, "{$1}")
		ops, ok := doc.Paths[docPath]
		require.True(t, ok, "ruta %s %s sin documentar en docs/swagger.json", route.Method, route.Path)

		_, ok = ops[strings.ToLower(route.Method)]
		assert.True(t, ok, "método %s sin documentar para %s", route.Method, docPath)
	}
}
