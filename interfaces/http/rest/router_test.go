package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"starwars/application/services"
	"starwars/infrastructure/persistence/abstractions"
	"starwars/infrastructure/persistence/memory"
	"starwars/pkg/observability"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewCollector("starwars_test")
	films := memory.NewStore(abstractions.FilmCollection(), logger)
	planets := memory.NewStore(abstractions.PlanetCollection(), logger)
	films.SetPeer(planets)
	planets.SetPeer(films)

	router := NewRouter(
		services.NewFilmService(films, nil, logger),
		services.NewPlanetService(planets, nil, logger),
		metrics,
		true,
		logger,
	)
	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, server *httptest.Server, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if resp.StatusCode != http.StatusNoContent && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp, decoded
}

func TestFilmLifecycle(t *testing.T) {
	server := newTestServer(t)

	resp, film := do(t, server, http.MethodPost, "/api/films", `{"title":"A New Hope","director":"George Lucas"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "A New Hope", film["title"])
	assert.Equal(t, "George Lucas", film["director"])
	assert.Equal(t, []interface{}{}, film["planets"])
	assert.Equal(t, film["created"], film["edited"])
	id := film["id"].(string)

	resp, got := do(t, server, http.MethodGet, "/api/films/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, film, got)

	resp, updated := do(t, server, http.MethodPut, "/api/films/"+id, `{"title":"Star Wars"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Star Wars", updated["title"])
	assert.Nil(t, updated["director"])

	resp, _ = do(t, server, http.MethodDelete, "/api/films/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, server, http.MethodDelete, "/api/films/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := do(t, server, http.MethodGet, "/api/films/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Film with id "+id+" was not found", body["message"])
}

func TestCreateFilm_DuplicateTitle(t *testing.T) {
	server := newTestServer(t)

	resp, _ := do(t, server, http.MethodPost, "/api/films", `{"title":"A New Hope"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, server, http.MethodPost, "/api/films", `{"title":"A New Hope"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Film with title A New Hope already exists", body["message"])
}

func TestCreateFilm_BadRequests(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "missing title", body: `{"director":"George Lucas"}`, message: "title is required"},
		{name: "malformed json", body: `{"title":`, message: "Invalid request body: unexpected EOF"},
		{name: "malformed planet id", body: `{"title":"A New Hope","planets":["tatooine"]}`, message: "tatooine is not a valid planet id."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, server, http.MethodPost, "/api/films", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestCreateFilm_UnknownPlanet(t *testing.T) {
	server := newTestServer(t)

	resp, body := do(t, server, http.MethodPost, "/api/films",
		`{"title":"A New Hope","planets":["0f8fad5b-d9cb-469f-a165-70867728950e"]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "planets")
}

func TestCrossReferences(t *testing.T) {
	server := newTestServer(t)

	resp, planet := do(t, server, http.MethodPost, "/api/planets", `{"name":"Tatooine","climate":"arid"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	planetID := planet["id"].(string)

	resp, film := do(t, server, http.MethodPost, "/api/films", `{"title":"A New Hope","planets":["`+planetID+`"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, []interface{}{planetID}, film["planets"])
	filmID := film["id"].(string)

	resp, planet = do(t, server, http.MethodPut, "/api/planets/"+planetID, `{"name":"Tatooine","films":["`+filmID+`"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []interface{}{filmID}, planet["films"])
}

func TestAlternateIDSpellings(t *testing.T) {
	server := newTestServer(t)

	resp, planet := do(t, server, http.MethodPost, "/api/planets", `{"name":"Hoth"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	planetID := planet["id"].(string)

	resp, film := do(t, server, http.MethodPost, "/api/films", `{"title":"Empire","planets":["urn:uuid:`+strings.ToUpper(planetID)+`"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, []interface{}{planetID}, film["planets"])
	filmID := film["id"].(string)

	resp, got := do(t, server, http.MethodGet, "/api/films/"+strings.ToUpper(filmID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, filmID, got["id"])

	resp, _ = do(t, server, http.MethodDelete, "/api/films/"+strings.ReplaceAll(filmID, "-", ""), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, server, http.MethodGet, "/api/films/"+filmID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetFilm_MalformedID(t *testing.T) {
	server := newTestServer(t)

	resp, body := do(t, server, http.MethodGet, "/api/films/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "not-an-id is not a valid film id.", body["message"])
}

func TestUpdatePlanet_Absent(t *testing.T) {
	server := newTestServer(t)
	id := "0f8fad5b-d9cb-469f-a165-70867728950e"

	resp, body := do(t, server, http.MethodPut, "/api/planets/"+id, `{"name":"Hoth"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Planet with id "+id+" was not found", body["message"])
}

func TestUpdatePlanet_TakenName(t *testing.T) {
	server := newTestServer(t)

	resp, _ := do(t, server, http.MethodPost, "/api/planets", `{"name":"Hoth"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, dagobah := do(t, server, http.MethodPost, "/api/planets", `{"name":"Dagobah"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, server, http.MethodPut, "/api/planets/"+dagobah["id"].(string), `{"name":"Hoth"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Planet with name Hoth already exists", body["message"])
}

func TestHealthStatus(t *testing.T) {
	server := newTestServer(t)

	resp, body := do(t, server, http.MethodGet, "/health-status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "API Star Wars HealthCheck", body["service"])
	assert.Equal(t, "1.0", body["version"])
}

func TestSwaggerDoc(t *testing.T) {
	server := newTestServer(t)

	resp, body := do(t, server, http.MethodGet, "/api/docs/swagger.json", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2.0", body["swagger"])
	assert.Contains(t, body["paths"], "/api/films/{id}")
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, _ := do(t, server, http.MethodGet, "/health-status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
