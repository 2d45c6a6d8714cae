package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"pokedex-catalog/config"
	"pokedex-catalog/models"
	"pokedex-catalog/service"
	"pokedex-catalog/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testServer struct {
	fake    *testutil.FakePokeAPI
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	fake := testutil.NewFakePokeAPI(t)
	fake.AddIndex("bulbasaur", "ivysaur", "venusaur", "charmander")
	for i, name := range []string{"bulbasaur", "ivysaur", "venusaur"} {
		fake.AddPokemon(name, i+1, 100*(i+1), "grass", "poison")
		fake.AddSpecies(name, 1, 1)
	}
	fake.AddPokemon("charmander", 4, 85, "fire")
	fake.AddChain(1, testutil.Chain{Species: "bulbasaur", EvolvesTo: []testutil.Chain{
		{Species: "ivysaur", EvolvesTo: []testutil.Chain{{Species: "venusaur"}}},
	}})
	fake.AddType("grass", []string{"fire", "ice", "poison", "flying", "bug"}, "bulbasaur", "ivysaur", "venusaur")
	fake.AddType("poison", []string{"ground", "psychic"}, "bulbasaur", "ivysaur", "venusaur")
	fake.AddType("fire", []string{"ground", "rock", "water"}, "charmander")
	fake.AddType("flying", []string{"rock", "electric", "ice"})

	cfg := config.Default()
	cfg.PokeAPI.BaseURL = fake.BaseURL()
	cfg.PokeAPI.Timeout = 5 * time.Second

	svc, err := NewServices(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.API.Close)

	return &testServer{fake: fake, handler: NewHandler(svc, zap.NewNop())}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListPokemon(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/pokemon?sort=za&search=SAUR", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	page := decode[models.Page](t, rec)
	require.Len(t, page.Records, 3)
	assert.Equal(t, "venusaur", page.Records[0].Name)
	assert.Equal(t, 3, page.Records[0].SequenceIndex)
	assert.Equal(t, 1, page.TotalPages)

	// The catalog index is fetched once per session
	s.do(t, http.MethodGet, "/pokemon", "")
	assert.Equal(t, 1, s.fake.Hits("pokemon"))
}

func TestListPokemon_TypeFilter(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/pokemon?type=fire", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[models.Page](t, rec)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "charmander", page.Records[0].Name)
}

func TestListPokemon_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "bad page", target: "/pokemon?page=abc", want: http.StatusBadRequest},
		{name: "negative page", target: "/pokemon?page=-1", want: http.StatusBadRequest},
		{name: "bad sort", target: "/pokemon?sort=weight", want: http.StatusBadRequest},
		{name: "unknown type", target: "/pokemon?type=shadow", want: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.do(t, http.MethodGet, tc.target, "").Code)
		})
	}

	assert.Equal(t, http.StatusMethodNotAllowed, s.do(t, http.MethodPost, "/pokemon", "").Code)
}

func TestListPokemon_UpstreamFailure(t *testing.T) {
	s := newTestServer(t)
	s.fake.HandleStatus("pokemon/ivysaur", http.StatusInternalServerError)

	rec := s.do(t, http.MethodGet, "/pokemon", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetPokemon(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/pokemon/bulbasaur?lang=en", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	d := decode[models.PokemonDetail](t, rec)
	assert.Equal(t, "Seed Pokémon", d.Species.Genus)
	assert.Len(t, d.Evolutions, 3)
	assert.Contains(t, d.Weaknesses, "psychic")

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/pokemon/agumon", "").Code)
}

func TestGetEvolutions(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/pokemon/venusaur/evolutions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	line := decode[[]models.EvolutionStub](t, rec)
	require.Len(t, line, 3)
	assert.Equal(t, "bulbasaur", line[0].Name)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/pokemon/venusaur/moves", "").Code)
}

func TestWeaknessesAndTypes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/weaknesses?types=fire,flying", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"electric", "ground", "ice", "rock", "water"}, decode[[]string](t, rec))

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/weaknesses", "").Code)

	rec = s.do(t, http.MethodGet, "/types/grass", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur"}, decode[[]string](t, rec))
}

func TestSessions(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	snap := decode[service.SessionSnapshot](t, rec)
	require.NotEmpty(t, snap.ID)
	require.NotNil(t, snap.Page)
	assert.Len(t, snap.Page.Records, 4)

	rec = s.do(t, http.MethodPut, "/sessions/"+snap.ID+"/view", `{"search":"char","sort":"alpha-asc"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[models.Page](t, rec)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "charmander", page.Records[0].Name)

	rec = s.do(t, http.MethodGet, "/sessions/"+snap.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[service.SessionSnapshot](t, rec)
	assert.Equal(t, "char", got.State.SearchText)
	assert.Equal(t, 1, got.State.PageNumber, "omitted page keeps its default")

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/sessions/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/sessions/nope/view", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/sessions/"+snap.ID+"/view", `{`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, s.do(t, http.MethodGet, "/sessions/"+snap.ID+"/view", "").Code)
}
