package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordbook/wordbook/internal/word"
	"github.com/wordbook/wordbook/internal/word/service"
)

type brokenService struct {
	service.Service
	calls int
}

func (b *brokenService) Create(ctx context.Context, in word.Input) (*word.Word, error) {
	b.calls++
	return nil, errors.Join(word.ErrStoreWrite, errors.New("server selection timeout"))
}

func postWord(g *gin.Engine, body string) (*httptest.ResponseRecorder, Envelope) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/word", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	var env Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func setup() (*gin.Engine, service.Service) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	svc := service.NewMemoryService()
	RegisterWordRoutes(g, svc)
	return g, svc
}

func TestCreateWord_Success(t *testing.T) {
	g, svc := setup()

	w, env := postWord(g, `{"origin":"casa","translation":"house"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Word added successfully", env.Message)
	require.NotNil(t, env.Word)
	assert.Equal(t, "casa", env.Word.Origin)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "casa", list[0].Origin)
	assert.Equal(t, "house", list[0].Translation)
}

func TestCreateWord_MalformedBody(t *testing.T) {
	g, svc := setup()

	w, env := postWord(g, `not-json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "malformed request body")
	assert.Nil(t, env.Word)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "no document should be written")
}

func TestCreateWord_MissingFields(t *testing.T) {
	g, svc := setup()

	w, env := postWord(g, `{"origin":"casa"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateWord_IgnoresUnknownFields(t *testing.T) {
	g, svc := setup()

	w, env := postWord(g, `{"origin":"casa","translation":"house","imgUrl":"http://evil","$where":"1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	got, err := svc.FindByOrigin(context.Background(), "casa")
	require.NoError(t, err)
	assert.Empty(t, got.ImgURL)
}

func TestCreateWord_DuplicateOrigin(t *testing.T) {
	g, svc := setup()

	_, env1 := postWord(g, `{"origin":"gato","translation":"cat"}`)
	_, env2 := postWord(g, `{"origin":"gato","translation":"cat"}`)
	require.True(t, env1.Success)
	require.True(t, env2.Success)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestCreateWord_StoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	svc := &brokenService{}
	RegisterWordRoutes(g, svc)

	w, env := postWord(g, `{"origin":"casa","translation":"house"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "server selection timeout")
	assert.Equal(t, 1, svc.calls, "exactly one write attempt")
}

func TestCreateWord_MethodNotAllowed(t *testing.T) {
	g, _ := setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/word", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
}

func TestNoMethod_PagePathsGetPlainResponse(t *testing.T) {
	g, _ := setup()
	g.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "list") })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.NotContains(t, w.Header().Get("Content-Type"), "application/json")
	assert.NotContains(t, w.Body.String(), `"success"`)
}
