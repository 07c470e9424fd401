package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"sorteios-backend/internal/features/sorteio/client"
	"sorteios-backend/internal/features/sorteio/models"
	"sorteios-backend/internal/features/sorteio/models/dto"
)

func TestListScopesRequest(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(dto.SorteiosResponse{Sorteios: []*models.Sorteio{
			{ID: "s1", Nome: "Primeiro"},
			{ID: "s2", Nome: "Segundo"},
		}})
	}))
	defer server.Close()

	c := client.New(server.URL, "bot-1", "guild-1")
	sorteios, err := c.List(context.Background())
	require.NoError(t, err)

	require.Equal(t, "/sorteios", gotPath)
	require.Equal(t, "bot_id=bot-1&guild_id=guild-1", gotQuery)
	require.Len(t, sorteios, 2)
	require.Equal(t, "Primeiro", sorteios[0].Nome)
}

func TestCreateSendsScopeInBody(t *testing.T) {
	var gotBody dto.SorteioCreateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		created := models.NewDraft(gotBody.BotID, gotBody.GuildID)
		created.ID = "assigned-1"
		created.Nome = gotBody.Nome
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dto.SorteioResponse{Sorteio: created})
	}))
	defer server.Close()

	c := client.New(server.URL, "bot-1", "guild-1")
	draft := models.NewDraft("bot-1", "guild-1")
	draft.Nome = "Sorteio Novo"

	created, err := c.Create(context.Background(), draft)
	require.NoError(t, err)

	require.Equal(t, "bot-1", gotBody.BotID)
	require.Equal(t, "guild-1", gotBody.GuildID)
	require.Equal(t, "Sorteio Novo", gotBody.Nome)
	require.Equal(t, "assigned-1", created.ID)
}

func TestPublicarPostsChannel(t *testing.T) {
	var gotPath string
	var gotBody dto.PostarRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		published := &models.Sorteio{ID: "s1", Status: models.StatusAtivo}
		published.SetMessage(gotBody.ChannelID, "msg-1")
		json.NewEncoder(w).Encode(dto.SorteioResponse{Sorteio: published})
	}))
	defer server.Close()

	c := client.New(server.URL, "bot-1", "guild-1")
	published, err := c.Publicar(context.Background(), "s1", "chan-9")
	require.NoError(t, err)

	require.Equal(t, "/sorteios/s1/postar", gotPath)
	require.Equal(t, "chan-9", gotBody.ChannelID)
	require.Equal(t, "bot-1", gotBody.BotID)
	require.True(t, published.HasMessage())
}

func TestDelete(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := client.New(server.URL, "bot-1", "guild-1")
	require.NoError(t, c.Delete(context.Background(), "s1"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/sorteios/s1", gotPath)
}

func TestDomainErrorPassedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "publish already in flight for sorteio s1"})
	}))
	defer server.Close()

	c := client.New(server.URL, "bot-1", "guild-1")
	_, err := c.Publicar(context.Background(), "s1", "chan-1")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "publish already in flight for sorteio s1", apiErr.Message)
	require.False(t, apiErr.Generic)
}

func TestNonJSONErrorIsGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>proxy error</html>"))
	}))
	defer server.Close()

	c := client.New(server.URL, "bot-1", "guild-1")
	_, err := c.Get(context.Background(), "s1")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.True(t, apiErr.Generic)
	require.NotContains(t, apiErr.Message, "proxy error")
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := client.New(server.URL, "bot-1", "guild-1")
	_, err := c.Get(context.Background(), "s1")
	require.Error(t, err)

	var apiErr *client.APIError
	require.False(t, errors.As(err, &apiErr))
}
