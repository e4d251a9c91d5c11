package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/opsdesk/agentdesk/internal/client"
	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/handler/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*client.Client, *client.Session, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	session, err := client.LoadSession(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)

	return client.New(server.URL, session), session, server
}

func TestUpload_BadExtensionRejectedLocally(t *testing.T) {
	var hits atomic.Int64
	api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	path := filepath.Join(t.TempDir(), "contacts.txt")
	require.NoError(t, os.WriteFile(path, []byte("FirstName,Phone\nJohn,+14155550101\n"), 0o600))

	_, err := api.Upload(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedExt)
	assert.Equal(t, int64(0), hits.Load(), "validation error must not reach the network")
}

func TestUpload_NoFileSelected(t *testing.T) {
	var hits atomic.Int64
	api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	_, err := api.Upload(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoFile)
	assert.Equal(t, int64(0), hits.Load())
}

func TestUpload_SendsMultipartFile(t *testing.T) {
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/api/lists/upload", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "contacts.csv", header.Filename)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": dto.UploadResponse{
				ListID:     "list-1",
				FileName:   "contacts.csv",
				TotalItems: 1,
			},
		})
	}))
	require.NoError(t, session.SetToken("tok-1"))

	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte("FirstName,Phone\nJohn,+14155550101\n"), 0o600))

	result, err := api.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalItems)
	assert.Equal(t, "list-1", result.ListID)
}

func TestUpload_BackendMessageSurfaced(t *testing.T) {
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(dto.NewErrorResponse("no agents available for distribution"))
	}))
	require.NoError(t, session.SetToken("tok-1"))

	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte("FirstName,Phone\nJohn,+14155550101\n"), 0o600))

	_, err := api.Upload(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, "no agents available for distribution", err.Error())
}

func TestUpload_GenericFallbackWithoutMessage(t *testing.T) {
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	require.NoError(t, session.SetToken("tok-1"))

	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte("FirstName,Phone\nJohn,+14155550101\n"), 0o600))

	_, err := api.Upload(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, "Error uploading file", err.Error())
}

func TestLogin_PersistsToken(t *testing.T) {
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(dto.AuthResponse{
			Token: "tok-fresh",
			User:  dto.UserResponse{ID: "u1", Email: "admin@example.com"},
		})
	}))

	user, err := api.Login(context.Background(), "admin@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, "tok-fresh", session.Token())
}

func TestLogin_FailureLeavesNoToken(t *testing.T) {
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(dto.NewErrorResponse("invalid email or password"))
	}))

	_, err := api.Login(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
	assert.False(t, session.Authenticated())
}

func TestVerifyStoredToken_RejectedTokenClearedSilently(t *testing.T) {
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(dto.NewErrorResponse("invalid or expired token"))
	}))
	require.NoError(t, session.SetToken("expired"))

	ok, err := api.VerifyStoredToken(context.Background())
	require.NoError(t, err, "a rejected stored token is not an error")
	assert.False(t, ok)
	assert.False(t, session.Authenticated(), "expired token must be discarded")
}

func TestVerifyStoredToken_ValidToken(t *testing.T) {
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/agents", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(dto.NewDataResponse([]dto.AgentResponse{}))
	}))
	require.NoError(t, session.SetToken("tok-1"))

	ok, err := api.VerifyStoredToken(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, session.Authenticated())
}

func TestVerifyStoredToken_NoToken(t *testing.T) {
	var hits atomic.Int64
	api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	ok, err := api.VerifyStoredToken(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), hits.Load())
}

func TestCreateAgent_ValidationBlocksNetwork(t *testing.T) {
	var hits atomic.Int64
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	require.NoError(t, session.SetToken("tok-1"))

	_, err := api.CreateAgent(context.Background(), "Alice", "alice@example.com", "not-a-phone", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidMobile)
	assert.Equal(t, int64(0), hits.Load())
}

func TestList_FetchesSingleList(t *testing.T) {
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/lists/list-1", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(dto.NewDataResponse(dto.ListResponse{
			ID: "list-1", FileName: "a.csv", TotalItems: 5,
		}))
	}))
	require.NoError(t, session.SetToken("tok-1"))

	list, err := api.List(context.Background(), "list-1")
	require.NoError(t, err)
	assert.Equal(t, "a.csv", list.FileName)
	assert.Equal(t, 5, list.TotalItems)
}

func TestLists_DecodesEnvelope(t *testing.T) {
	api, session, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.NewDataResponse([]dto.ListResponse{
			{ID: "list-2", FileName: "b.csv", TotalItems: 3},
			{ID: "list-1", FileName: "a.csv", TotalItems: 5},
		}))
	}))
	require.NoError(t, session.SetToken("tok-1"))

	lists, err := api.Lists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "list-2", lists[0].ID)
}
