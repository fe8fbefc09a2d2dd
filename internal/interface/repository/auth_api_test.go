package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/pkg/apierr"
)

func TestLoginPostsCredentials(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/api/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "E001", body["employeeID"])
		assert.Equal(t, "secret", body["password"])
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	repo := NewAuthAPIRepository(upstream.URL, 5*time.Second, testLogger())
	require.NoError(t, repo.Login(context.Background(), "E001", "secret"))
}

func TestLoginRejectionCarriesBackendBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "Invalid employee ID or password")
	}))
	defer upstream.Close()

	repo := NewAuthAPIRepository(upstream.URL, 5*time.Second, testLogger())
	err := repo.Login(context.Background(), "E001", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid employee ID or password", err.Error())
	assert.Equal(t, http.StatusUnauthorized, apierr.StatusCode(err))
}

func TestLoginTransportError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	upstream.Close()

	repo := NewAuthAPIRepository(upstream.URL, time.Second, testLogger())
	err := repo.Login(context.Background(), "E001", "secret")
	require.Error(t, err)
	assert.True(t, apierr.IsTransport(err))
}

func TestPermissionLookup(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/permission", r.URL.Path)
		require.Equal(t, "E001", r.URL.Query().Get("employeeID"))
		json.NewEncoder(w).Encode(map[string]string{"permission": "Admin"})
	}))
	defer upstream.Close()

	repo := NewAuthAPIRepository(upstream.URL, 5*time.Second, testLogger())
	perm, err := repo.Permission(context.Background(), "E001")
	require.NoError(t, err)
	assert.Equal(t, entity.PermissionAdmin, perm)
}

func TestPermissionLookupFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	repo := NewAuthAPIRepository(upstream.URL, 5*time.Second, testLogger())
	_, err := repo.Permission(context.Background(), "E001")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apierr.StatusCode(err))
}
