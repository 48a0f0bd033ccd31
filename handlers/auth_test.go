package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adiletkanalbekov5-byte/techschool/database"
	"github.com/adiletkanalbekov5-byte/techschool/models"
)

func TestTokenObtainAndRefresh(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "somchai", false)

	rec := doReq(t, e, http.MethodPost, "/api/token", map[string]string{
		"username": "somchai", "password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var pair map[string]string
	decodeBody(t, rec, &pair)
	require.NotEmpty(t, pair["access"])
	require.NotEmpty(t, pair["refresh"])

	// refresh -> access ใหม่
	rec = doReq(t, e, http.MethodPost, "/api/token/refresh", map[string]string{"refresh": pair["refresh"]}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out map[string]string
	decodeBody(t, rec, &out)
	assert.NotEmpty(t, out["access"])

	// เอา access token มา refresh ไม่ได้ (typ ผิด)
	rec = doReq(t, e, http.MethodPost, "/api/token/refresh", map[string]string{"refresh": pair["access"]}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// เอา refresh token มายิง endpoint ปกติไม่ได้
	rec = doReq(t, e, http.MethodGet, "/api/enrollments", nil, pair["refresh"])
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenBadCredentials(t *testing.T) {
	e, _ := setup(t)
	createUser(t, "somchai", false)

	rec := doReq(t, e, http.MethodPost, "/api/token", map[string]string{
		"username": "somchai", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doReq(t, e, http.MethodPost, "/api/token", map[string]string{
		"username": "nobody", "password": testPassword,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doReq(t, e, http.MethodPost, "/api/token", map[string]string{"username": "somchai"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenInactiveUser(t *testing.T) {
	e, _ := setup(t)
	u := createUser(t, "gone", false)
	require.NoError(t, database.DB.Model(&models.User{}).Where("id = ?", u.ID).Update("is_active", false).Error)

	rec := doReq(t, e, http.MethodPost, "/api/token", map[string]string{
		"username": "gone", "password": testPassword,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedEndpointRejectsGarbage(t *testing.T) {
	e, _ := setup(t)

	rec := doReq(t, e, http.MethodGet, "/api/enrollments", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doReq(t, e, http.MethodGet, "/api/enrollments", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
