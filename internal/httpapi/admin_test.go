package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)
	creds := map[string]string{"username": "owner", "password": "s3cret"}

	w := env.do(t, http.MethodPost, "/api/admin/register", creds, "")
	assertStatus(t, http.StatusCreated, w)
	reg := decode[tokenResponse](t, w)
	assert.Equal(t, "owner", reg.Username)
	require.NotEmpty(t, reg.Token)

	stored := env.admins.byName["owner"]
	assert.NotEqual(t, "s3cret", stored.Password, "password is stored hashed")

	w = env.do(t, http.MethodPost, "/api/admin/login", creds, "")
	assertStatus(t, http.StatusOK, w)
	login := decode[tokenResponse](t, w)
	assert.Equal(t, reg.ID, login.ID)

	adminID, err := env.issuer.Parse(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, adminID)

	w = env.do(t, http.MethodPost, "/api/admin/logout", nil, login.Token)
	assertStatus(t, http.StatusOK, w)
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	creds := map[string]string{"username": "owner", "password": "s3cret"}

	assertStatus(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/admin/register", creds, ""))

	w := env.do(t, http.MethodPost, "/api/admin/register", creds, "")
	assertStatus(t, http.StatusBadRequest, w)
	assert.Equal(t, "Admin already exists", decode[map[string]string](t, w)["error"])
}

func TestLogin_Rejected(t *testing.T) {
	env := newTestEnv(t)
	assertStatus(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/admin/register",
		map[string]string{"username": "owner", "password": "s3cret"}, ""))

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{name: "wrong password", body: map[string]string{"username": "owner", "password": "nope"}, status: http.StatusUnauthorized},
		{name: "unknown user", body: map[string]string{"username": "ghost", "password": "s3cret"}, status: http.StatusUnauthorized},
		{name: "missing password", body: map[string]string{"username": "owner"}, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/admin/login", tt.body, "")
			assertStatus(t, tt.status, w)
		})
	}
}

func TestLogout_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/logout", nil, "")

	assertStatus(t, http.StatusUnauthorized, w)
	assert.Equal(t, "Not authorized, no token", decode[map[string]string](t, w)["error"])
}

func TestRegister_BlankUsername(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/register",
		map[string]string{"username": "   ", "password": "s3cret"}, "")

	assertStatus(t, http.StatusBadRequest, w)
	assert.Empty(t, env.admins.byName)
}
