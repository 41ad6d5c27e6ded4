package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneul-dev/virtual-gallery/internal/config"
	"github.com/haneul-dev/virtual-gallery/internal/model"
	"github.com/haneul-dev/virtual-gallery/internal/repository"
	"github.com/haneul-dev/virtual-gallery/internal/utils"
)

type fakeUserStore struct {
	nextID  uint64
	byEmail map[string]*model.User
	byID    map[uint64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*model.User{}, byID: map[uint64]*model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, email, password, nickname, contact string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.byEmail[email]; exists {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	u := &model.User{ID: s.nextID, Email: email, PasswordHash: hash, Nickname: nickname, Contact: contact, IsActive: true}
	s.byEmail[email] = u
	s.byID[u.ID] = u
	return u.ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, found := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !found {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	u, found := s.byID[id]
	if !found {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

type storedToken struct {
	userID  uint64
	exp     time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (s *fakeTokenStore) StoreRefresh(_ context.Context, userID uint64, tokenHash string, exp time.Time) error {
	s.tokens[tokenHash] = &storedToken{userID: userID, exp: exp}
	return nil
}

func (s *fakeTokenStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	tok, found := s.tokens[tokenHash]
	if !found || tok.revoked || time.Now().UTC().After(tok.exp) {
		return 0, repository.ErrUserNotFound
	}
	return tok.userID, nil
}

func (s *fakeTokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	if tok, found := s.tokens[tokenHash]; found {
		tok.revoked = true
	}
	return nil
}

func testAuthCfg() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4, // minimum cost keeps the test fast
	}
}

func newAuthEnv() (*testEnv, *AuthHandler, *fakeUserStore, *fakeTokenStore) {
	env := newTestEnv()
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	return env, NewAuthHandler(testAuthCfg(), users, tokens), users, tokens
}

func decodeAuthResp(t *testing.T, data json.RawMessage) authResp {
	t.Helper()
	var resp authResp
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	env, ah, _, _ := newAuthEnv()

	body := `{"email":"Jiwoo@Example.com","password":"correct horse","nickname":"jiwoo","contact":"010-1234-5678"}`
	c, rec := env.request(http.MethodPost, "/auth/register", body, 0, "")
	require.NoError(t, ah.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	success, _, data := decodeEnvelope(t, rec)
	require.True(t, success)
	resp := decodeAuthResp(t, data)
	assert.Equal(t, "jiwoo@example.com", resp.User.Email) // normalized
	assert.NotEmpty(t, resp.Access.Token)
	assert.NotEmpty(t, resp.Refresh.Token)

	c, rec = env.request(http.MethodPost, "/auth/login", `{"email":"jiwoo@example.com","password":"correct horse"}`, 0, "")
	require.NoError(t, ah.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)
	success, _, data = decodeEnvelope(t, rec)
	require.True(t, success)
	resp = decodeAuthResp(t, data)
	assert.Equal(t, "jiwoo", resp.User.Nickname)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env, ah, _, _ := newAuthEnv()
	body := `{"email":"a@b.com","password":"longpassword","nickname":"a"}`

	c, rec := env.request(http.MethodPost, "/auth/register", body, 0, "")
	require.NoError(t, ah.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = env.request(http.MethodPost, "/auth/register", body, 0, "")
	require.NoError(t, ah.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env, ah, _, _ := newAuthEnv()
	c, rec := env.request(http.MethodPost, "/auth/register",
		`{"email":"a@b.com","password":"longpassword","nickname":"a"}`, 0, "")
	require.NoError(t, ah.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = env.request(http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"wrong"}`, 0, "")
	require.NoError(t, ah.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	env, ah, _, _ := newAuthEnv()
	c, rec := env.request(http.MethodPost, "/auth/register",
		`{"email":"a@b.com","password":"longpassword","nickname":"a"}`, 0, "")
	require.NoError(t, ah.Register(c))
	_, _, data := decodeEnvelope(t, rec)
	first := decodeAuthResp(t, data)

	c, rec = env.request(http.MethodPost, "/auth/refresh", `{"refreshToken":"`+first.Refresh.Token+`"}`, 0, "")
	require.NoError(t, ah.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, _, data = decodeEnvelope(t, rec)
	second := decodeAuthResp(t, data)
	assert.NotEqual(t, first.Refresh.Token, second.Refresh.Token)

	// The old token was revoked by the rotation.
	c, rec = env.request(http.MethodPost, "/auth/refresh", `{"refreshToken":"`+first.Refresh.Token+`"}`, 0, "")
	require.NoError(t, ah.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
