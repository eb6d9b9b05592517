package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crotools/cro-admin-backend/internal/config"
	"github.com/crotools/cro-admin-backend/internal/handlers"
	"github.com/crotools/cro-admin-backend/internal/models"
	"github.com/crotools/cro-admin-backend/internal/routes"
	"github.com/crotools/cro-admin-backend/internal/services"
	"github.com/crotools/cro-admin-backend/internal/session"
	"github.com/crotools/cro-admin-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type testEnv struct {
	app   *fiber.App
	store *storage.Storage
	db    *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Subcro{}, &models.Hotel{},
		&models.SystemLog{}, &models.QueryAudit{},
	))
	for _, stmt := range []string{
		`CREATE VIEW hotel_maincro_subcro AS
			SELECT h."codeHotel" AS "codeHotel", h."subcroId" AS "subcroId",
			       s.subcro AS subcro, s.maincro AS maincro
			FROM hotel h JOIN subcro s ON s.id = h."subcroId"`,
		`CREATE VIEW user_maincro_subcro AS
			SELECT u.id AS id, u.email AS email, u.maincro AS maincro,
			       s.subcro AS subcro
			FROM users u JOIN subcro s ON u.maincro LIKE '%' || s.maincro || '%'`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	cfg := &config.Config{SessionTTL: time.Hour}
	store := storage.New(db)
	authService := services.NewAuthService(store)
	// nil storage falls back to fiber's in-memory session storage
	sessions := session.NewStoreWithStorage(cfg, nil)

	app := fiber.New()
	routes.Setup(app, sessions,
		handlers.NewAuthHandler(authService, store, sessions),
		handlers.NewHotelHandler(store),
		handlers.NewSubcroHandler(store),
		handlers.NewUserHandler(store),
		handlers.NewViewHandler(store),
		handlers.NewQueryHandler(store),
		handlers.NewBulkHandler(authService, store),
		handlers.NewHealthHandler(),
	)

	return &testEnv{app: app, store: store, db: db}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}

// login registers a fresh account and returns its session cookies.
func (e *testEnv) login(t *testing.T) []*http.Cookie {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/register", map[string]any{
		"username": "operator-" + uuid.NewString()[:8],
		"password": "secret123",
		"email":    "operator@example.com",
		"maincro":  "ACCOR",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, resp.Cookies())
	return resp.Cookies()
}

func TestRegisterLoginLogout(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/register", map[string]any{
		"username": "alice",
		"password": "secret123",
		"email":    "alice@example.com",
		"maincro":  "ACCOR",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.User
	decodeJSON(t, resp, &created)
	assert.Equal(t, "alice", created.Username)
	assert.NotZero(t, created.ID)

	// The stored hash must be scrypt, never the raw password.
	stored, err := env.store.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, services.VerifyPassword("secret123", stored.Password))

	resp = env.request(t, http.MethodPost, "/api/login", map[string]any{
		"username": "alice", "password": "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	resp = env.request(t, http.MethodGet, "/api/user", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	decodeJSON(t, resp, &me)
	assert.Equal(t, "alice", me.Username)

	resp = env.request(t, http.MethodPost, "/api/logout", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/user", nil, cookies)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp := env.request(t, http.MethodPost, "/api/login", map[string]any{
		"username": "nobody", "password": "whatever",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMutationWithoutSessionIs401(t *testing.T) {
	env := newTestEnv(t)

	subcro := &models.Subcro{Maincro: "ACCOR", Subcro: "IBH"}
	require.NoError(t, env.store.CreateSubcro(subcro))
	require.NoError(t, env.store.CreateHotel(&models.Hotel{CodeHotel: "001", SubcroID: subcro.ID}))

	resp := env.request(t, http.MethodDelete, "/api/hotel/001", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The 401 must not have deleted anything.
	_, err := env.store.GetHotel("001")
	assert.NoError(t, err)
}

func TestHotelCreateWithDanglingSubcro(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	resp := env.request(t, http.MethodPost, "/api/hotel", map[string]any{
		"codeHotel": "010", "subcroId": 42,
	}, cookies)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/hotel/010", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubcroRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	resp := env.request(t, http.MethodPost, "/api/subcro", map[string]any{
		"maincro": "ACCOR", "subcro": "IBH", "label": "Ibis",
		"flagcro": 1, "webcallback": 0,
	}, cookies)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Subcro
	decodeJSON(t, resp, &created)
	require.NotZero(t, created.ID)

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/subcro/%d", created.ID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Subcro
	decodeJSON(t, resp, &fetched)
	assert.Equal(t, "ACCOR", fetched.Maincro)
	assert.Equal(t, "IBH", fetched.Subcro)
	require.NotNil(t, fetched.Label)
	assert.Equal(t, "Ibis", *fetched.Label)
	require.NotNil(t, fetched.Flagcro)
	assert.Equal(t, 1, *fetched.Flagcro)
	require.NotNil(t, fetched.Webcallback)
	assert.Equal(t, 0, *fetched.Webcallback)
}

func TestSubcroUpdateKeepsOmittedOptionalFields(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	resp := env.request(t, http.MethodPost, "/api/subcro", map[string]any{
		"maincro": "ACCOR", "subcro": "IBH", "label": "Ibis", "flagcro": 1,
	}, cookies)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Subcro
	decodeJSON(t, resp, &created)

	// The PUT body carries only the required fields; label and flagcro
	// must come back untouched.
	resp = env.request(t, http.MethodPut, fmt.Sprintf("/api/subcro/%d", created.ID), map[string]any{
		"maincro": "ACCOR", "subcro": "NOV",
	}, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Subcro
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "NOV", updated.Subcro)
	require.NotNil(t, updated.Label)
	assert.Equal(t, "Ibis", *updated.Label)
	require.NotNil(t, updated.Flagcro)
	assert.Equal(t, 1, *updated.Flagcro)
}

func TestValidationErrorListsEveryField(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	resp := env.request(t, http.MethodPost, "/api/subcro", map[string]any{}, cookies)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Contains(t, body["message"], "Maincro")
	assert.Contains(t, body["message"], "Subcro")
}

func TestInvalidSubcroIDFormat(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/subcro/abc", nil, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Invalid ID format", body["message"])
}

func TestBulkUserImportPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	records := []map[string]any{
		{"username": "user-one", "password": "secret123", "email": "one@example.com", "maincro": "ACCOR"},
		{"username": "user-one", "password": "secret123", "email": "dup@example.com", "maincro": "ACCOR"},
		{"username": "user-two", "password": "secret123", "email": "two@example.com", "maincro": "BXO"},
	}
	resp := env.request(t, http.MethodPost, "/api/user/bulk", records, cookies)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Success int      `json:"success"`
		Failed  int      `json:"failed"`
		Errors  []string `json:"errors"`
	}
	decodeJSON(t, resp, &result)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "user-one")

	// Both valid rows exist despite the failure between them.
	_, err := env.store.GetUserByUsername("user-one")
	assert.NoError(t, err)
	_, err = env.store.GetUserByUsername("user-two")
	assert.NoError(t, err)
}

func TestBulkImportRejectsMalformedBatch(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	records := []map[string]any{
		{"username": "ok-user", "password": "secret123", "email": "ok@example.com", "maincro": "ACCOR"},
		{"username": "x", "password": "short", "email": "not-an-email", "maincro": ""},
	}
	resp := env.request(t, http.MethodPost, "/api/user/bulk", records, cookies)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Shape failure rejects the whole batch: even the valid record is not
	// written.
	_, err := env.store.GetUserByUsername("ok-user")
	assert.Error(t, err)
}

func TestSubcroListRequiresMaincro(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/subcro/list", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	require.NoError(t, env.store.CreateSubcro(&models.Subcro{Maincro: "ACCOR", Subcro: "IBH"}))
	resp = env.request(t, http.MethodGet, "/api/subcro/list?maincro=ACCOR", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var options []storage.SubcroOption
	decodeJSON(t, resp, &options)
	require.Len(t, options, 1)
	assert.Equal(t, "IBH", options[0].Subcro)
}

func TestViewEndpoints(t *testing.T) {
	env := newTestEnv(t)

	accor := &models.Subcro{Maincro: "ACCOR", Subcro: "IBH"}
	require.NoError(t, env.store.CreateSubcro(accor))
	bxo := &models.Subcro{Maincro: "BXO", Subcro: "BXA"}
	require.NoError(t, env.store.CreateSubcro(bxo))
	require.NoError(t, env.store.CreateHotel(&models.Hotel{CodeHotel: "001", SubcroID: accor.ID}))
	require.NoError(t, env.db.Create(&models.User{
		Username: "bob", Password: "x", Email: "bob@example.com", Maincro: "ACCOR,BXO",
	}).Error)

	resp := env.request(t, http.MethodGet, "/api/hotel-view?maincro=ACCOR", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var hotelRows []storage.HotelMaincroSubcroRow
	decodeJSON(t, resp, &hotelRows)
	require.Len(t, hotelRows, 1)
	assert.Equal(t, "ACCOR", hotelRows[0].Maincro)

	// The user view matches maincro by substring, so the "ACCOR,BXO" user
	// is included when filtering on a single group.
	resp = env.request(t, http.MethodGet, "/api/user-view?maincro=ACCOR", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var userRows []storage.UserMaincroSubcroRow
	decodeJSON(t, resp, &userRows)
	var emails []string
	for _, row := range userRows {
		emails = append(emails, row.Email)
	}
	assert.Contains(t, emails, "bob@example.com")
}

func TestQueryConsole(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/query", map[string]any{"sql": "SELECT 1"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cookies := env.login(t)
	require.NoError(t, env.store.CreateSubcro(&models.Subcro{Maincro: "ACCOR", Subcro: "IBH"}))

	resp = env.request(t, http.MethodPost, "/api/query", map[string]any{
		"sql": "SELECT id, subcro FROM subcro",
	}, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result storage.QueryResult
	decodeJSON(t, resp, &result)
	assert.Equal(t, []string{"id", "subcro"}, result.Columns)
	require.Len(t, result.Rows, 1)

	// The execution left an audit row behind.
	var audits []models.QueryAudit
	require.NoError(t, env.db.Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.True(t, audits[0].Success)

	resp = env.request(t, http.MethodPost, "/api/query", map[string]any{
		"sql": "SELECT * FROM missing_table",
	}, cookies)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Contains(t, body["message"], "Error executing query")
}

func TestHotelCodesEndpointIsPublic(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/hotel/codes", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var codes []string
	decodeJSON(t, resp, &codes)
	require.Len(t, codes, 100)
	assert.Equal(t, "000", codes[0])
}

func TestDeleteHotelReturns204(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	subcro := &models.Subcro{Maincro: "ACCOR", Subcro: "IBH"}
	require.NoError(t, env.store.CreateSubcro(subcro))
	require.NoError(t, env.store.CreateHotel(&models.Hotel{CodeHotel: "001", SubcroID: subcro.ID}))

	resp := env.request(t, http.MethodDelete, "/api/hotel/001", nil, cookies)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/api/hotel/001", nil, cookies)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserUpdateIgnoresPassword(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	resp := env.request(t, http.MethodPost, "/api/register", map[string]any{
		"username": "carol", "password": "secret123",
		"email": "carol@example.com", "maincro": "ACCOR",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var carol models.User
	decodeJSON(t, resp, &carol)

	before, err := env.store.GetUser(carol.ID)
	require.NoError(t, err)

	resp = env.request(t, http.MethodPut, fmt.Sprintf("/api/user/%d", carol.ID), map[string]any{
		"username": "carol", "password": "evil-overwrite",
		"email": "carol2@example.com", "maincro": "BXO",
	}, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	after, err := env.store.GetUser(carol.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol2@example.com", after.Email)
	assert.Equal(t, before.Password, after.Password)
}
