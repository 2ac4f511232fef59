package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"hostelhub-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp mounts the role middlewares in front of a stub handler so the
// gates can be exercised without a database.
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	ok := func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/ping", ok)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, ok)
	}

	payments := app.Party("/api/payments", accessTokenVerifierMiddleware)
	{
		payments.Post("/bulk-approve", utils.FinanceOnlyMiddleware, ok)
	}

	cleaning := app.Party("/api/cleaning", accessTokenVerifierMiddleware, utils.StaffOnlyMiddleware)
	{
		cleaning.Get("/", ok)
	}

	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

// signTestToken returns a signed JWT with the given role
func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func doRequest(app *iris.Application, method, path, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+signTestToken(role))
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestAdminRBAC(t *testing.T) {
	app := buildTestApp()

	if resp := doRequest(app, http.MethodGet, "/api/admin/ping", ""); resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}
	if resp := doRequest(app, http.MethodGet, "/api/admin/ping", "guest"); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for guest role, got %d", resp.Code)
	}
	if resp := doRequest(app, http.MethodGet, "/api/admin/ping", "admin"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp.Code)
	}
}

func TestSuperAdminRBAC(t *testing.T) {
	app := buildTestApp()

	// Role changes need super_admin even though the party allows admin
	if resp := doRequest(app, http.MethodPatch, "/api/admin/users/1/role", "admin"); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin role, got %d", resp.Code)
	}
	if resp := doRequest(app, http.MethodPatch, "/api/admin/users/1/role", "super_admin"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for super_admin role, got %d", resp.Code)
	}
}

func TestFinanceRBAC(t *testing.T) {
	app := buildTestApp()

	for _, role := range []string{"admin", "super_admin", "accountant"} {
		if resp := doRequest(app, http.MethodPost, "/api/payments/bulk-approve", role); resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s role, got %d", role, resp.Code)
		}
	}
	for _, role := range []string{"guest", "staff", "warden"} {
		if resp := doRequest(app, http.MethodPost, "/api/payments/bulk-approve", role); resp.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for %s role, got %d", role, resp.Code)
		}
	}
}

func TestStaffRBAC(t *testing.T) {
	app := buildTestApp()

	if resp := doRequest(app, http.MethodGet, "/api/cleaning", "guest"); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for guest role, got %d", resp.Code)
	}
	if resp := doRequest(app, http.MethodGet, "/api/cleaning", "staff"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff role, got %d", resp.Code)
	}
}
