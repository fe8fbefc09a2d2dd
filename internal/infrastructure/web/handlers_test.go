package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffroster-web/internal/domain/entity"
	apirepo "staffroster-web/internal/interface/repository"
	"staffroster-web/internal/usecase"
	"staffroster-web/pkg/logger"
	"staffroster-web/pkg/metrics"
)

// promauto registers against the default registry, so the whole package
// shares one Metrics instance
var testMetrics = metrics.NewMetrics("staffroster_webtest")

// fakeUpstream stands in for the roster service. Password "secret" logs
// anyone in; A100 is the only admin.
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				io.WriteString(w, "Invalid employee ID or password")
				return
			}
		case "/api/permission":
			perm := "Staff"
			if r.URL.Query().Get("employeeID") == "A100" {
				perm = "Admin"
			}
			json.NewEncoder(w).Encode(map[string]string{"permission": perm})
		case "/api/routine":
			json.NewEncoder(w).Encode([]entity.DutyRecord{
				{JobID: "job-1", SN: "SN001", Date: time.Now().Format("2006-01-02"), Flight: "WW900", From: "HKG", To: "NRT"},
				{JobID: "job-2", SN: "SN002", Date: "2024-07-01", Flight: "WW100", From: "HKG", To: "SIN"},
			})
		case "/api/routine/export":
			w.Write([]byte("xlsx-bytes"))
		case "/api/users":
			json.NewEncoder(w).Encode([]entity.UserAccount{
				{EmployeeID: "A100", Name: "Alice", Permission: entity.PermissionAdmin},
				{EmployeeID: "E200", Name: "Bob", Permission: entity.PermissionStaff},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)
	return upstream
}

type webFixture struct {
	app    *httptest.Server
	client *http.Client
	srv    *Server
}

func newWebFixture(t *testing.T) *webFixture {
	return newWebFixtureTTL(t, time.Hour)
}

func newWebFixtureTTL(t *testing.T, ttl time.Duration) *webFixture {
	t.Helper()
	upstream := fakeUpstream(t)
	log := logger.NewLogger()
	timeout := 5 * time.Second

	authRepo := apirepo.NewAuthAPIRepository(upstream.URL, timeout, log)
	rosterRepo := apirepo.NewRosterAPIRepository(upstream.URL, timeout, log)
	userRepo := apirepo.NewUserAPIRepository(upstream.URL, timeout, log)
	sessions := usecase.NewSessionManager(authRepo, ttl, log)

	srv := NewServer(sessions, rosterRepo, userRepo, testMetrics, 10, log)
	app := httptest.NewServer(srv.Router())
	t.Cleanup(app.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &webFixture{app: app, client: &http.Client{Jar: jar}, srv: srv}
}

func (f *webFixture) stateCount() int {
	f.srv.mu.Lock()
	defer f.srv.mu.Unlock()
	return len(f.srv.states)
}

func (f *webFixture) login(t *testing.T, employeeID, password string) string {
	t.Helper()
	resp, err := f.client.PostForm(f.app.URL+"/login", url.Values{
		"employeeID": {employeeID},
		"password":   {password},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func (f *webFixture) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := f.client.Get(f.app.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newWebFixture(t)
	noRedirect := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	resp, err := noRedirect.PostForm(f.app.URL+"/login", url.Values{
		"employeeID": {"E200"},
		"password":   {"secret"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestLoginFailureShowsBackendMessage(t *testing.T) {
	f := newWebFixture(t)
	body := f.login(t, "E200", "wrong")
	assert.Contains(t, body, "Invalid employee ID or password")
	assert.Contains(t, body, "Please sign in to continue")
}

func TestLoginWithMissingFields(t *testing.T) {
	f := newWebFixture(t)
	body := f.login(t, "", "")
	assert.Contains(t, body, "Please enter both Employee ID and password.")
}

func TestUnauthenticatedRequestsRedirectToLogin(t *testing.T) {
	f := newWebFixture(t)
	noRedirect := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	for _, path := range []string{"/", "/dashboard", "/users"} {
		resp, err := noRedirect.Get(f.app.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestAdminDashboardShowsManagementControls(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "A100", "secret")

	status, body := f.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Add Routine")
	assert.Contains(t, body, "Import Excel")
	assert.Contains(t, body, "Delete")
	assert.Contains(t, body, "User Maintenance")
	assert.Contains(t, body, "Routine Table")
	assert.Contains(t, body, "WW900")
}

func TestStaffDashboardHidesManagementControls(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "E200", "secret")

	status, body := f.get(t, "/dashboard")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "My Duty Routine")
	assert.Contains(t, body, "Export to Excel")
	assert.Contains(t, body, "Edit")
	assert.NotContains(t, body, "Add Routine")
	assert.NotContains(t, body, "Import Excel")
	assert.NotContains(t, body, "Delete")
	assert.NotContains(t, body, "User Maintenance")
}

func TestStaffCannotOpenUserMaintenance(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "E200", "secret")

	status, _ := f.get(t, "/users")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestStaffCannotOpenDeleteConfirmation(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "E200", "secret")

	status, _ := f.get(t, "/dashboard/delete?jobID=job-1")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminUserMaintenanceListsAccounts(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "A100", "secret")

	status, body := f.get(t, "/users")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "User Maintenance")
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Bob")
}

func TestDeleteConfirmationRoundTrip(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "A100", "secret")

	status, body := f.get(t, "/dashboard/delete?jobID=job-2")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Are you sure you want to delete this routine?")
	assert.Contains(t, body, "job-2")
	assert.Contains(t, body, `name="confirmed" value="true"`)
}

func TestExportDownloadHeaders(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "E200", "secret")

	resp, err := f.client.PostForm(f.app.URL+"/dashboard/export", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "routine.xlsx")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "xlsx-bytes", string(body))
}

func TestHomeShowsTodayOnly(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "E200", "secret")

	status, body := f.get(t, "/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "WW900")
	assert.NotContains(t, body, "WW100")
}

func TestSearchSubmitsQuery(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "E200", "secret")

	status, body := f.get(t, "/dashboard?search=WW9")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `value="WW9"`)
}

func TestLogoutEndsSession(t *testing.T) {
	f := newWebFixture(t)
	f.login(t, "E200", "secret")

	resp, err := f.client.PostForm(f.app.URL+"/logout", nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "Please sign in to continue")

	status, body2 := f.get(t, "/dashboard")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body2, "Please sign in to continue"), "expected redirect back to login")
}

func TestExpiredSessionStateIsReleased(t *testing.T) {
	f := newWebFixtureTTL(t, 20*time.Millisecond)
	for i := 0; i < 3; i++ {
		f.login(t, "E200", "secret")
	}
	require.Equal(t, 3, f.stateCount())

	time.Sleep(50 * time.Millisecond)

	status, body := f.get(t, "/dashboard")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Please sign in to continue")
	assert.Equal(t, 0, f.stateCount())
}

func TestHealthEndpoint(t *testing.T) {
	f := newWebFixture(t)
	status, body := f.get(t, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Healthy", body)
}
