package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hr-suite/backend/config"
	"hr-suite/backend/internal/api/handler"
	"hr-suite/backend/internal/dto"
	"hr-suite/backend/internal/service"
	"hr-suite/backend/pkg/jwt"
	"hr-suite/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mocks ──

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{AccessToken: "t"}, nil
}
func (stubAuth) Logout(_ context.Context, _ string, _ time.Time) error { return nil }
func (stubAuth) Me(_ context.Context, id uint) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: id}, nil
}

type stubEmployee struct{}

func (stubEmployee) List(_ context.Context, _ *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	return []dto.EmployeeResponse{}, 0, nil
}
func (stubEmployee) Create(_ context.Context, _ *dto.EmployeeRequest, _ uint) (*dto.EmployeeResponse, error) {
	return &dto.EmployeeResponse{ID: 1}, nil
}
func (stubEmployee) GetByID(_ context.Context, id uint) (*dto.EmployeeResponse, error) {
	return &dto.EmployeeResponse{ID: id}, nil
}
func (stubEmployee) Update(_ context.Context, id uint, _ *dto.EmployeeRequest, _ uint) (*dto.EmployeeResponse, error) {
	return &dto.EmployeeResponse{ID: id}, nil
}
func (stubEmployee) Patch(_ context.Context, id uint, _ *dto.PatchEmployeeRequest, _ uint) (*dto.EmployeeResponse, error) {
	return &dto.EmployeeResponse{ID: id}, nil
}
func (stubEmployee) Delete(_ context.Context, _ uint) error { return nil }

type stubPermission struct {
	perms dto.AttendancePermissions
	calls int
}

func (s *stubPermission) AttendancePermissions(_ context.Context, _ uint) (dto.AttendancePermissions, error) {
	s.calls++
	return s.perms, nil
}
func (s *stubPermission) HasCapability(_ context.Context, _ uint, capability string) (bool, error) {
	s.calls++
	return s.perms[capability], nil
}

type stubAttendance struct{}

func (stubAttendance) List(_ context.Context, _ *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int64, error) {
	return []dto.AttendanceResponse{}, 0, nil
}
func (stubAttendance) Export(_ context.Context, _ *dto.AttendanceExportRequest) (*service.ExportFile, error) {
	return nil, service.ErrExportGenerateFail
}

type stubPinger struct{}

func (stubPinger) Ping(_ context.Context) error { return nil }

// ── 工具 ──

func newTestEngine(perm *stubPermission) (*gin.Engine, *jwt.Manager) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			BodyLimit:   1 << 20,
			CORS:        config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
			LoginLimit:  10,
			LoginWindow: time.Minute,
		},
	}
	mgr := jwt.NewManager(&config.AuthConfig{JWTSecret: "router-test-secret-0123", AccessTokenTTL: time.Hour})

	h := &handler.Handler{
		Auth:       handler.NewAuthHandler(stubAuth{}),
		Employee:   handler.NewEmployeeHandler(stubEmployee{}),
		Attendance: handler.NewAttendanceHandler(stubAttendance{}, perm),
		Health:     handler.NewHealthHandler(stubPinger{}),
	}

	return Setup(cfg, h, Deps{JWT: mgr, Permission: perm, Logger: zap.NewNop()}), mgr
}

func doRequest(r *gin.Engine, method, path, token string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── Tests ──

func TestRouter_Health(t *testing.T) {
	r, _ := newTestEngine(&stubPermission{})

	w := doRequest(r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，得到 %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("缺少 X-Request-ID 响应头")
	}
}

func TestRouter_PermissionCheck_RequiresAuth(t *testing.T) {
	perm := &stubPermission{}
	r, _ := newTestEngine(perm)

	w := doRequest(r, http.MethodGet, "/api/v1/attendance/permission-check/", "", "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，得到 %d", w.Code)
	}
	if perm.calls != 0 {
		t.Error("未认证请求不应触发权限计算")
	}
}

func TestRouter_PermissionCheck_Authenticated(t *testing.T) {
	perm := &stubPermission{perms: dto.AttendancePermissions{service.CapViewAttendance: true}}
	r, mgr := newTestEngine(perm)
	token, _ := mgr.GenerateAccessToken(3, "bob")

	w := doRequest(r, http.MethodGet, "/api/v1/attendance/permission-check/", token, "")

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，得到 %d: %s", w.Code, w.Body.String())
	}
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	data, _ := resp.Data.(map[string]interface{})
	if data[service.CapViewAttendance] != true {
		t.Errorf("能力映射错误: %v", data)
	}
}

func TestRouter_AttendanceCapabilityGate(t *testing.T) {
	perm := &stubPermission{perms: dto.AttendancePermissions{service.CapViewAttendance: true}}
	r, mgr := newTestEngine(perm)
	token, _ := mgr.GenerateAccessToken(3, "bob")

	if w := doRequest(r, http.MethodGet, "/api/v1/attendance/attendance/", token, ""); w.Code != http.StatusOK {
		t.Errorf("具备查看能力时期望 200，得到 %d", w.Code)
	}
	if w := doRequest(r, http.MethodGet, "/api/v1/attendance/export/?format=xlsx&from=2025-05-01&to=2025-05-02", token, ""); w.Code != http.StatusForbidden {
		t.Errorf("缺少导出能力时期望 403，得到 %d", w.Code)
	}
}

func TestRouter_EmployeeRoutes(t *testing.T) {
	r, mgr := newTestEngine(&stubPermission{})
	token, _ := mgr.GenerateAccessToken(1, "admin")
	body := `{"employee_first_name":"Ada","email":"ada@example.com","phone":"123"}`

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/employee/employees/", "", http.StatusOK},
		{http.MethodPost, "/api/v1/employee/employees/", body, http.StatusCreated},
		{http.MethodGet, "/api/v1/employee/employees/5/", "", http.StatusOK},
		{http.MethodPut, "/api/v1/employee/employees/5/", body, http.StatusOK},
		{http.MethodPatch, "/api/v1/employee/employees/5/", `{"city":"Oslo"}`, http.StatusOK},
		{http.MethodDelete, "/api/v1/employee/employees/5/", "", http.StatusOK},
		{http.MethodGet, "/api/v1/employee/employees/abc/", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doRequest(r, tt.method, tt.path, token, tt.body)
			if w.Code != tt.want {
				t.Errorf("期望 %d，得到 %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}

	if w := doRequest(r, http.MethodGet, "/api/v1/employee/employees/", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("未认证访问员工列表期望 401，得到 %d", w.Code)
	}
}
