package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/service"
	pkgerrors "teamaura/backend/pkg/errors"
	"teamaura/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserDetailResponse
	meErr         error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock SubmissionService ──

type mockSubmissionService struct {
	submitResult *dto.SubmissionResponse
	submitErr    error
	withdrawErr  error
	reviewResult *dto.SubmissionResponse
	reviewErr    error
	getResult    *dto.SubmissionResponse
	getErr       error
	listResult   []dto.SubmissionResponse
	listTotal    int64
	listErr      error
	mineResult   []dto.SubmissionResponse
	mineTotal    int64
	mineErr      error
}

func (m *mockSubmissionService) Submit(_ context.Context, _ *dto.SubmitTaskRequest, _ string) (*dto.SubmissionResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockSubmissionService) Withdraw(_ context.Context, _, _ string, _ bool) error {
	return m.withdrawErr
}
func (m *mockSubmissionService) Review(_ context.Context, _ string, _ *dto.ReviewRequest, _ string) (*dto.SubmissionResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockSubmissionService) GetByID(_ context.Context, _ string) (*dto.SubmissionResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSubmissionService) List(_ context.Context, _ *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockSubmissionService) ListMine(_ context.Context, _ string, _ *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error) {
	return m.mineResult, m.mineTotal, m.mineErr
}

// ── Mock SeasonService ──

type mockSeasonService struct {
	currentResult *dto.SeasonResponse
	currentErr    error
	listResult    *dto.SeasonListResponse
	listErr       error
	archiveResult *dto.SeasonResponse
	archiveErr    error
	goalResult    *dto.SeasonResponse
	goalErr       error
}

func (m *mockSeasonService) Current(_ context.Context) (*dto.SeasonResponse, error) {
	return m.currentResult, m.currentErr
}
func (m *mockSeasonService) List(_ context.Context) (*dto.SeasonListResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockSeasonService) Archive(_ context.Context, _ *dto.ArchiveSeasonRequest, _ string) (*dto.SeasonResponse, error) {
	return m.archiveResult, m.archiveErr
}
func (m *mockSeasonService) UpdateGoal(_ context.Context, _ *dto.UpdateSeasonGoalRequest, _ string) (*dto.SeasonResponse, error) {
	return m.goalResult, m.goalErr
}

// ── Mock ExportService ──

type mockExportService struct {
	xlsxBuf  *bytes.Buffer
	xlsxName string
	xlsxErr  error
	csvBuf   *bytes.Buffer
	csvName  string
	csvErr   error
}

func (m *mockExportService) ExportXLSX(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.xlsxBuf, m.xlsxName, m.xlsxErr
}
func (m *mockExportService) ExportCSV(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.csvBuf, m.csvName, m.csvErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("is_admin", true)
	c.Set("token_jti", "test-jti")
	c.Set("token_expiry", time.Now().Add(15*time.Minute))
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := newRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Account:  "alice",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Account:  "alice",
		Password: "wrongpass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrRefreshTokenInvalid})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale-refresh",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := newRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me) // 未注入认证上下文
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrOldPasswordWrong})

	w := newRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "Old12345",
		NewPassword: "New12345",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", func(c *gin.Context) {
		setAuth(c)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SubmissionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSubmissionHandler_Submit_Success(t *testing.T) {
	mock := &mockSubmissionService{
		submitResult: &dto.SubmissionResponse{
			ID:     "sub-1",
			TaskID: "daily-checkin",
			Status: "pending",
		},
	}
	h := NewSubmissionHandler(mock)

	w := newRecorder()
	req := httptest.NewRequest("POST", "/submissions", jsonBody(dto.SubmitTaskRequest{
		TaskID: "daily-checkin",
		Proof:  "完成打卡",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/submissions", func(c *gin.Context) {
		setAuth(c)
		h.Submit(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestSubmissionHandler_Submit_DuplicatePending(t *testing.T) {
	h := NewSubmissionHandler(&mockSubmissionService{submitErr: service.ErrDuplicatePending})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/submissions", jsonBody(dto.SubmitTaskRequest{
		TaskID: "daily-checkin",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/submissions", func(c *gin.Context) {
		setAuth(c)
		h.Submit(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15004 {
		t.Errorf("expected error code 15004, got %d", resp.Code)
	}
}

func TestSubmissionHandler_Review_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrSubmissionNotFound, 404, 15001},
		{"NotPending", service.ErrSubmissionNotPending, 400, 15002},
		{"Forbidden", service.ErrSubmissionForbidden, 403, 10003},
		{"SeasonReadOnly", service.ErrSeasonReadOnly, 400, 15005},
		{"ReviewInvalid", service.ErrReviewInvalid, 400, 15006},
		{"OptimisticLock", pkgerrors.ErrOptimisticLock, 409, 15007},
		{"OwnerUnresolved", service.ErrOwnerUnresolved, 400, 15008},
		{"NoActiveSeason", service.ErrNoActiveSeason, 400, 16002},
		{"TaskNotFound", service.ErrTaskNotFound, 404, 14001},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSubmissionHandler(&mockSubmissionService{reviewErr: tt.err})

			w := newRecorder()
			req := httptest.NewRequest("PUT", "/submissions/sub-1/review", jsonBody(dto.ReviewRequest{
				Action: "approve",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.PUT("/submissions/:id/review", func(c *gin.Context) {
				setAuth(c)
				h.Review(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestSubmissionHandler_Review_BadAction(t *testing.T) {
	h := NewSubmissionHandler(&mockSubmissionService{})

	w := newRecorder()
	req := httptest.NewRequest("PUT", "/submissions/sub-1/review", jsonBody(map[string]string{
		"action": "promote", // 不在 oneof 列表中
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/submissions/:id/review", func(c *gin.Context) {
		setAuth(c)
		h.Review(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSubmissionHandler_Withdraw_Forbidden(t *testing.T) {
	h := NewSubmissionHandler(&mockSubmissionService{withdrawErr: service.ErrSubmissionForbidden})

	w := newRecorder()
	req := httptest.NewRequest("DELETE", "/submissions/sub-1", nil)

	r := gin.New()
	r.DELETE("/submissions/:id", func(c *gin.Context) {
		setAuth(c)
		h.Withdraw(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SeasonHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSeasonHandler_Archive_Success(t *testing.T) {
	mock := &mockSeasonService{
		archiveResult: &dto.SeasonResponse{Name: "Season 2", IsActive: true},
	}
	h := NewSeasonHandler(mock)

	w := newRecorder()
	req := httptest.NewRequest("POST", "/seasons/archive", jsonBody(dto.ArchiveSeasonRequest{
		NewSeasonName: "Season 2",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/seasons/archive", func(c *gin.Context) {
		setAuth(c)
		h.ArchiveSeason(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestSeasonHandler_Archive_NameTaken(t *testing.T) {
	h := NewSeasonHandler(&mockSeasonService{archiveErr: service.ErrSeasonNameTaken})

	w := newRecorder()
	req := httptest.NewRequest("POST", "/seasons/archive", jsonBody(dto.ArchiveSeasonRequest{
		NewSeasonName: "Season 1",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/seasons/archive", func(c *gin.Context) {
		setAuth(c)
		h.ArchiveSeason(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16003 {
		t.Errorf("expected error code 16003, got %d", resp.Code)
	}
}

func TestSeasonHandler_Current_NoActiveSeason(t *testing.T) {
	h := NewSeasonHandler(&mockSeasonService{currentErr: service.ErrNoActiveSeason})

	w := newRecorder()
	req := httptest.NewRequest("GET", "/seasons/current", nil)

	r := gin.New()
	r.GET("/seasons/current", h.CurrentSeason)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16002 {
		t.Errorf("expected error code 16002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_XLSX_Success(t *testing.T) {
	mock := &mockExportService{
		xlsxBuf:  bytes.NewBufferString("excel content"),
		xlsxName: "TeamAura_Report_S1.xlsx",
	}
	h := NewExportHandler(mock)

	w := newRecorder()
	req := httptest.NewRequest("GET", "/export?season=S1", nil)

	r := gin.New()
	r.GET("/export", h.ExportReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_CSV_Success(t *testing.T) {
	mock := &mockExportService{
		csvBuf:  bytes.NewBufferString("\uFEFFUsername,Total"),
		csvName: "TeamAura_Report_S1.csv",
	}
	h := NewExportHandler(mock)

	w := newRecorder()
	req := httptest.NewRequest("GET", "/export?season=S1&format=csv", nil)

	r := gin.New()
	r.GET("/export", h.ExportReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "text/csv; charset=utf-8" {
		t.Errorf("unexpected content type: %s", ct)
	}
}

func TestExportHandler_UnsupportedFormat(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := newRecorder()
	req := httptest.NewRequest("GET", "/export?format=pdf", nil)

	r := gin.New()
	r.GET("/export", h.ExportReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_UnknownSeason(t *testing.T) {
	h := NewExportHandler(&mockExportService{xlsxErr: service.ErrSeasonNotFound})

	w := newRecorder()
	req := httptest.NewRequest("GET", "/export?season=ghost", nil)

	r := gin.New()
	r.GET("/export", h.ExportReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16001 {
		t.Errorf("expected error code 16001, got %d", resp.Code)
	}
}
