package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"remindify/config"
	"remindify/handlers"
	"remindify/models"
	"remindify/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubDispatchService struct {
	report models.DispatchReport
	last   *models.DispatchReport
	err    error
}

func (s *stubDispatchService) Run(context.Context) (models.DispatchReport, error) {
	if s.err != nil {
		return models.DispatchReport{}, s.err
	}
	return s.report, nil
}

func (s *stubDispatchService) LastReport(context.Context) (*models.DispatchReport, error) {
	return s.last, s.err
}

func newRouter(svc *stubDispatchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, handlers.NewCronHandler(svc, zap.NewNop()))
	return r
}

func sentReport(n int) models.DispatchReport {
	report := models.DispatchReport{RanAt: time.Now().UTC()}
	for i := 0; i < n; i++ {
		report.Outcomes = append(report.Outcomes, models.BookingOutcome{
			BookingID: "b", Status: models.OutcomeSent, ElapsedMinutes: 2880,
		})
	}
	return report
}

func TestTriggerRejectsBadSecret(t *testing.T) {
	config.AppConfig.CronAPIKey = "topsecret"
	r := newRouter(&stubDispatchService{report: sentReport(1)})

	req := httptest.NewRequest(http.MethodPost, "/api/cron/pending-bookings", nil)
	req.Header.Set("Authorization", "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["message"] != "Not authenticated" {
		t.Errorf("message = %q, want %q", body["message"], "Not authenticated")
	}
}

func TestTriggerRejectsWrongMethod(t *testing.T) {
	config.AppConfig.CronAPIKey = "topsecret"
	r := newRouter(&stubDispatchService{report: sentReport(1)})

	req := httptest.NewRequest(http.MethodPut, "/api/cron/pending-bookings", nil)
	req.Header.Set("Authorization", "topsecret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["message"] != "Invalid method" {
		t.Errorf("message = %q, want %q", body["message"], "Invalid method")
	}
}

func TestTriggerReturnsSentCount(t *testing.T) {
	config.AppConfig.CronAPIKey = "topsecret"
	r := newRouter(&stubDispatchService{report: sentReport(2)})

	req := httptest.NewRequest(http.MethodPost, "/api/cron/pending-bookings", nil)
	req.Header.Set("Authorization", "topsecret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	var body map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["notificationsSent"] != 2 {
		t.Errorf("notificationsSent = %d, want 2", body["notificationsSent"])
	}
}

func TestTriggerAcceptsQueryParamSecret(t *testing.T) {
	config.AppConfig.CronAPIKey = "topsecret"
	r := newRouter(&stubDispatchService{report: sentReport(0)})

	req := httptest.NewRequest(http.MethodPost, "/api/cron/pending-bookings?apiKey=topsecret", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestTriggerPropagatesFetchFailure(t *testing.T) {
	config.AppConfig.CronAPIKey = "topsecret"
	r := newRouter(&stubDispatchService{err: errors.New("database down")})

	req := httptest.NewRequest(http.MethodPost, "/api/cron/pending-bookings", nil)
	req.Header.Set("Authorization", "topsecret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestLastRunWhenEmpty(t *testing.T) {
	config.AppConfig.CronAPIKey = "topsecret"
	r := newRouter(&stubDispatchService{})

	req := httptest.NewRequest(http.MethodGet, "/api/cron/last-run", nil)
	req.Header.Set("Authorization", "topsecret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestLastRunReturnsStoredReport(t *testing.T) {
	config.AppConfig.CronAPIKey = "topsecret"
	report := sentReport(3)
	r := newRouter(&stubDispatchService{last: &report})

	req := httptest.NewRequest(http.MethodGet, "/api/cron/last-run", nil)
	req.Header.Set("Authorization", "topsecret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got models.DispatchReport
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if got.NotificationsSent() != 3 {
		t.Errorf("stored report sent = %d, want 3", got.NotificationsSent())
	}
}
