package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vantagepointcrm/crm-api/internal/core/ports"
	"github.com/vantagepointcrm/crm-api/internal/infrastructure/db/memory"
	"github.com/vantagepointcrm/crm-api/internal/pkg/config"
)

type recordingDispatcher struct {
	jobs []ports.SendDocsJob
}

func (d *recordingDispatcher) Enqueue(job ports.SendDocsJob) {
	d.jobs = append(d.jobs, job)
}

// The prometheus middleware registers collectors globally, so the router is
// built once and the scenario runs against shared seeded state.
func TestRouter_EndToEnd(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	e := NewRouter(Deps{
		Config: &config.Config{
			JWTSecret: "test-secret",
			JWTTTL:    time.Hour,
		},
		Logger:     zerolog.Nop(),
		Users:      memory.NewUserRepository(memory.SeedUsers()),
		Leads:      memory.NewLeadRepository(memory.SeedLeads()),
		Dispatcher: dispatcher,
	})

	doJSON := func(method, path, token, body string) *httptest.ResponseRecorder {
		var rdr *strings.Reader
		if body == "" {
			rdr = strings.NewReader("")
		} else {
			rdr = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, rdr)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	login := func(username, password string) string {
		rec := doJSON(http.MethodPost, "/api/v1/auth/login", "",
			`{"username":"`+username+`","password":"`+password+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
		}
		var resp struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("login response: %v", err)
		}
		return resp.AccessToken
	}

	// Health endpoint requires no auth.
	rec := doJSON(http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	var health map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &health)
	if health["status"] != "healthy" {
		t.Fatalf("unexpected health payload: %v", health)
	}

	// Bad credentials and unknown users fail identically.
	badPass := doJSON(http.MethodPost, "/api/v1/auth/login", "", `{"username":"admin","password":"wrong"}`)
	unknown := doJSON(http.MethodPost, "/api/v1/auth/login", "", `{"username":"nobody","password":"wrong"}`)
	if badPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401s, got %d and %d", badPass.Code, unknown.Code)
	}
	if badPass.Body.String() != unknown.Body.String() {
		t.Fatalf("failure responses must be indistinguishable: %s vs %s",
			badPass.Body.String(), unknown.Body.String())
	}

	adminToken := login("admin", "admin123")
	agentToken := login("agent1", "admin123")

	// Listing without a token is rejected.
	rec = doJSON(http.MethodGet, "/api/v1/leads", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// Admin sees all 8 seeded leads, the agent only their 5.
	type listResp struct {
		Total int `json:"total"`
		Leads []struct {
			ID             int64  `json:"id"`
			AssignedUserID *int64 `json:"assigned_user_id"`
		} `json:"leads"`
	}
	var adminList listResp
	rec = doJSON(http.MethodGet, "/api/v1/leads", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list: expected 200, got %d", rec.Code)
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &adminList)
	if adminList.Total != 8 {
		t.Fatalf("admin should see 8 leads, got %d", adminList.Total)
	}

	var agentList listResp
	rec = doJSON(http.MethodGet, "/api/v1/leads", agentToken, "")
	_ = json.Unmarshal(rec.Body.Bytes(), &agentList)
	if agentList.Total != 5 {
		t.Fatalf("agent should see 5 leads, got %d", agentList.Total)
	}
	for _, l := range agentList.Leads {
		if l.AssignedUserID == nil || *l.AssignedUserID != 3 {
			t.Fatalf("agent list leaked lead %d", l.ID)
		}
	}

	// /auth/me reflects the token subject.
	rec = doJSON(http.MethodGet, "/api/v1/auth/me", agentToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	var me map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &me)
	if me["username"] != "agent1" || me["role"] != "agent" {
		t.Fatalf("unexpected me payload: %v", me)
	}

	// Creating a lead without owner_name names the field in the detail.
	rec = doJSON(http.MethodPost, "/api/v1/leads", agentToken,
		`{"practice_name":"NEW PRACTICE","practice_phone":"(555) 123-4567"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "owner_name") {
		t.Fatalf("detail should name owner_name: %s", rec.Body.String())
	}

	// A valid create applies defaults and self-assigns for agents.
	rec = doJSON(http.MethodPost, "/api/v1/leads", agentToken,
		`{"practice_name":"NEW PRACTICE","owner_name":"Dr. New","practice_phone":"(555) 123-4567"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		AssignedTo string `json:"assigned_to"`
		Lead       struct {
			ID       int64  `json:"id"`
			Score    int    `json:"score"`
			Priority string `json:"priority"`
			Status   string `json:"status"`
		} `json:"lead"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if created.Lead.ID != 9 {
		t.Fatalf("expected next id 9, got %d", created.Lead.ID)
	}
	if created.Lead.Score != 75 || created.Lead.Priority != "medium" || created.Lead.Status != "new" {
		t.Fatalf("defaults not applied: %+v", created.Lead)
	}
	if created.AssignedTo != "agent1" {
		t.Fatalf("agent-created lead should self-assign, got %s", created.AssignedTo)
	}

	// Agents may not bulk assign; admins may.
	rec = doJSON(http.MethodPost, "/api/v1/leads/bulk-assign", agentToken, `{"agent_id":3,"max_count":2}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("agent bulk assign: expected 403, got %d", rec.Code)
	}
	rec = doJSON(http.MethodPost, "/api/v1/leads/bulk-assign", adminToken, `{"agent_id":3,"max_count":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin bulk assign: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var bulk struct {
		AssignedCount int `json:"assigned_count"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &bulk)
	if bulk.AssignedCount != 2 {
		t.Fatalf("expected 2 assigned, got %d", bulk.AssignedCount)
	}

	// Send-docs queues a job for a visible lead.
	rec = doJSON(http.MethodPost, "/api/v1/leads/1/send-docs", agentToken, "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("send docs: expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(dispatcher.jobs) != 1 || dispatcher.jobs[0].LeadID != 1 {
		t.Fatalf("job not enqueued: %+v", dispatcher.jobs)
	}

	// Unknown routes render the standard envelope.
	rec = doJSON(http.MethodGet, "/api/v1/nope", adminToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "detail") {
		t.Fatalf("expected detail envelope: %s", rec.Body.String())
	}

	// The stats endpoint returns the agent extras.
	rec = doJSON(http.MethodGet, "/api/v1/stats", agentToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var stats struct {
		TotalLeads      int            `json:"total_leads"`
		ConversionRate  float64        `json:"conversion_rate"`
		TeamPerformance map[string]int `json:"team_performance"`
		YourRank        int            `json:"your_rank"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &stats)
	if stats.TotalLeads == 0 {
		t.Fatalf("agent should have visible leads in stats")
	}
	if stats.TeamPerformance == nil || stats.YourRank == 0 {
		t.Fatalf("agent stats must include team performance and rank: %+v", stats)
	}
}
