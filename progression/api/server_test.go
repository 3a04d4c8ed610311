package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/strengthforge/progression/badges"
	"github.com/ellavondegurechaff/strengthforge/progression/database/memstore"
	"github.com/ellavondegurechaff/strengthforge/progression/database/models"
	"github.com/ellavondegurechaff/strengthforge/progression/leveling"
	"github.com/ellavondegurechaff/strengthforge/progression/maturity"
	"github.com/ellavondegurechaff/strengthforge/progression/quests"
	"github.com/ellavondegurechaff/strengthforge/progression/readiness"
	"github.com/ellavondegurechaff/strengthforge/progression/reports"
	"github.com/ellavondegurechaff/strengthforge/progression/strengths"
)

const (
	testJWTSecret  = "jwt-test-secret"
	testCronSecret = "cron-test-secret"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *Error          `json:"error"`
}

func newTestApp(t *testing.T, cronSecret string) (*fiber.App, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	store.SeedStrengths(
		models.Strength{ID: "focus", Name: "Focus"},
		models.Strength{ID: "empathy", Name: "Empathy"},
	)
	store.SetUserStrengths("u1", "focus", "empathy")

	calc, err := leveling.NewCalculator(leveling.NewDefaultConfig())
	require.NoError(t, err)
	catalog, err := badges.NewCatalog(badges.NewDefaultConfig())
	require.NoError(t, err)
	tracker, err := maturity.NewTracker(maturity.NewDefaultConfig())
	require.NoError(t, err)
	scorer, err := readiness.NewScorer(nil)
	require.NoError(t, err)

	qcfg := quests.NewDefaultConfig()
	qcfg.DailyQuestCount = 2
	qcfg.Templates = []quests.Template{{Key: "spotlight", Type: models.QuestStandard, Title: "Use %s", XPReward: 40}}

	source := strengths.NewRepositorySource(store.Repositories().Strengths)
	evaluator := badges.NewEvaluator(catalog, calc, store, nil)
	lv := leveling.NewService(calc, store, evaluator, nil, time.UTC)
	mt := maturity.NewService(tracker, store, nil)
	qs, err := quests.NewService(qcfg, store, source, lv, mt, time.UTC)
	require.NoError(t, err)

	app := New(Config{JWTSecret: testJWTSecret, CronSecret: cronSecret}, &Server{
		Leveling:  lv,
		Quests:    qs,
		Sweeper:   quests.NewSweeper(store.Repositories().Quests, nil),
		Maturity:  mt,
		Badges:    evaluator,
		Readiness: readiness.NewService(scorer, store, source, reports.NewMemoryArchive()),
		Version:   "test",
	})
	return app, store
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := IssueToken(testJWTSecret, userID, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, app *fiber.App, method, path, auth, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestServer_Health(t *testing.T) {
	app, _ := newTestApp(t, "")
	status, env := do(t, app, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)
}

func TestServer_Identity(t *testing.T) {
	app, _ := newTestApp(t, "")

	tests := []struct {
		name       string
		auth       string
		wantStatus int
		wantCode   string
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "garbage token", auth: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "wrong scheme", auth: "Basic dTE6cGFzcw==", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "valid token without stats", auth: bearer(t, "u1"), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, app, http.MethodGet, "/api/progress", tt.auth, "")
			require.Equal(t, tt.wantStatus, status)
			require.False(t, env.Success)
			require.NotNil(t, env.Error)
			require.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestServer_ForeignSignatureRejected(t *testing.T) {
	app, _ := newTestApp(t, "")
	token, err := IssueToken("some-other-secret", "u1", time.Hour)
	require.NoError(t, err)

	status, _ := do(t, app, http.MethodGet, "/api/progress", "Bearer "+token, "")
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_InternalEvents(t *testing.T) {
	app, _ := newTestApp(t, testCronSecret)
	body := `{"user_id":"u1","kind":"assessment_completed","reference":"phase-1"}`

	status, _ := do(t, app, http.MethodPost, "/internal/events", "", body)
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = do(t, app, http.MethodPost, "/internal/events", "Bearer wrong", body)
	require.Equal(t, http.StatusUnauthorized, status)

	status, env := do(t, app, http.MethodPost, "/internal/events", "Bearer "+testCronSecret, body)
	require.Equal(t, http.StatusOK, status)
	var award leveling.Award
	require.NoError(t, json.Unmarshal(env.Data, &award))
	require.Equal(t, int64(50), award.XPAwarded)
	require.Equal(t, []string{"self_aware"}, award.UnlockedBadges)
	require.Equal(t, int64(75), award.XPTotal)
	require.False(t, award.Duplicate)

	// Redelivery is a no-op.
	status, env = do(t, app, http.MethodPost, "/internal/events", "Bearer "+testCronSecret, body)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &award))
	require.True(t, award.Duplicate)
	require.Equal(t, int64(75), award.XPTotal)

	status, env = do(t, app, http.MethodGet, "/api/progress", bearer(t, "u1"), "")
	require.Equal(t, http.StatusOK, status)
	var progress leveling.Progress
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	require.Equal(t, award.XPTotal, progress.XPTotal)
	require.Equal(t, 1, progress.CurrentLevel)

	status, env = do(t, app, http.MethodPost, "/internal/events", "Bearer "+testCronSecret, `{"user_id":"u1","kind":"nonsense"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestServer_QuestFlow(t *testing.T) {
	app, _ := newTestApp(t, "")
	auth := bearer(t, "u1")

	status, env := do(t, app, http.MethodGet, "/api/quests", auth, "")
	require.Equal(t, http.StatusOK, status)
	var daily quests.DailyQuests
	require.NoError(t, json.Unmarshal(env.Data, &daily))
	require.Len(t, daily.Quests, 2)
	id := daily.Quests[0].ID

	status, _ = do(t, app, http.MethodPost, "/api/quests/"+id+"/complete", auth, "")
	require.Equal(t, http.StatusConflict, status, "completing a PENDING quest")

	status, _ = do(t, app, http.MethodPost, "/api/quests/"+id+"/start", bearer(t, "intruder"), "")
	require.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, app, http.MethodPost, "/api/quests/"+id+"/start", auth, "")
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, app, http.MethodPost, "/api/quests/"+id+"/complete", auth, `{"reflection_note":"went well"}`)
	require.Equal(t, http.StatusOK, status)
	var res quests.CompletionResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.True(t, res.Success)
	require.Equal(t, int64(40), res.XPAwarded)
	require.Equal(t, models.QuestCompleted, res.Quest.Status)

	status, env = do(t, app, http.MethodPost, "/api/quests/"+id+"/complete", auth, "")
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "CONFLICT", env.Error.Code)

	status, env = do(t, app, http.MethodGet, "/api/maturity?strength_ids="+res.Quest.StrengthID, auth, "")
	require.Equal(t, http.StatusOK, status)
	var records []maturity.Progress
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	require.Equal(t, int64(40), records[0].XPCurrent)

	status, env = do(t, app, http.MethodGet, "/api/progress/history?limit=5", auth, "")
	require.Equal(t, http.StatusOK, status)
	var history []leveling.HistoryEntry
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	require.Equal(t, models.SourceQuest, history[0].Source)
}

func TestServer_QuestValidation(t *testing.T) {
	app, _ := newTestApp(t, "")
	auth := bearer(t, "u1")

	status, env := do(t, app, http.MethodPost, "/api/quests/not-a-uuid/start", auth, "")
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	status, _ = do(t, app, http.MethodPost, "/api/quests/not-a-uuid/complete", auth, `{"reflection_note":`)
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/api/maturity?strength_ids=unknown", auth, "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestServer_CronSweep(t *testing.T) {
	open, _ := newTestApp(t, "")
	status, env := do(t, open, http.MethodPost, "/cron/expire-quests", "", "")
	require.Equal(t, http.StatusOK, status)
	var res sweepResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Zero(t, res.Expired)
	require.Zero(t, res.Failed)

	guarded, _ := newTestApp(t, testCronSecret)
	status, _ = do(t, guarded, http.MethodPost, "/cron/expire-quests", "", "")
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = do(t, guarded, http.MethodPost, "/cron/expire-quests", "Bearer "+testCronSecret, "")
	require.Equal(t, http.StatusOK, status)
}

func TestServer_Badges(t *testing.T) {
	app, _ := newTestApp(t, "")
	auth := bearer(t, "u1")

	status, env := do(t, app, http.MethodGet, "/api/badges?q=legend", auth, "")
	require.Equal(t, http.StatusOK, status)
	var found []badges.Badge
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.NotEmpty(t, found)
	require.Equal(t, "legend", found[0].Key)

	status, env = do(t, app, http.MethodGet, "/api/badges/unlocked", auth, "")
	require.Equal(t, http.StatusOK, status)
	var unlocked []badges.Unlocked
	require.NoError(t, json.Unmarshal(env.Data, &unlocked))
	require.Empty(t, unlocked)
}

func TestServer_TeamReportGate(t *testing.T) {
	app, store := newTestApp(t, "")
	store.AddTeamMember("t1", "u1", true)
	store.AddTeamMember("t1", "u2", true)

	status, env := do(t, app, http.MethodGet, "/api/teams/t1/readiness", bearer(t, "u1"), "")
	require.Equal(t, http.StatusOK, status)
	var report readiness.TeamReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	require.False(t, report.Team.Ready)

	status, _ = do(t, app, http.MethodPost, "/api/teams/t1/report", bearer(t, "u1"), "")
	require.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, app, http.MethodGet, "/api/teams/t1/readiness", bearer(t, "outsider"), "")
	require.Equal(t, http.StatusForbidden, status)
}

func TestServer_UnknownRoute(t *testing.T) {
	app, _ := newTestApp(t, "")
	status, env := do(t, app, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", env.Error.Code)
}
