package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/strengthforge/progression/apperr"
	"github.com/ellavondegurechaff/strengthforge/progression/leveling"
	"github.com/ellavondegurechaff/strengthforge/progression/quests"
)

type sweepResponse struct {
	Expired    int64 `json:"expired"`
	Failed     int   `json:"failed"`
	DurationMS int64 `json:"duration_ms"`
	Skipped    bool  `json:"skipped"`
}

type eventRequest struct {
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`
	Reference string `json:"reference"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Storage string `json:"storage"`
}

func (s *Server) health(c *fiber.Ctx) error {
	res := healthResponse{Status: "healthy", Version: s.Version, Storage: "healthy"}
	if s.Ping != nil {
		if err := s.Ping(c.UserContext()); err != nil {
			res.Status, res.Storage = "unhealthy", err.Error()
			return c.Status(http.StatusServiceUnavailable).JSON(Response{
				Success:   false,
				Data:      res,
				Error:     &Error{Code: "STORAGE_UNAVAILABLE", Message: "Storage ping failed"},
				Timestamp: time.Now().UTC(),
			})
		}
	}
	return sendSuccess(c, res, "")
}

func (s *Server) expireQuests(c *fiber.Ctx) error {
	res, err := s.Sweeper.Sweep(c.UserContext())
	body := sweepResponse{
		Expired:    res.Expired,
		Failed:     res.Failed,
		DurationMS: res.Duration.Milliseconds(),
		Skipped:    res.Skipped,
	}
	if err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(Response{
			Success:   false,
			Data:      body,
			Error:     &Error{Code: "STORAGE_UNAVAILABLE", Message: "Quest expiration sweep failed"},
			Timestamp: time.Now().UTC(),
		})
	}
	return sendSuccess(c, body, "Quest expiration sweep finished")
}

func (s *Server) recordEvent(c *fiber.Ctx) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return sendAppError(c, apperr.Validation("body", "invalid JSON body"))
	}
	kind, err := leveling.ParseEventKind(req.Kind)
	if err != nil {
		return sendAppError(c, apperr.Validation("kind", "%s", err.Error()))
	}
	award, err := s.Leveling.AwardEvent(c.UserContext(), leveling.Event{
		UserID:    strings.TrimSpace(req.UserID),
		Kind:      kind,
		Reference: strings.TrimSpace(req.Reference),
	})
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, award, "")
}

func (s *Server) getProgress(c *fiber.Ctx) error {
	p, err := s.Leveling.GetProgress(c.UserContext(), userID(c))
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, p, "")
}

func (s *Server) getHistory(c *fiber.Ctx) error {
	entries, err := s.Leveling.History(c.UserContext(), userID(c), c.QueryInt("limit", 0))
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, entries, "")
}

func (s *Server) getQuests(c *fiber.Ctx) error {
	daily, err := s.Quests.GetQuests(c.UserContext(), quests.Request{
		UserID:          userID(c),
		IncludeExpired:  c.QueryBool("include_expired", false),
		ForceRegenerate: c.QueryBool("force_regenerate", false),
	})
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, daily, "")
}

func (s *Server) startQuest(c *fiber.Ctx) error {
	q, err := s.Quests.StartQuest(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, q, "Quest started")
}

func (s *Server) completeQuest(c *fiber.Ctx) error {
	var body quests.Completion
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return sendAppError(c, apperr.Validation("body", "invalid JSON body"))
		}
	}
	body.QuestID = c.Params("id")

	res, err := s.Quests.CompleteQuest(c.UserContext(), userID(c), body)
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, res, "Quest completed")
}

func (s *Server) getMaturity(c *fiber.Ctx) error {
	var ids []string
	for _, id := range strings.Split(c.Query("strength_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	records, err := s.Maturity.Get(c.UserContext(), userID(c), ids)
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, records, "")
}

func (s *Server) searchBadges(c *fiber.Ctx) error {
	return sendSuccess(c, s.Badges.Catalog().Search(c.Query("q")), "")
}

func (s *Server) unlockedBadges(c *fiber.Ctx) error {
	unlocked, err := s.Badges.ListUnlocked(c.UserContext(), userID(c))
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, unlocked, "")
}

func (s *Server) getReadiness(c *fiber.Ctx) error {
	score, err := s.Readiness.Individual(c.UserContext(), userID(c))
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, score, "")
}

func (s *Server) getTeamReadiness(c *fiber.Ctx) error {
	report, err := s.Readiness.Team(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, report, "")
}

func (s *Server) generateTeamReport(c *fiber.Ctx) error {
	res, err := s.Readiness.GenerateTeamReport(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return sendAppError(c, err)
	}
	return sendSuccess(c, res, "Team report archived")
}
