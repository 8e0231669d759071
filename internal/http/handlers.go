package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jsvane/pingpong/internal/pubsub"
	"github.com/jsvane/pingpong/internal/submission"
	"github.com/jsvane/pingpong/internal/tournament"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *submission.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, vErr.Message)
		return
	}
	var fErr *tournament.FixtureStateError
	if errors.As(err, &fErr) {
		writeError(w, http.StatusConflict, fErr.Error())
		return
	}
	if strings.Contains(err.Error(), "not found") {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ClearStoreHandler wipes all ledger data. Development only.
func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		for _, table := range []string{
			"tournament_fixtures", "tournament_participants", "tournaments",
			"player_ratings", "match_events", "players",
		} {
			if _, err := s.db.ExecContext(r.Context(), "DELETE FROM "+table); err != nil {
				log.Error("Failed to clear table", "table", table, "error", err)
				writeError(w, http.StatusInternalServerError, "failed to clear store")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) SubmitMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submission.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		result, err := s.Submissions.Submit(r.Context(), req)
		if err != nil {
			log.Error("Submission failed", "error", err)
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Standings.Table(r.Context())
		if err != nil {
			log.Error("Failed to compute standings", "error", err)
			writeServiceError(w, err)
			return
		}

		// notify=true additionally posts the leaderboard to Slack.
		if r.URL.Query().Get("notify") == "true" {
			if err := s.Notifier.SendLeaderboard(rows, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to send leaderboard", "error", err)
			}
		}

		writeJSON(w, http.StatusOK, rows)
	}
}

func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
		playerID := r.URL.Query().Get("playerId")

		result, err := s.History.List(r.Context(), page, pageSize, playerID)
		if err != nil {
			log.Error("Failed to list history", "error", err)
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Players.List(r.Context())
		if err != nil {
			log.Error("Failed to list players", "error", err)
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) ResolvePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DisplayName string `json:"displayName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		p, err := s.Players.ResolveOrCreate(r.Context(), req.DisplayName)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) HeadToHeadSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("id")
		rows, err := s.HeadToHead.Summary(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to compute head-to-head summary", "error", err, "playerID", playerID)
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func (s *Server) HeadToHeadDetailsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		playerA, playerB := q.Get("playerA"), q.Get("playerB")
		if playerA == "" || playerB == "" {
			writeError(w, http.StatusBadRequest, "playerA and playerB are required")
			return
		}

		details, err := s.HeadToHead.Details(r.Context(), playerA, playerB, q.Get("from"), q.Get("to"))
		if err != nil {
			log.Error("Failed to compute head-to-head details", "error", err)
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, details)
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name         string `json:"name"`
			Description  string `json:"description"`
			DurationDays int    `json:"durationDays"`
			PointsPerWin int    `json:"pointsPerWin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		tn, err := s.Tournaments.Create(r.Context(), req.Name, req.Description, req.DurationDays, req.PointsPerWin)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, tn)
	}
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := s.Tournaments.List(r.Context())
		if err != nil {
			log.Error("Failed to list tournaments", "error", err)
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tournaments)
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := s.Tournaments.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, details)
	}
}

func (s *Server) decodePlayerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		PlayerID string `json:"playerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "playerId is required")
		return "", false
	}
	return req.PlayerID, true
}

func (s *Server) JoinTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := s.decodePlayerID(w, r)
		if !ok {
			return
		}
		if err := s.Tournaments.Join(r.Context(), r.PathValue("id"), playerID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) LeaveTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := s.decodePlayerID(w, r)
		if !ok {
			return
		}
		if err := s.Tournaments.Leave(r.Context(), r.PathValue("id"), playerID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) StartTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tn, err := s.Tournaments.Start(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, tn)
	}
}

func (s *Server) ListFixturesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fixtures, err := s.Tournaments.Fixtures(r.Context(), r.PathValue("id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, fixtures)
	}
}

func (s *Server) OpenFixtureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		playerA, playerB := q.Get("playerA"), q.Get("playerB")
		if playerA == "" || playerB == "" {
			writeError(w, http.StatusBadRequest, "playerA and playerB are required")
			return
		}

		fixture, found, err := s.Tournaments.OpenFixture(r.Context(), playerA, playerB)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "no open fixture for this pair")
			return
		}
		writeJSON(w, http.StatusOK, fixture)
	}
}

// NotifyResultHandler receives Pub/Sub push deliveries for submitted match
// results and forwards them to the notifier.
func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The push envelope wraps a base64-encoded MessagePack payload.
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			writeError(w, http.StatusBadRequest, "invalid base64 data")
			return
		}

		result := pubsub.MatchResultMessage{}
		if err := s.pubsub.ProcessMessage(rawData, &result); err != nil {
			writeError(w, http.StatusBadRequest, "invalid message payload")
			return
		}

		if err := s.Notifier.SendResultNotification(&result, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify result", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to notify result")
			return
		}
		w.Write([]byte("OK"))
	}
}
