package http

import (
	"database/sql"
	"net/http"

	"github.com/jsvane/pingpong/internal/config"
	"github.com/jsvane/pingpong/internal/headtohead"
	"github.com/jsvane/pingpong/internal/history"
	"github.com/jsvane/pingpong/internal/metrics"
	"github.com/jsvane/pingpong/internal/notifier"
	"github.com/jsvane/pingpong/internal/player"
	"github.com/jsvane/pingpong/internal/pubsub"
	"github.com/jsvane/pingpong/internal/standings"
	"github.com/jsvane/pingpong/internal/submission"
	"github.com/jsvane/pingpong/internal/tournament"
)

func NewServer(
	players player.Directory,
	submissions submission.Service,
	standingsSvc standings.Service,
	headToHead headtohead.Service,
	historySvc history.Service,
	tournaments tournament.Service,
	notifierSvc notifier.Notifier,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	db *sql.DB,
	pubsubClient pubsub.PubSubClient,
) *Server {
	server := &Server{
		Players:        players,
		Submissions:    submissions,
		Standings:      standingsSvc,
		HeadToHead:     headToHead,
		History:        historySvc,
		Tournaments:    tournaments,
		Notifier:       notifierSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		db:             db,
		pubsub:         pubsubClient,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(s.ClearStoreHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(s.SubmitMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("GET /history", Chain(s.HistoryHandler(), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.ResolvePlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}/head-to-head", Chain(s.HeadToHeadSummaryHandler(), paramsMiddleware))
	s.Router.Handle("GET /head-to-head", Chain(s.HeadToHeadDetailsHandler(), paramsMiddleware))

	s.Router.Handle("POST /tournaments", Chain(s.CreateTournamentHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments", Chain(s.ListTournamentsHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/open-fixtures", Chain(s.OpenFixtureHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/{id}", Chain(s.GetTournamentHandler(), paramsMiddleware))
	s.Router.Handle("POST /tournaments/{id}/join", Chain(s.JoinTournamentHandler(), paramsMiddleware))
	s.Router.Handle("POST /tournaments/{id}/leave", Chain(s.LeaveTournamentHandler(), paramsMiddleware))
	s.Router.Handle("POST /tournaments/{id}/start", Chain(s.StartTournamentHandler(), paramsMiddleware))
	s.Router.Handle("GET /tournaments/{id}/fixtures", Chain(s.ListFixturesHandler(), paramsMiddleware))

	s.Router.Handle("POST /notify-result", Chain(s.NotifyResultHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
