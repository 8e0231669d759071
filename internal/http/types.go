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

type Server struct {
	Players        player.Directory
	Submissions    submission.Service
	Standings      standings.Service
	HeadToHead     headtohead.Service
	History        history.Service
	Tournaments    tournament.Service
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux

	db     *sql.DB
	pubsub pubsub.PubSubClient
}
