package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventNotifyResult      EventType = "notify-result"
	EventNotifyLeaderboard EventType = "notify-leaderboard"
)

// MatchResultMessage is the payload published after a match submission. It
// carries everything a notification needs so the consumer never has to read
// the database.
type MatchResultMessage struct {
	EventID         string   `msgpack:"event_id"`
	MatchDate       string   `msgpack:"match_date"`
	Ordinal         int      `msgpack:"ordinal"`
	PlayerOneName   string   `msgpack:"player_one_name"`
	PlayerTwoName   string   `msgpack:"player_two_name"`
	WinnerName      string   `msgpack:"winner_name"`
	Sets            []string `msgpack:"sets"`
	PlayerOneRating float64  `msgpack:"player_one_rating"`
	PlayerTwoRating float64  `msgpack:"player_two_rating"`
}
