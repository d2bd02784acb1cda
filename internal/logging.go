package internal

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogging configures the global logger. Logs go to stderr so board
// output on stdout stays clean. BUSBOARD_LOG_FORMAT=JSON keeps raw JSON
// lines; debug or BUSBOARD_DEBUG=YES lowers the level to debug.
func InitLogging(debug bool) {
	if os.Getenv("BUSBOARD_LOG_FORMAT") == "JSON" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if debug || os.Getenv("BUSBOARD_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}
