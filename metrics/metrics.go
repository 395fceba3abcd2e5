// Package metrics is a helper package that wraps some common statsd methods.
// It hides the datadog dependency so that a future migration to another
// statsd client only needs to edit this single file. The client defaults to a
// no-op; nothing is emitted unless Init is called with an agent address.
package metrics

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// EmitPassStat emits the time spent in one driver pass stage, tagged with the
// stage name (a system name or a whole-pass label).
func EmitPassStat(start time.Time, stage string) {
	duration := time.Since(start)
	if err := Client().Timing("pass", duration, []string{stage}, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit pass stat: %v", err)
	}
}

// EmitEntityCount emits the current number of live entities in the world.
func EmitEntityCount(count int) {
	if err := Client().Gauge("entities", float64(count), nil, 1); err != nil {
		log.Logger.Warn().Msgf("failed to emit entity count: %v", err)
	}
}

// Init replaces the no-op client with a real statsd client pointed at the
// given agent address.
func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("ecpps"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrap(err, "failed to create statsd client")
	}
	client = newClient
	return nil
}
