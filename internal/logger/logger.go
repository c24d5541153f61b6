// Package logger builds the service-wide zerolog logger.
package logger

import (
	"os"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

var configureOnce sync.Once

// New returns a JSON logger tagged with the service name. Error events
// logged with .Stack() carry a pkg/errors stack trace, attached on the fly
// when the error doesn't already have one.
func New(serviceName string) zerolog.Logger {
	configureOnce.Do(func() {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			if _, ok := err.(stackTracer); !ok {
				err = pkgerrors.WithStack(err)
			}
			return zpkgerrors.MarshalStack(err)
		}
		zerolog.ErrorMarshalFunc = func(err error) interface{} {
			if _, ok := err.(stackTracer); ok {
				return err
			}
			return pkgerrors.WithStack(err)
		}
	})

	return zerolog.New(os.Stdout).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
