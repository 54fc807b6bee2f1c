package launcher

import (
	"crypto/tls"
	"net/http"

	"github.com/certifi/gocertifi"
	"github.com/evalphobia/logrus_sentry"
	raven "github.com/getsentry/raven-go"
	"github.com/sirupsen/logrus"
)

// verbosityLevels maps the node's 0..5 verbosity scale (fatal..trace) onto
// logrus levels, the same numbering the log.verbosity flag documents.
var verbosityLevels = []logrus.Level{
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

// SetupLogging builds the launcher's root logger from a LoggingConfig: text
// or JSON formatting, the configured verbosity, and (when SentryDSN is set)
// a Sentry hook reporting error-and-above entries.
func SetupLogging(cfg LoggingConfig) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(resolveLevel(cfg.Verbosity))

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: cfg.Color, FullTimestamp: true})
	}

	if cfg.SentryDSN == "" {
		return log
	}

	hook, err := newSentryHook(cfg.SentryDSN)
	if err != nil {
		log.WithError(err).Warn("sentry hook disabled: failed to initialize")
		return log
	}
	log.AddHook(hook)
	return log
}

func resolveLevel(verbosity int) logrus.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(verbosityLevels) {
		verbosity = len(verbosityLevels) - 1
	}
	return verbosityLevels[verbosity]
}

// newSentryHook wires raven's HTTP transport to the Mozilla CA bundle
// gocertifi ships (the host OS's bundle isn't guaranteed present in minimal
// container images the node commonly runs in), then builds a logrus hook
// that forwards error/fatal/panic entries to Sentry.
func newSentryHook(dsn string) (*logrus_sentry.SentryHook, error) {
	rootCAs, err := gocertifi.CACerts()
	if err != nil {
		return nil, err
	}
	raven.DefaultClient.Transport = &raven.HTTPTransport{
		Client: &http.Client{
			Transport: &http.Transport{TLSClientConfig: &tls.Config{RootCAs: rootCAs}},
		},
	}
	if err := raven.SetDSN(dsn); err != nil {
		return nil, err
	}

	return logrus_sentry.NewSentryHook(dsn, []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	})
}
