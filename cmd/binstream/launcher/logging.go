package launcher

import (
	"io"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// newLogger builds the process logger from cfg. Entries at error level and above
// are also sent to Sentry when a DSN is configured.
func newLogger(cfg LoggingConfig, sentry SentryConfig, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.Out = out

	switch cfg.Format {
	case "json":
		log.Formatter = &logrus.JSONFormatter{}
	default:
		log.Formatter = &logrus.TextFormatter{
			ForceColors:   cfg.Color,
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		}
	}
	// 0=fatal .. 5=trace maps onto logrus' FatalLevel .. TraceLevel.
	log.SetLevel(logrus.Level(cfg.Verbosity + 1))

	if sentry.DSN != "" {
		hook, err := logrus_sentry.NewSentryHook(sentry.DSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, err
		}
		log.AddHook(hook)
	}
	return log, nil
}
