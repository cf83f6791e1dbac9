package web

import (
	"log"

	"github.com/flavioribeiro/isdbcc/internal/controllers"
	"github.com/flavioribeiro/isdbcc/internal/controllers/captions"
	"github.com/flavioribeiro/isdbcc/internal/controllers/engine"
	"github.com/flavioribeiro/isdbcc/internal/controllers/probers"
	"github.com/flavioribeiro/isdbcc/internal/controllers/streamers"
	"github.com/flavioribeiro/isdbcc/internal/controllers/streammiddlewares"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/internal/mapper"
	"github.com/flavioribeiro/isdbcc/internal/web/handlers"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Dependencies(enableICEMux bool) fx.Option {
	var c entities.Config
	err := envconfig.Process("isdbcc", &c)
	if err != nil {
		log.Fatal(err.Error())
	}
	c.EnableICEMux = enableICEMux

	return fx.Options(
		// HTTP Server
		fx.Provide(NewHTTPServer),

		// HTTP router
		fx.Provide(NewServeMux),

		// HTTP handlers
		fx.Provide(handlers.NewSignalingHandler),
		fx.Provide(handlers.NewCaptionsHandler),
		fx.Provide(handlers.NewIndexHandler),

		// ICE mux servers
		fx.Provide(controllers.NewTCPICEServer),
		fx.Provide(controllers.NewUDPICEServer),

		// Controllers
		fx.Provide(controllers.NewWebRTCController),
		fx.Provide(controllers.NewWebRTCSettingsEngine),
		fx.Provide(controllers.NewWebRTCMediaEngine),
		fx.Provide(controllers.NewWebRTCAPI),
		fx.Provide(controllers.NewSRTController),
		fx.Provide(captions.NewCaptionsController),

		// Probers and streamers
		fx.Provide(probers.NewSrtMpegTs),
		fx.Provide(probers.NewFileMpegTs),
		fx.Provide(streamers.NewSRTMpegTSStreamer),
		fx.Provide(streamers.NewFileMpegTSStreamer),

		fx.Provide(engine.NewEngineController),

		// Stream middlewares
		fx.Provide(streammiddlewares.NewStreamInfo),
		fx.Provide(streammiddlewares.NewISDB),
		fx.Provide(streammiddlewares.NewEIA608),

		// Mappers
		fx.Provide(mapper.NewMapper),

		// Logging, Config constructors
		fx.Provide(func() (*zap.SugaredLogger, error) {
			return NewLogger(&c)
		}),
		fx.Provide(func() *entities.Config {
			return &c
		}),
	)
}

func NewLogger(c *entities.Config) (*zap.SugaredLogger, error) {
	newLogger := zap.NewProduction
	if c.Debug {
		newLogger = zap.NewDevelopment
	}
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
