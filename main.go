package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"path/filepath"

	"github.com/flavioribeiro/isdbcc/internal/controllers/captions"
	"github.com/flavioribeiro/isdbcc/internal/entities"
	"github.com/flavioribeiro/isdbcc/internal/web"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	enableICEMux := false
	dumpPath := ""
	flag.BoolVar(&enableICEMux, "enable-ice-mux", false, "Enable ICE Mux on :8081")
	flag.StringVar(&dumpPath, "dump", "", "Print the captions of an MPEG-TS file as JSON lines and exit")
	flag.Parse()

	if dumpPath != "" {
		dump(dumpPath)
		return
	}

	fx.New(
		web.Dependencies(enableICEMux),
		// HTTP Server
		fx.Invoke(func(*http.Server) {}),
	).Run()
}

func dump(path string) {
	var c *captions.CaptionsController
	var l *zap.SugaredLogger

	path, err := filepath.Abs(path)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	app := fx.New(
		web.Dependencies(false),
		fx.NopLogger,
		// the file given on the command line is always readable
		fx.Decorate(func(c *entities.Config) *entities.Config {
			dc := *c
			dc.TSRootDir = filepath.Dir(path)
			return &dc
		}),
		fx.Populate(&c, &l),
	)
	if err := app.Err(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		l.Fatalw("failed to start",
			"error", err,
		)
	}
	defer app.Stop(ctx)

	enc := json.NewEncoder(os.Stdout)
	err = c.Each(ctx, &entities.RequestParams{TSPath: path}, func(cue entities.Cue) error {
		return enc.Encode(cue)
	})
	if err != nil {
		l.Errorw("failed to dump captions",
			"path", path,
			"error", err,
		)
		os.Exit(1)
	}
}
