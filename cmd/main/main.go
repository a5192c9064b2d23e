package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"

	"github.com/lgxbslgx/skara/internal/app"
)

var (
	Version, Branch, Commit, BuildDate string
)

var (
	configPath = kingpin.Flag("config", "path to config file").Short('c').String()
	serve      = kingpin.Flag("serve", "run the gate service instead of checking commits").Bool()
	revRange   = kingpin.Arg("range", "commit range or revision to check").Default("HEAD").String()
)

func main() {
	kingpin.Parse()

	var err error
	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()

	err = run(ctx)
	if err != nil {
		logze.DefaultPtr().Error("cannot run", "error", err)
	}
}

func run(ctx contem.Context) error {
	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		return erro.Wrap(err, "load config")
	}
	logze.Init(logze.C().WithConsole().WithLevel(logze.LevelDebug))

	skara, err := app.New(ctx, cfg)
	if err != nil {
		return erro.Wrap(err, "new service")
	}

	if *serve {
		if err := skara.StartServer(ctx); err != nil {
			return erro.Wrap(err, "start server")
		}
		<-ctx.Done()
		return nil
	}

	if err := skara.RunCheck(ctx, *revRange); err != nil {
		return erro.Wrap(err, "run check")
	}

	return nil
}
