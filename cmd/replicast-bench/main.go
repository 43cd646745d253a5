// Command replicast-bench loads a replicast channel with concurrent writers
// and lagging readers, then checks every reader saw every message in order.
//
//	replicast-bench [config.yaml]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	. "github.com/logrusorgru/aurora"
	"go.uber.org/zap"
	"m7s.live/replicast/config"
	"m7s.live/replicast/log"
	"m7s.live/replicast/metrics"
	"m7s.live/replicast/util"
)

func main() {
	if err := bench(); err != nil {
		os.Exit(1)
	}
}

func bench() error {
	path := "replicast-bench.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	var conf Config
	if err := config.Load(path, &conf); err != nil {
		log.Errorf("load %s: %v", path, err)
		return err
	}
	if err := log.SetLevel(conf.Log.Level); err != nil {
		log.Warn("bad log level ", conf.Log.Level, ": ", err)
	}
	if conf.Log.File != "" {
		defer log.AddFile(conf.Log.File, conf.Log.MaxAge, conf.Log.MaxSize).Close()
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.Log.Fatal != "" {
		f, err := util.RedirectStderr(conf.Log.Fatal)
		if err != nil {
			log.Warn("redirect stderr: ", err)
		} else {
			defer f.Close()
		}
	}

	collector := metrics.NewCollector()
	conf.HTTP.Handle("/metrics", collector.Handler())
	conf.HTTP.Handle("/stats", util.GetJsonHandler(collector.Snapshot))
	httpCtx, stopHTTP := context.WithCancel(ctx)
	defer stopHTTP()
	go func() {
		if err := conf.HTTP.Listen(httpCtx); err != nil {
			log.Logger().Error("http", zap.Error(err))
		}
	}()

	res, err := run(ctx, &conf, collector)
	if res != nil {
		for _, line := range res.lines(collectHost()) {
			log.Info(line)
		}
	}
	if err != nil {
		log.Error(Red("bench failed: "), err)
		return err
	}
	log.Info(Green("all readers verified"))
	return nil
}
