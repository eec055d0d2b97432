package main

import (
	"log"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/kernelstats/softnet-stat/exporter"
	"github.com/kernelstats/softnet-stat/pkg/procfile"
	"github.com/kernelstats/softnet-stat/render"
	"github.com/kernelstats/softnet-stat/softnet"
)

var (
	version = "0.0.1"

	app      = kingpin.New("softnet-stat", "Render the kernel's per-CPU network receive-path counters from /proc/net/softnet_stat.")
	jsonOut  = app.Flag("json", "use json output").Short('j').Bool()
	promOut  = app.Flag("prometheus", "use prometheus output").Short('p').Bool()
	useStdin = app.Flag("stdin", "read from stdin").Short('s').Bool()
	statPath = app.Flag("path", "path of the softnet_stat file").Envar("SOFTNET_STAT_PATH").Default(procfile.SoftnetStatPath).String()
	width    = app.Flag("width", "table column width").Default("15").Int()
	listen   = app.Flag("listen", "serve metrics over http on this address instead of printing once").PlaceHolder("ADDR").String()
)

func main() {
	app.Version(version)
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *jsonOut && *promOut {
		log.Println("F! --json and --prometheus are mutually exclusive")
		os.Exit(1)
	}

	if *listen != "" {
		if err := exporter.Serve(*listen, *statPath); err != nil {
			log.Println("F! http server exited:", err)
			os.Exit(1)
		}
		return
	}

	source := *statPath
	var raw []byte
	var err error
	if *useStdin {
		source = "stdin"
		raw, err = procfile.ReadAll(os.Stdin)
	} else {
		raw, err = procfile.Read(*statPath)
	}
	if err != nil {
		log.Println("F! failed to read softnet stats:", err)
		os.Exit(1)
	}

	stats, err := softnet.Parse(raw)
	if err != nil {
		log.Println("F! failed to parse:", source, "error:", err)
		os.Exit(1)
	}

	switch {
	case *jsonOut:
		if err := render.JSON(os.Stdout, stats); err != nil {
			log.Println("F! failed to render json:", err)
			os.Exit(1)
		}
	case *promOut:
		render.Prometheus(os.Stdout, stats)
	default:
		render.Table(os.Stdout, stats, *width)
	}
}
