package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vitalvas/gocuckoo/xcmd"
	"github.com/vitalvas/gocuckoo/xlogger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usageText = `usage: cuckoo [-config file] <command> [args]

commands:
  build [file]     build a new snapshot from newline separated keys (stdin when file is absent or "-")
  add <key>...     add keys to the snapshot, creating it when missing
  query <key>...   report whether each key may be present
  delete <key>...  remove keys from the snapshot
  stat             print filter counters
  hash <key>...    print the configured 64-bit hash of each key

configuration is read from the file and from CUCKOO_* environment variables
`

func main() {
	var configFilename string
	flag.StringVar(&configFilename, "config", "", "configuration input file (yaml or json)")

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usageText)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	conf, err := loadConfig(configFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %s\n", err)
		os.Exit(1)
	}

	logger := xlogger.NewWithSink(conf.Logger, zapcore.Lock(os.Stderr))

	cli := &app{
		conf:   conf,
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
	}

	command := flag.Arg(0)

	err = xcmd.Run(context.Background(), func(ctx context.Context) error {
		return cli.run(ctx, command, flag.Args()[1:])
	})

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	_ = logger.Sync()
}
