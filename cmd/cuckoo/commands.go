package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vitalvas/gocuckoo/cuckoo"
	"github.com/vitalvas/gocuckoo/snapshot"
	"github.com/vitalvas/gocuckoo/xhash"
	"go.uber.org/zap"
)

// checkEvery is how many keys build reads between context checks.
const checkEvery = 4096

var errUsage = errors.New("invalid arguments")

type app struct {
	conf   Config
	logger *zap.Logger
	in     io.Reader
	out    io.Writer
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "build":
		return a.build(ctx, args)
	case "add":
		return a.add(args)
	case "query":
		return a.query(args)
	case "delete":
		return a.delete(args)
	case "stat":
		return a.stat()
	case "hash":
		return a.hash(args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func (a *app) hasher() (xhash.Hasher, error) {
	return xhash.ByName(a.conf.Filter.Hasher)
}

func (a *app) options() ([]cuckoo.Option, error) {
	hasher, err := a.hasher()
	if err != nil {
		return nil, err
	}

	return []cuckoo.Option{
		cuckoo.WithHasher(hasher),
		cuckoo.WithLogger(a.logger),
	}, nil
}

func (a *app) store() *snapshot.Store {
	return snapshot.NewStore(a.conf.Snapshot.Path, a.conf.Snapshot.Compress, a.logger)
}

func (a *app) newFilter() (*cuckoo.Filter, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}

	return cuckoo.New(a.conf.Filter.Capacity, opts...)
}

// load reads the snapshot. With create set a missing snapshot yields an empty filter.
func (a *app) load(create bool) (*cuckoo.Filter, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}

	f, err := a.store().Load(opts...)
	if create && errors.Is(err, os.ErrNotExist) {
		a.logger.Info("snapshot not found, creating", zap.String("path", a.conf.Snapshot.Path))
		return a.newFilter()
	}

	return f, err
}

func requireKeys(command string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s needs at least one key", errUsage, command)
	}
	return nil
}

func (a *app) build(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: build takes at most one file", errUsage)
	}

	in := a.in
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	f, err := a.newFilter()
	if err != nil {
		return err
	}

	var read, inserted, duplicate, failed uint64

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		read++
		if read%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		switch status, _ := f.Add(line); status {
		case cuckoo.Inserted:
			inserted++
		case cuckoo.Duplicate:
			duplicate++
		default:
			failed++
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read keys: %w", err)
	}

	if failed > 0 {
		a.logger.Warn("filter saturated during build",
			zap.Uint64("failed", failed),
			zap.Uint64("items", f.Items()),
		)
	}

	if err := a.store().Save(f); err != nil {
		return err
	}

	a.logger.Info("snapshot built",
		zap.Uint64("keys", read),
		zap.Uint64("count", f.Count()),
		zap.Float64("load_factor", f.LoadFactor()),
	)

	fmt.Fprintf(a.out, "inserted=%d duplicate=%d failed=%d count=%d items=%d\n",
		inserted, duplicate, failed, f.Count(), f.Items())

	return nil
}

func (a *app) add(args []string) error {
	if err := requireKeys("add", args); err != nil {
		return err
	}

	f, err := a.load(true)
	if err != nil {
		return err
	}

	for _, key := range args {
		status, _ := f.Add([]byte(key))
		fmt.Fprintf(a.out, "%s\t%s\n", key, status)
	}

	return a.store().Save(f)
}

func (a *app) query(args []string) error {
	if err := requireKeys("query", args); err != nil {
		return err
	}

	f, err := a.load(false)
	if err != nil {
		return err
	}

	for _, key := range args {
		fmt.Fprintf(a.out, "%s\t%t\n", key, f.Query([]byte(key)))
	}

	return nil
}

func (a *app) delete(args []string) error {
	if err := requireKeys("delete", args); err != nil {
		return err
	}

	f, err := a.load(false)
	if err != nil {
		return err
	}

	for _, key := range args {
		fmt.Fprintf(a.out, "%s\t%t\n", key, f.Delete([]byte(key)))
	}

	return a.store().Save(f)
}

func (a *app) stat() error {
	f, err := a.load(false)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "count\t%d\n", f.Count())
	fmt.Fprintf(a.out, "items\t%d\n", f.Items())
	fmt.Fprintf(a.out, "buckets\t%d\n", f.NumBuckets())
	fmt.Fprintf(a.out, "bytes\t%d\n", f.Bytes())
	fmt.Fprintf(a.out, "load_factor\t%.4f\n", f.LoadFactor())
	fmt.Fprintf(a.out, "total\t%d\n", f.Total())
	fmt.Fprintf(a.out, "exdata\t%d\n", f.ExData())

	return nil
}

func (a *app) hash(args []string) error {
	if err := requireKeys("hash", args); err != nil {
		return err
	}

	hasher, err := a.hasher()
	if err != nil {
		return err
	}

	for _, key := range args {
		fmt.Fprintf(a.out, "%s\t%016x\n", key, hasher([]byte(key), 0))
	}

	return nil
}
