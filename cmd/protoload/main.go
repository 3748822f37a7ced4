// Command protoload reads prototype definition documents, resolves their
// inheritance and writes the merged prototypes to the configured sink.
//
// Settings come from PROTOCORE_* environment variables; flags override them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"prototypecore/internal/config"
	"prototypecore/internal/core"
	"prototypecore/internal/infra/sink/memory"
)

var exitFunc = os.Exit

// main runs the command-line interface and exits with its status code.
func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "protoload: read environment: %v\n", err)
		return 2
	}
	var printResolved, trace bool
	fs := pflag.NewFlagSet("protoload", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.SourceDriver, "source-driver", cfg.SourceDriver, "definition store: fs|s3|memory")
	fs.StringVar(&cfg.SourceFSRoot, "root", cfg.SourceFSRoot, "definition root directory when source-driver=fs")
	fs.StringVar(&cfg.SourcePrefix, "prefix", cfg.SourcePrefix, "key prefix selecting definition documents")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "bucket when source-driver=s3")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "region when source-driver=s3")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "custom S3 endpoint (MinIO)")
	fs.BoolVar(&cfg.S3PathStyle, "s3-path-style", cfg.S3PathStyle, "use path-style S3 addressing")
	fs.StringVar(&cfg.SinkDriver, "sink-driver", cfg.SinkDriver, "prototype sink: memory|sqlite|postgres|redis")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "database file when sink-driver=sqlite")
	fs.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "connection string when sink-driver=postgres")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "server address when sink-driver=redis")
	fs.StringVar(&cfg.RedisPassword, "redis-password", cfg.RedisPassword, "password when sink-driver=redis")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "database number when sink-driver=redis")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	fs.BoolVar(&printResolved, "print", false, "print resolved prototypes (memory sink only)")
	fs.BoolVar(&trace, "trace", false, "write JSON trace spans to stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(stderr, "protoload: invalid log level %q\n", cfg.LogLevel)
		return 2
	}
	logger := core.NewZerologLogger(zerolog.New(stderr).Level(level).With().Timestamp().Str("cmd", "protoload").Logger())
	opts := []core.Option{core.WithLogger(logger)}
	if trace {
		opts = append(opts, core.WithTracer(core.NewJSONTracer(stderr)))
	}
	if err := run(context.Background(), cfg, stdout, printResolved, opts...); err != nil {
		fmt.Fprintf(stderr, "protoload: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config, stdout io.Writer, printResolved bool, opts ...core.Option) (err error) {
	src, err := core.OpenSource(ctx, cfg)
	if err != nil {
		return err
	}
	sink, err := core.OpenSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sink: %w", cerr)
		}
	}()
	report, err := core.NewLoader(opts...).Load(ctx, src, sink)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(stdout, "loaded %d prototypes (%d components, %d issues) load_id=%s\n",
		report.Entities, report.Components, len(report.Issues), report.LoadID); err != nil {
		return err
	}
	if !printResolved {
		return nil
	}
	mem, ok := sink.(*memory.Sink)
	if !ok {
		return fmt.Errorf("--print requires the memory sink, got %s", cfg.SinkDriver)
	}
	return printPrototypes(stdout, mem)
}

func printPrototypes(w io.Writer, sink *memory.Sink) error {
	for _, name := range sink.Names() {
		comps, _ := sink.Prototype(name)
		var b strings.Builder
		b.WriteString(name)
		b.WriteString(":")
		for _, p := range comps.Pairs() {
			fmt.Fprintf(&b, " %s=%s", p.Key, p.Value)
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
