package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/todos/app/store"
	"github.com/umputun/todos/app/web"
)

var opts struct {
	Listen      string        `short:"l" long:"listen" env:"TODOS_LISTEN" default:"localhost:3000" description:"listen address"`
	Backend     string        `short:"b" long:"backend" env:"TODOS_BACKEND" choice:"session" choice:"sqlite" default:"session" description:"storage backend"`
	Seed        bool          `long:"seed" env:"TODOS_SEED" description:"start new sessions or empty database with sample lists"`
	SessionTTL  time.Duration `long:"session-ttl" env:"TODOS_SESSION_TTL" default:"744h" description:"session lifetime"`
	MaxSessions int           `long:"max-sessions" env:"TODOS_MAX_SESSIONS" default:"10000" description:"max number of live sessions, 0 for unlimited"`
	Dbg         bool          `long:"dbg" env:"TODOS_DEBUG" description:"debug mode"`

	SQLite struct {
		Path     string `long:"path" env:"PATH" default:"todos.db" description:"sqlite database file"`
		MaxConns int    `long:"max-conns" env:"MAX_CONNS" default:"4" description:"max open connections"`
	} `group:"sqlite" namespace:"sqlite" env-namespace:"TODOS_SQLITE"`

	Auth struct {
		User string `long:"user" env:"USER" description:"user allowed to sign in, empty disables auth"`
		Hash string `long:"hash" env:"HASH" description:"bcrypt hash of the user's password"`
	} `group:"auth" namespace:"auth" env-namespace:"TODOS_AUTH"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging to file"`
		Filename        string `long:"filename" env:"FILENAME" default:"todos.log" description:"file to log to"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max size of log file in megabytes"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"0" description:"max days to retain old log files"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"max number of old log files"`
		EnabledCompress bool   `long:"compress" env:"COMPRESS" description:"compress rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"TODOS_LOG"`
}

var revision = "unknown"

func main() {
	fmt.Printf("todos %s\n", revision)

	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}
	setupLogs()

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel) // handle SIGQUIT, SIGINT and SIGTERM

	if err := run(ctx); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func run(ctx context.Context) error {
	if err := validateOpts(); err != nil {
		return err
	}

	stores, closeStores, err := makeStores(ctx)
	if err != nil {
		return fmt.Errorf("failed to make %s store: %w", opts.Backend, err)
	}
	defer func() {
		if err := closeStores(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	srv, err := web.New(web.Config{
		Stores:      stores,
		SessionTTL:  opts.SessionTTL,
		MaxSessions: opts.MaxSessions,
		Seed:        opts.Seed && opts.Backend == "session",
		AuthUser:    opts.Auth.User,
		Version:     revision,
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO] %s backend, listening on %s", opts.Backend, opts.Listen)
	return srv.Run(ctx, opts.Listen)
}

func validateOpts() error {
	if opts.Auth.User != "" && opts.Auth.Hash == "" {
		return fmt.Errorf("auth user %q set without password hash", opts.Auth.User)
	}
	if opts.Auth.User == "" && opts.Auth.Hash != "" {
		log.Printf("[WARN] auth hash set without user, authentication disabled")
	}
	return nil
}

// makeStores returns a store factory for the selected backend and a function releasing its resources
func makeStores(ctx context.Context) (web.StoreFactory, func() error, error) {
	var users map[string]string
	if opts.Auth.User != "" {
		users = map[string]string{opts.Auth.User: opts.Auth.Hash}
	}

	switch opts.Backend {
	case "session":
		return func(state *store.SessionState) store.Store { return store.NewSessionStore(state, users) },
			func() error { return nil }, nil
	case "sqlite":
		sqlStore, err := store.NewSQLStore(ctx, store.SQLConfig{Path: opts.SQLite.Path, MaxOpenConns: opts.SQLite.MaxConns})
		if err != nil {
			return nil, nil, err
		}
		for user, hash := range users {
			if err := sqlStore.UpsertUser(ctx, user, hash); err != nil {
				_ = sqlStore.Close()
				return nil, nil, err
			}
		}
		if opts.Seed {
			if err := sqlStore.Seed(ctx, store.SampleLists()); err != nil {
				_ = sqlStore.Close()
				return nil, nil, err
			}
		}
		log.Printf("[DEBUG] sqlite database %s", opts.SQLite.Path)
		return func(*store.SessionState) store.Store { return sqlStore }, sqlStore.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
}

// setupLogs configures lgr and returns the writer logs go to
func setupLogs() io.Writer {
	out := io.Writer(os.Stdout)
	if opts.Log.Enabled {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxAge:     opts.Log.MaxAge,
			MaxBackups: opts.Log.MaxBackups,
			Compress:   opts.Log.EnabledCompress,
			LocalTime:  true,
		}
	}

	if opts.Dbg {
		log.Setup(log.Out(out), log.Err(out), log.Debug, log.Msec, log.CallerFunc, log.CallerPkg, log.CallerFile)
		return out
	}
	log.Setup(log.Out(out), log.Err(out), log.Msec)
	return out
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			log.Printf("[INFO] %s received, shutting down", sig)
			cancel()
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGTERM)
}
