package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/auth"
	"github.com/abhisek/adaptly/internal/catalog"
	"github.com/abhisek/adaptly/internal/config"
	"github.com/abhisek/adaptly/internal/hint"
	"github.com/abhisek/adaptly/internal/learnapi"
	"github.com/abhisek/adaptly/internal/llm"
	"github.com/abhisek/adaptly/internal/logging"
	"github.com/abhisek/adaptly/internal/narration"
	"github.com/abhisek/adaptly/internal/progress"
	"github.com/abhisek/adaptly/internal/store"
)

// deps holds the collaborators a command needs. Close releases them in
// reverse order of creation.
type deps struct {
	cfg      config.Config
	log      *zap.Logger
	store    *store.Store
	kv       store.KV
	catalog  *catalog.Catalog
	progress *progress.Store

	closers []func() error
}

// openDeps loads configuration, opens the database and the KV backend, and
// loads progress. The interactive UI owns the terminal, so it logs to a file.
func openDeps(cmd *cobra.Command, interactive bool) (*deps, error) {
	ctx := cmd.Context()
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, catalog: catalog.Default()}

	logFile := cfg.LogFile
	if interactive && logFile == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		logFile = filepath.Join(dir, "adaptly.log")
	}
	d.log, err = logging.New(cfg.LogLevel, logFile)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	d.closers = append(d.closers, func() error { _ = d.log.Sync(); return nil })

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	d.store, err = store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.closers = append(d.closers, d.store.Close)

	switch cfg.KVBackend {
	case config.BackendRedis:
		rkv, err := store.NewRedisKV(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.closers = append(d.closers, rkv.Close)
		d.kv = rkv
	case config.BackendMemory:
		d.kv = store.NewMemoryKV()
	default:
		d.kv = d.store.KV()
	}
	d.log.Debug("storage ready", zap.String("db", dbPath), zap.String("kv", cfg.KVBackend))

	d.progress = progress.NewStore(d.kv, d.catalog, progress.WithLogger(d.log))
	d.progress.Load(ctx)
	return d, nil
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && d.log != nil {
			d.log.Warn("close failed", zap.Error(err))
		}
	}
	d.closers = nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ADAPTLY_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func (d *deps) auth() *auth.Session {
	return auth.NewSession(d.kv, d.log)
}

var errNoAPI = errors.New("ADAPTLY_API_BASE_URL is not set")

// api returns a client for the learning platform.
func (d *deps) api() (*learnapi.Client, error) {
	if d.cfg.APIBaseURL == "" {
		return nil, errNoAPI
	}
	return learnapi.New(d.cfg.APIBaseURL, d.cfg.HTTPTimeout, d.auth()), nil
}

// hints builds the hint service for the configured source, or nil when hints
// are off.
func (d *deps) hints(ctx context.Context) (*hint.Service, error) {
	var fetcher hint.Fetcher
	switch src := d.cfg.EffectiveHintSource(); src {
	case config.HintAPI:
		fetcher = hint.NewAPIFetcher(d.cfg.APIBaseURL, d.cfg.HTTPTimeout, d.auth())
	case config.HintLLM:
		provider, err := llm.NewProvider(ctx, d.cfg.LLM, d.store.EventRepo(), d.log)
		if err != nil {
			return nil, fmt.Errorf("hint provider: %w", err)
		}
		fetcher = hint.NewLLMFetcher(provider)
	default:
		return nil, nil
	}
	d.log.Debug("hints enabled", zap.String("source", d.cfg.EffectiveHintSource()))
	return hint.NewService(fetcher, d.log), nil
}

// synthesizer opens the Google TTS client and registers it for closing.
func (d *deps) synthesizer(ctx context.Context) (*narration.GoogleSynthesizer, error) {
	synth, err := narration.NewGoogleSynthesizer(ctx, d.cfg.NarrationLanguage, d.cfg.NarrationVoice)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, synth.Close)
	return synth, nil
}

func (d *deps) narrationCache() (narration.Cache, error) {
	dir := d.cfg.NarrationCache
	if dir == "" {
		data, err := store.DataDir()
		if err != nil {
			return narration.Cache{}, err
		}
		dir = filepath.Join(data, "narration")
	}
	return narration.Cache{Dir: dir}, nil
}

// narrator returns the TTS narrator when narration is enabled and Silent
// otherwise.
func (d *deps) narrator(ctx context.Context) (narration.Narrator, error) {
	if d.cfg.Narration != config.NarrationTTS {
		return narration.Silent{}, nil
	}
	synth, err := d.synthesizer(ctx)
	if err != nil {
		return nil, err
	}
	cache, err := d.narrationCache()
	if err != nil {
		return nil, err
	}
	name, args := d.cfg.PlayerCommand()
	tts := narration.NewTTS(synth, cache, narration.CommandPlayer(name, args...), d.log)
	d.closers = append(d.closers, func() error { tts.Cancel(); return nil })
	return tts, nil
}

// withDeps runs fn with CLI deps and closes them afterwards.
func withDeps(cmd *cobra.Command, fn func(ctx context.Context, d *deps) error) error {
	d, err := openDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()
	return fn(cmd.Context(), d)
}
