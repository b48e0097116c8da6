package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brogergvhs/mangasrc/internal/config"
	"github.com/brogergvhs/mangasrc/internal/prefs"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/ui"
	"github.com/brogergvhs/mangasrc/internal/util"

	// registered sources
	_ "github.com/brogergvhs/mangasrc/internal/providers/cuutruyen"
	_ "github.com/brogergvhs/mangasrc/internal/providers/nettruyen1s"
)

const retryBackoff = 500 * time.Millisecond

// session is everything a command needs to talk to one source.
type session struct {
	cfg    *config.Config
	used   string
	log    *ui.Logger
	http   *http.Client
	store  prefs.Store
	src    providers.Source
	client *providers.Client
}

func loadConfig(opts config.Options) (*config.Config, string, *ui.Logger, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = flagDebug
	opts.Source = flagSource

	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, "", nil, err
	}

	log := ui.NewLogger(cfg.Debug)
	log.Debugf("config: %s\n", used)

	return cfg, used, log, nil
}

func openStore(cfg *config.Config) (prefs.Store, error) {
	path := cfg.PrefsPath
	if path == "" {
		path = prefs.DefaultPath(config.ConfigRoot(), cfg.PrefsBackend)
	}

	return prefs.Open(cfg.PrefsBackend, path)
}

func newSource(id string, store prefs.Store, log *ui.Logger) (providers.Source, error) {
	return providers.New(id, providers.Deps{
		Prefs:  prefs.For(store, id, log),
		Logger: log,
	})
}

func openSession(opts config.Options) (*session, error) {
	cfg, used, log, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	src, err := newSource(cfg.Source, store, log)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%w (available: %v)", err, providers.IDs())
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     30 * time.Second,
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		Cloudflare:  cfg.Cloudflare,
		RateLimit:   cfg.RateLimit,
		DebugLogger: log,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	log.Debugf("source %s at %s\n", src.ID(), src.BaseURL())

	return &session{
		cfg:    cfg,
		used:   used,
		log:    log,
		http:   client,
		store:  store,
		src:    src,
		client: providers.NewClient(src, client, cfg.Retries, retryBackoff),
	}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Errorf("closing prefs store: %v\n", err)
	}
}
