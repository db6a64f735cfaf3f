package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/fraudguard/pkg/lifecycle"
	"github.com/JaimeStill/fraudguard/pkg/model"
	"github.com/JaimeStill/fraudguard/pkg/storage"
)

// System loads and serves the trained artifacts.
type System interface {
	// Start registers the artifact load as a startup hook and the store as a
	// readiness requirement.
	Start(lc *lifecycle.Coordinator) error
	// Load reads all three artifacts, or re-validates the triple already
	// held. A failure leaves the store not ready.
	Load(ctx context.Context) (*Artifacts, error)
	// Ready reports whether a validated triple is held.
	Ready() bool
	// Artifacts returns the held triple when ready.
	Artifacts() (*Artifacts, bool)
}

type store struct {
	storage storage.System
	cfg     Config
	logger  *zap.Logger

	mu      sync.Mutex
	current atomic.Pointer[Artifacts]
	ready   atomic.Bool
}

// New creates an artifact store reading the keys in cfg from backend.
// Nothing is read until Load or Start.
func New(backend storage.System, cfg *Config, logger *zap.Logger) System {
	return &store{
		storage: backend,
		cfg:     *cfg,
		logger:  logger.With(zap.String("system", "artifacts")),
	}
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting artifact system",
		zap.String("classifier", s.cfg.Classifier),
		zap.String("scaler", s.cfg.Scaler),
		zap.String("features", s.cfg.Features),
	)

	lc.Require("artifacts", s)
	lc.OnStartup(func() {
		if _, err := s.Load(lc.Context()); err != nil {
			s.logger.Error("artifacts unavailable, predictions disabled", zap.Error(err))
		}
	})

	return nil
}

func (s *store) Load(ctx context.Context) (*Artifacts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a := s.current.Load(); a != nil {
		if err := s.validate(a); err != nil {
			s.ready.Store(false)
			return nil, err
		}
		s.ready.Store(true)
		return a, nil
	}

	a, err := s.read(ctx)
	if err != nil {
		s.ready.Store(false)
		return nil, err
	}

	s.current.Store(a)
	s.ready.Store(true)

	s.logger.Info("artifacts loaded",
		zap.Int("features", a.Schema.Len()),
		zap.String("classifier_type", fmt.Sprintf("%T", a.Classifier)),
		zap.Bool("scaler_fitted", a.Scaler.Fitted()),
	)
	return a, nil
}

func (s *store) Ready() bool {
	return s.ready.Load()
}

func (s *store) Artifacts() (*Artifacts, bool) {
	a := s.current.Load()
	if a == nil || !s.ready.Load() {
		return nil, false
	}
	return a, true
}

func (s *store) read(ctx context.Context) (*Artifacts, error) {
	for _, kind := range []Kind{KindClassifier, KindScaler, KindFeatures} {
		if err := s.present(ctx, kind); err != nil {
			return nil, err
		}
	}

	var a Artifacts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := readArtifact(gctx, s, KindClassifier, model.DecodeClassifier)
		a.Classifier = c
		return err
	})
	g.Go(func() error {
		sc, err := readArtifact(gctx, s, KindScaler, model.DecodeScaler)
		a.Scaler = sc
		return err
	})
	g.Go(func() error {
		schema, err := readArtifact(gctx, s, KindFeatures, ReadSchema)
		a.Schema = schema
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.validate(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *store) validate(a *Artifacts) error {
	err := a.validate()
	var le *LoadError
	if errors.As(err, &le) && le.Location == "" {
		le.Location = s.storage.Locate(s.cfg.Key(le.Kind))
	}
	return err
}

func (s *store) present(ctx context.Context, kind Kind) error {
	key := s.cfg.Key(kind)

	ok, err := s.storage.Exists(ctx, key)
	if err != nil {
		return s.loadError(kind, nil, err)
	}
	if !ok {
		return s.loadError(kind, ErrMissingArtifact, nil)
	}
	return nil
}

func (s *store) loadError(kind Kind, reason, err error) *LoadError {
	return &LoadError{
		Kind:     kind,
		Location: s.storage.Locate(s.cfg.Key(kind)),
		Reason:   reason,
		Err:      err,
	}
}

func readArtifact[T any](ctx context.Context, s *store, kind Kind, decode func(io.Reader) (T, error)) (T, error) {
	var zero T

	rc, err := s.storage.Download(ctx, s.cfg.Key(kind))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return zero, s.loadError(kind, ErrMissingArtifact, nil)
		}
		return zero, s.loadError(kind, nil, err)
	}
	defer rc.Close()

	v, err := decode(rc)
	if err != nil {
		return zero, s.loadError(kind, ErrCorruptArtifact, err)
	}
	return v, nil
}
