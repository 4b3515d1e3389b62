// seehuhn.de/go/vectorize - convert raster images to vector graphics
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package vectorize

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"seehuhn.de/go/vectorize/svg"
	"seehuhn.de/go/vectorize/trace"
)

// Session converts one bitmap into an SVG document, one step at a time.
//
// A Session is not safe for concurrent use.
type Session struct {
	img    *image.NRGBA
	cfg    Config
	params trace.Params
	doc    *svg.Document

	stage  stage
	err    error
	closed bool

	clusterer Clusterer
	tracer    Tracer
	logger    *slog.Logger
}

// SessionOption configures a [Session].
type SessionOption func(*Session)

// WithClusterer replaces the clustering algorithm.
func WithClusterer(c Clusterer) SessionOption {
	return func(s *Session) {
		s.clusterer = c
	}
}

// WithTracer replaces the outline tracer.
func WithTracer(t Tracer) SessionOption {
	return func(s *Session) {
		s.tracer = t
	}
}

// WithLogger sets the logger of the session, in place of the package
// logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates a session for tracing img. The bitmap is copied, so
// the caller may reuse it. An unknown simplification mode is reported as
// a [*ConfigError]. The hierarchical mode is only checked once the first
// clustering pass is complete.
func NewSession(img *image.NRGBA, cfg Config, opts Options, options ...SessionOption) (*Session, error) {
	mode, err := trace.ParseMode(cfg.Mode)
	if err != nil {
		return nil, &ConfigError{Field: "mode", Value: cfg.Mode}
	}

	s := &Session{
		img: copyBitmap(img, opts.Invert),
		cfg: cfg,
		params: trace.Params{
			Mode:            mode,
			CornerThreshold: cfg.CornerThreshold,
			LengthThreshold: cfg.LengthThreshold,
			MaxIterations:   cfg.MaxIterations,
			SpliceThreshold: cfg.SpliceThreshold,
		},
		doc: svg.New(svg.Options{
			BackgroundColor: opts.BackgroundColor,
			PathFill:        opts.PathFill,
			Attributes:      opts.Attributes,
			Scale:           opts.Scale,
		}),
		stage:     stageNew{},
		clusterer: defaultClusterer{},
		tracer:    trace.Tracer{},
	}
	for _, opt := range options {
		opt(s)
	}

	b := s.img.Bounds()
	s.log().Debug("session created",
		"width", b.Dx(), "height", b.Dy(),
		"mode", mode,
		"hierarchical", cfg.Hierarchical,
		"filterSpeckle", cfg.FilterSpeckle,
		"colorPrecision", cfg.ColorPrecision,
		"layerDifference", cfg.LayerDifference)
	return s, nil
}

func (s *Session) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return Logger()
}

func (s *Session) checkOpen() {
	if s.closed {
		panic(ErrClosed)
	}
}

// Init starts the first clustering pass. It panics if called more than
// once.
func (s *Session) Init() {
	s.checkOpen()
	if _, ok := s.stage.(stageNew); !ok {
		panic(ErrAlreadyInitialized)
	}
	b := s.img.Bounds()
	run := s.clusterer.Start(s.img, initialConfig(s.cfg, b.Dx(), b.Dy()))
	s.stage = &stageClustering{run: run}
	s.log().Debug("stage", "name", s.stage.String())
}

// Advance performs one step of work and reports whether the document is
// complete. Once complete, further calls return true without doing
// anything.
//
// An invalid hierarchical mode is reported when the first clustering pass
// completes. After this, Advance returns the same error on every call,
// while the session state can still be inspected.
//
// Advance panics with [ErrNotInitialized] if Init has not been called.
func (s *Session) Advance() (bool, error) {
	s.checkOpen()
	if s.err != nil {
		return false, s.err
	}

	switch st := s.stage.(type) {
	case stageNew:
		panic(ErrNotInitialized)

	case *stageClustering:
		if !st.run.Tick() {
			return false, nil
		}
		set := st.run.Result()
		switch s.cfg.Hierarchical {
		case HierarchicalStacked:
			s.stage = &stageVectorize{set: set}
		case HierarchicalCutout:
			flat := set.Flatten()
			s.stage = &stageReclustering{run: s.clusterer.Start(flat, cutoutConfig(flat))}
		default:
			s.err = &ConfigError{Field: "hierarchical", Value: s.cfg.Hierarchical}
			s.log().Debug("clustering failed", "error", s.err)
			return false, s.err
		}
		s.log().Debug("stage", "name", s.stage.String(), "clusters", set.Len())
		return false, nil

	case *stageReclustering:
		if !st.run.Tick() {
			return false, nil
		}
		set := st.run.Result()
		s.stage = &stageVectorize{set: set}
		s.log().Debug("stage", "name", s.stage.String(), "clusters", set.Len())
		return false, nil

	case *stageVectorize:
		if st.cursor >= st.set.Len() {
			return true, nil
		}
		c := st.set.At(st.cursor)
		p, offset := s.tracer.Trace(c, s.params)
		s.doc.PrependPath(p, offset, s.tracer.ResidueColor(c), s.cfg.PathPrecision)
		s.log().Debug("traced cluster",
			"index", st.cursor, "area", c.Area(), "elements", len(p))
		st.cursor++
		return false, nil

	default:
		panic(fmt.Sprintf("vectorize: unexpected stage %T", st))
	}
}

// Progress returns an estimate of the completed work, between 0 and 100.
// The value never decreases during the life of a session.
func (s *Session) Progress() int {
	s.checkOpen()
	switch st := s.stage.(type) {
	case stageNew:
		return 0
	case *stageClustering:
		return st.run.Progress() / 2
	case *stageReclustering:
		return 50
	case *stageVectorize:
		n := st.set.Len()
		if n == 0 {
			return 100
		}
		return 50 + 50*st.cursor/n
	default:
		panic(fmt.Sprintf("vectorize: unexpected stage %T", st))
	}
}

// Stage returns the name of the current stage: "new", "clustering",
// "reclustering" or "vectorize".
func (s *Session) Stage() string {
	s.checkOpen()
	return s.stage.String()
}

// Err returns the configuration error which stopped the session, if any.
func (s *Session) Err() error {
	return s.err
}

// Render returns the document in its current state. It can be called at
// any stage and does not change the session.
func (s *Session) Render() string {
	s.checkOpen()
	return s.doc.String()
}

// Document gives read access to the document in its current state.
// The document must not be modified.
func (s *Session) Document() *svg.Document {
	s.checkOpen()
	return s.doc
}

// Run calls Advance until the document is complete, calling Init first if
// needed. The context is checked between steps. If onProgress is not nil,
// it is called whenever the progress value changes.
func (s *Session) Run(ctx context.Context, onProgress func(int)) error {
	s.checkOpen()
	if _, ok := s.stage.(stageNew); ok {
		s.Init()
	}
	last := s.Progress()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := s.Advance()
		if err != nil {
			return err
		}
		if p := s.Progress(); p != last {
			last = p
			if onProgress != nil {
				onProgress(p)
			}
		}
		if done {
			return nil
		}
	}
}

// Close releases the buffers held by the session. After Close, all other
// methods panic with [ErrClosed]. Close may be called more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.img = nil
	s.doc = nil
	s.stage = nil
	s.log().Debug("session closed")
}
