package graph

import (
	"github.com/teranos/netlens/errors"
	"github.com/teranos/netlens/logger"
	"go.uber.org/zap"
)

// Session holds one independent engine per view.
type Session struct {
	engines map[View]*Engine
	logger  *zap.SugaredLogger
}

// NewSession creates an overview and a detail engine sharing opts.
func NewSession(opts Options, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = logger.Logger
	}
	return &Session{
		engines: map[View]*Engine{
			ViewOverview: NewEngine(ViewOverview, opts, log),
			ViewDetail:   NewEngine(ViewDetail, opts, log),
		},
		logger: log.Named("graph.session"),
	}
}

// Views lists the session's views in a fixed order.
func (s *Session) Views() []View {
	return []View{ViewOverview, ViewDetail}
}

// Engine returns the engine for view v.
func (s *Session) Engine(v View) (*Engine, bool) {
	e, ok := s.engines[v]
	return e, ok
}

// Load replaces the dataset of view v. The other view is not touched.
func (s *Session) Load(v View, snap Snapshot) (LoadReport, error) {
	e, ok := s.engines[v]
	if !ok {
		return LoadReport{}, errors.NewInvalidRequestError("unknown view %q", v)
	}
	report := e.Load(snap)
	if len(report.Issues) > 0 {
		s.logger.Infow("Snapshot loaded with dropped references",
			logger.FieldView, v,
			logger.FieldCount, len(report.Issues),
		)
	}
	return report, nil
}
