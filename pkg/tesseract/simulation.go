package tesseract

import (
	"log/slog"

	"github.com/taigrr/tesseract/pkg/math4d"
)

// rotationPlanes is the fixed per-frame rotation set, applied in this order.
var rotationPlanes = [4][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}}

// HitEvent records one point touching one facet.
type HitEvent struct {
	Tick    uint64
	Point   int
	Axis    int
	Sign    int
	Channel Channel
}

// Simulation owns all engine state: rotation angles, points and facets.
// It is not safe for concurrent use; the caller drives it one Tick per frame.
type Simulation struct {
	cfg      Config
	angles   [len(rotationPlanes)]float64
	vertices [VertexCount]math4d.Vec4
	edges    []Edge
	facets   *FacetModel
	points   []*MovingPoint
	ticks    uint64
	hits     uint64
	logger   *slog.Logger
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sends facet hits to l at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// New validates cfg and builds a Simulation at tick zero.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:      cfg,
		vertices: Vertices(),
		facets:   NewFacetModel(),
		logger:   slog.New(slog.DiscardHandler),
	}
	s.edges = Edges(s.vertices[:])
	for _, p := range cfg.Points {
		s.points = append(s.points, NewMovingPoint(p.Position, p.Velocity, p.Radius, p.Channel))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Tick advances one frame: rotation angles step by their fixed speeds, every
// point moves one velocity step, and facet highlights fade by elapsed
// seconds. It returns the facet hits that happened during the tick.
func (s *Simulation) Tick(elapsed float64) []HitEvent {
	s.ticks++
	for i := range s.angles {
		s.angles[i] += s.cfg.RotationSpeed * s.cfg.PlaneMultipliers[i]
	}

	var events []HitEvent
	for i, p := range s.points {
		for _, b := range p.Update(s.facets) {
			ev := HitEvent{Tick: s.ticks, Point: i, Axis: b.Axis, Sign: b.Sign, Channel: p.Channel}
			events = append(events, ev)
			s.logger.Debug("facet hit",
				"tick", ev.Tick,
				"point", ev.Point,
				"axis", ev.Axis,
				"sign", ev.Sign,
				"channel", ev.Channel,
			)
		}
	}
	s.hits += uint64(len(events))

	s.facets.Decay(elapsed)
	return events
}

// Rotations returns the current fixed rotation set.
func (s *Simulation) Rotations() math4d.Rotation {
	rot := make(math4d.Rotation, len(rotationPlanes))
	for i, pl := range rotationPlanes {
		rot[i] = math4d.Plane{I: pl[0], J: pl[1], Angle: s.angles[i]}
	}
	return rot
}

// Angles returns the four rotation accumulators in plane order
// (0,1), (0,2), (0,3), (1,2).
func (s *Simulation) Angles() [4]float64 { return s.angles }

// Config returns the config the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Ticks returns the number of ticks run so far.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Hits returns the number of facet hits so far.
func (s *Simulation) Hits() uint64 { return s.hits }

// Edges returns the hypercube's 32 edges.
func (s *Simulation) Edges() []Edge { return s.edges }

// Facets returns the facet model. Callers must not trigger hits on it.
func (s *Simulation) Facets() *FacetModel { return s.facets }

// PointCount returns the number of bouncing points.
func (s *Simulation) PointCount() int { return len(s.points) }

// Point returns a copy of point i.
func (s *Simulation) Point(i int) MovingPoint { return *s.points[i] }
