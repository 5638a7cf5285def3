// Package section runs the collision simulation of one level section: a
// donburi world holding sprites, tiles and triggers, the broad phase grids
// and the per-frame systems. A Section is not safe for concurrent use.
package section

import (
	"errors"
	"fmt"

	"github.com/automoto/tilephys/components"
	"github.com/automoto/tilephys/config"
	"github.com/automoto/tilephys/shared/geometry"
	"github.com/automoto/tilephys/shared/leveldata"
	"github.com/automoto/tilephys/systems"
	"github.com/automoto/tilephys/systems/factory"
	"github.com/automoto/tilephys/tags"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

var ErrUnknownSprite = errors.New("unknown sprite")

// Section holds the world and broad phase of a single level.
type Section struct {
	cfg    *config.Config
	world  donburi.World
	grid   *components.GridData
	log    *zap.Logger
	level  *leveldata.Level
	frame  int
	bounds geometry.BoundingRectangle
}

// Stats is a snapshot of the broad phase after a frame.
type Stats struct {
	Frame       int
	Sprites     int
	Tiles       int
	SpriteCells int
	TileCells   int
	Respawns    int
}

// SpriteState is a read-only view of a sprite.
type SpriteState struct {
	Bounds   geometry.BoundingRectangle
	Velocity geometry.Vector2
	OnGround bool
	OnSlope  bool
	Deaths   int
}

// NewSection builds a section for level. A nil cfg uses config.C, a nil
// logger discards output and a nil level gives an empty section.
func NewSection(cfg *config.Config, level *leveldata.Level, logger *zap.Logger) (*Section, error) {
	if cfg == nil {
		cfg = config.C
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if level == nil {
		level = &leveldata.Level{Name: "empty", TileWidth: max(1, int(cfg.Grid.TileCellWidth)), TileHeight: max(1, int(cfg.Grid.TileCellHeight))}
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", level.Name, err)
	}

	s := &Section{
		cfg:   cfg,
		world: donburi.NewWorld(),
		log:   logger.With(zap.String("level", level.Name)),
		level: level,
	}

	gridEntry, err := factory.CreateGrid(s.world, cfg.Grid)
	if err != nil {
		return nil, err
	}
	grid := *components.Grid.Get(gridEntry)
	s.grid = &grid

	// The trigger space covers the map plus every dead zone hanging past it.
	s.bounds = geometry.NewBoundingRectangle(0, 0, float32(level.Width), float32(level.Height))
	for _, zone := range level.DeadZones {
		s.bounds = union(s.bounds, zone.Rect())
	}
	factory.CreateSpace(s.world, s.bounds,
		max(1, int(cfg.Grid.TileCellWidth)),
		max(1, int(cfg.Grid.TileCellHeight)),
	)

	for _, def := range level.Tiles {
		hitbox, err := def.Hitbox()
		if err != nil {
			return nil, fmt.Errorf("tile at (%v,%v): %w", def.X, def.Y, err)
		}
		if _, err := factory.CreateTile(s.world, hitbox, def.Excluded); err != nil {
			return nil, err
		}
	}
	for _, area := range level.FloatingPlatforms {
		if _, err := factory.CreateFloatingPlatform(s.world, area.Rect(), cfg.Platform); err != nil {
			return nil, err
		}
	}
	for _, zone := range level.DeadZones {
		factory.CreateDeadZone(s.world, zone.Rect())
	}

	s.log.Info("section loaded",
		zap.Int("tiles", len(level.Tiles)),
		zap.Int("floating_platforms", len(level.FloatingPlatforms)),
		zap.Int("dead_zones", len(level.DeadZones)),
		zap.Int("spawn_points", len(level.SpawnPoints)),
		zap.Int("tile_cells", s.grid.Tiles.CellCount()),
	)

	return s, nil
}

func (s *Section) World() donburi.World { return s.world }
func (s *Section) Frame() int           { return s.frame }
func (s *Section) Level() *leveldata.Level {
	return s.level
}

// AddSprite spawns a sprite. Solid sprites push other sprites out of
// themselves and are never pushed back.
func (s *Section) AddSprite(bounds geometry.BoundingRectangle, solid bool) (donburi.Entity, error) {
	e, err := factory.CreateSprite(s.world, bounds, solid, s.cfg.Physics)
	if err != nil {
		return 0, err
	}
	s.log.Debug("sprite added", zap.Stringer("position", bounds.Position()), zap.Bool("solid", solid))
	return e.Entity(), nil
}

// SpawnSprites adds perSpawn sprites of the given size at every spawn point
// of the level.
func (s *Section) SpawnSprites(perSpawn int, size geometry.Vector2) ([]donburi.Entity, error) {
	var spawned []donburi.Entity
	for _, sp := range s.level.SpawnPoints {
		for i := 0; i < perSpawn; i++ {
			e, err := s.AddSprite(geometry.NewBoundingRectangle(sp.X+float32(i)*size.X, sp.Y, size.X, size.Y), false)
			if err != nil {
				return spawned, fmt.Errorf("spawn point %d: %w", sp.Index, err)
			}
			spawned = append(spawned, e)
		}
	}
	return spawned, nil
}

func (s *Section) RemoveSprite(e donburi.Entity) error {
	entry, err := s.sprite(e)
	if err != nil {
		return err
	}
	return factory.RemoveSprite(s.world, entry)
}

func (s *Section) AddTile(hitbox geometry.Hitbox, excluded bool) error {
	_, err := factory.CreateTile(s.world, hitbox, excluded)
	return err
}

// SetVelocity replaces the sprite's velocity in pixels per frame.
func (s *Section) SetVelocity(e donburi.Entity, v geometry.Vector2) error {
	entry, err := s.sprite(e)
	if err != nil {
		return err
	}
	physics := components.Physics.Get(entry)
	physics.SpeedX, physics.SpeedY = v.X, v.Y
	return nil
}

func (s *Section) Sprite(e donburi.Entity) (SpriteState, error) {
	entry, err := s.sprite(e)
	if err != nil {
		return SpriteState{}, err
	}
	body := components.Body.Get(entry)
	physics := components.Physics.Get(entry)
	return SpriteState{
		Bounds:   body.Bounds(),
		Velocity: physics.Velocity(),
		OnGround: physics.OnGround,
		OnSlope:  physics.OnSlope,
		Deaths:   components.Spawn.Get(entry).Deaths,
	}, nil
}

// Sprites returns every sprite in creation order.
func (s *Section) Sprites() []donburi.Entity {
	var sprites []donburi.Entity
	tags.Sprite.Each(s.world, func(e *donburi.Entry) {
		sprites = append(sprites, e.Entity())
	})
	return sprites
}

// Step advances the section by one frame. A grid error (a sprite with
// invalid bounds) is returned after the rest of the frame has run.
func (s *Section) Step() (Stats, error) {
	s.frame++

	systems.UpdateTweens(s.world, s.cfg.FrameTime())
	systems.UpdatePhysics(s.world)
	err := systems.UpdateCollisions(s.world)
	respawned := systems.UpdateTriggers(s.world)

	for _, e := range respawned {
		s.log.Debug("sprite respawned",
			zap.Int("frame", s.frame),
			zap.Int("deaths", components.Spawn.Get(e).Deaths),
		)
	}
	if err != nil {
		s.log.Warn("grid update failed", zap.Int("frame", s.frame), zap.Error(err))
		err = fmt.Errorf("frame %d: %w", s.frame, err)
	}

	stats := s.Stats()
	stats.Respawns = len(respawned)
	return stats, err
}

func (s *Section) Stats() Stats {
	return Stats{
		Frame:       s.frame,
		Sprites:     s.grid.Sprites.Len(),
		Tiles:       s.grid.Tiles.TileCount(),
		SpriteCells: s.grid.Sprites.CellCount(),
		TileCells:   s.grid.Tiles.CellCount(),
	}
}

// GroundBelow casts a ray down from the sprite's bottom center and returns
// the first collidable tile it meets within the configured search range.
func (s *Section) GroundBelow(e donburi.Entity) (geometry.Hitbox, bool, error) {
	entry, err := s.sprite(e)
	if err != nil {
		return nil, false, err
	}
	origin := components.Body.Get(entry).Bounds().BottomCenter()
	tile, found, err := s.grid.Tiles.GetTileIntersectingAARay(origin, geometry.DirectionDown, s.cfg.Grid.GroundSearchCells)
	if err != nil || !found {
		return nil, false, err
	}
	return tile.Hitbox(), true, nil
}

// TilesInArea returns the hitboxes of the collidable tiles overlapping area.
func (s *Section) TilesInArea(area geometry.BoundingRectangle) []geometry.Hitbox {
	tiles := s.grid.Tiles.GetTilesInArea(area)
	hitboxes := make([]geometry.Hitbox, 0, len(tiles))
	for _, tile := range tiles {
		hitboxes = append(hitboxes, tile.Hitbox())
	}
	return hitboxes
}

func (s *Section) sprite(e donburi.Entity) (*donburi.Entry, error) {
	if !s.world.Valid(e) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSprite, e)
	}
	entry := s.world.Entry(e)
	if !entry.HasComponent(tags.Sprite) {
		return nil, fmt.Errorf("%w: %v is not a sprite", ErrUnknownSprite, e)
	}
	return entry, nil
}

func union(a, b geometry.BoundingRectangle) geometry.BoundingRectangle {
	left := min(a.Left(), b.Left())
	top := min(a.Top(), b.Top())
	return geometry.NewBoundingRectangle(left, top, max(a.Right(), b.Right())-left, max(a.Bottom(), b.Bottom())-top)
}
