package leveldata

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/tilephys/shared/geometry"
	"github.com/lafriks/go-tiled"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	tileLayerName         = "wg-tiles"
	spawnGroupName        = "PlayerSpawn"
	deadZoneGroupName     = "DeadZone"
	floatingPlatformGroup = "FloatingPlatform"
)

// LoadCollisionData parses a TMX file and returns collision data (solid tiles,
// spawn points, dead zones and floating platforms). It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
func LoadCollisionData(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	level := &Level{
		Name:       stem(tmxPath),
		Width:      levelMap.Width * levelMap.TileWidth,
		Height:     levelMap.Height * levelMap.TileHeight,
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
	}

	// Parse solid tiles from wg-tiles layer
	tileW := float32(levelMap.TileWidth)
	tileH := float32(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != tileLayerName {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				def := TileDef{
					X: float32(x) * tileW,
					Y: float32(y) * tileH,
					W: tileW,
					H: tileH,
				}
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					def.Slope = tilesetTile.Properties.GetString("slope")
					def.Excluded = tilesetTile.Properties.GetBool("excluded")
				}
				if def.Slope != "" && (tile.HorizontalFlip || tile.VerticalFlip) {
					sides, err := ParseSlope(def.Slope)
					if err != nil {
						return nil, fmt.Errorf("tile (%d,%d) in %s: %w", x, y, tmxPath, err)
					}
					def.Slope = flip(sides, tile.HorizontalFlip, tile.VerticalFlip).String()
				}
				level.Tiles = append(level.Tiles, def)
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case spawnGroupName:
			for _, o := range og.Objects {
				level.SpawnPoints = append(level.SpawnPoints, SpawnPoint{
					X:     float32(o.X),
					Y:     float32(o.Y),
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case deadZoneGroupName:
			for _, o := range og.Objects {
				level.DeadZones = append(level.DeadZones, objectArea(o))
			}
		case floatingPlatformGroup:
			for _, o := range og.Objects {
				level.FloatingPlatforms = append(level.FloatingPlatforms, objectArea(o))
			}
		}
	}

	sortSpawns(level.SpawnPoints)

	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", tmxPath, err)
	}
	return level, nil
}

// LoadYAML parses a level written in the YAML level format.
func LoadYAML(fsys fs.FS, yamlPath string) (*Level, error) {
	data, err := fs.ReadFile(fsys, yamlPath)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", yamlPath, err)
	}
	var level Level
	if err := yaml.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", yamlPath, err)
	}
	if level.Name == "" {
		level.Name = stem(yamlPath)
	}
	sortSpawns(level.SpawnPoints)

	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", yamlPath, err)
	}
	return &level, nil
}

// Load picks the parser from the file extension.
func Load(fsys fs.FS, levelPath string) (*Level, error) {
	switch path.Ext(levelPath) {
	case ".tmx":
		return LoadCollisionData(fsys, levelPath)
	case ".yaml", ".yml":
		return LoadYAML(fsys, levelPath)
	}
	return nil, fmt.Errorf("%w: unsupported level file %s", ErrInvalidLevel, levelPath)
}

// LoadAllLevels discovers all level files in levelsDir within fsys, loads them
// concurrently, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(ctx context.Context, fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	var matches []string
	for _, ext := range []string{"tmx", "yaml", "yml"} {
		pattern := levelsDir + "/*." + ext
		found, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", ErrNoLevels, levelsDir)
	}

	loaded := make([]*Level, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range matches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			level, err := Load(fsys, p)
			if err != nil {
				return fmt.Errorf("load %s: %w", p, err)
			}
			loaded[i] = level
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))
	for i, p := range matches {
		name := stem(p)
		if _, dup := levels[name]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate level name %q", ErrInvalidLevel, name)
		}
		levels[name] = loaded[i]
		names = append(names, name)
	}

	sort.Strings(names)
	return levels, names, nil
}

func objectArea(o *tiled.Object) Area {
	return Area{X: float32(o.X), Y: float32(o.Y), W: float32(o.Width), H: float32(o.Height)}
}

// Sort spawns left-to-right for consistent assignment
func sortSpawns(spawns []SpawnPoint) {
	sort.SliceStable(spawns, func(i, j int) bool {
		return spawns[i].X < spawns[j].X
	})
}

func stem(p string) string {
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}

// flip mirrors the sloped sides the way Tiled flips the tile image.
func flip(sides geometry.SlopedSides, horizontal, vertical bool) geometry.SlopedSides {
	top := sides == geometry.TopLeft || sides == geometry.TopRight
	left := sides == geometry.TopLeft || sides == geometry.BottomLeft
	if horizontal {
		left = !left
	}
	if vertical {
		top = !top
	}
	switch {
	case top && left:
		return geometry.TopLeft
	case top:
		return geometry.TopRight
	case left:
		return geometry.BottomLeft
	default:
		return geometry.BottomRight
	}
}
