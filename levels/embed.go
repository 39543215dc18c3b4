package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is an arena layout: where the player spawns and what is placed
// around it.
type Level struct {
	Name     string   `json:"name"`
	Spawn    *Point   `json:"spawn,omitempty"`
	Entities []Entity `json:"entities,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Entity is one placement. Type names a placement kind such as "weapon" or
// "health_pick"; Props carries per-placement overrides.
type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Z     float64        `json:"z"`
	Props map[string]any `json:"props,omitempty"`
}

// Float returns a numeric prop.
func (e Entity) Float(key string) (float64, bool) {
	v, ok := e.Props[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Bool returns a boolean prop.
func (e Entity) Bool(key string) bool {
	b, _ := e.Props[key].(bool)
	return b
}

// Text returns a string prop.
func (e Entity) Text(key string) string {
	s, _ := e.Props[key].(string)
	return s
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelName(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// Load prefers a level file on disk under levels/ so edited arenas are
// picked up without a rebuild, falling back to the embedded copy.
func Load(name string) (*Level, error) {
	clean := cleanLevelName(name)
	if data, err := os.ReadFile(filepath.Join("levels", clean)); err == nil {
		return Parse(data)
	}
	return LoadLevelFromFS(clean)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func cleanLevelName(name string) string {
	name = strings.TrimSpace(filepath.ToSlash(name))
	name = strings.TrimPrefix(name, "levels/")
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}
