package staticmaps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"robogrid/internal/adapter/world/generator"
	"robogrid/internal/app/ports"
	"robogrid/internal/domain/world"
)

const mapExt = ".map"

var ErrInvalidMapPath = errors.New("invalid map name")

// Provider serves glyph-row maps stored as <Root>/<name>.map.
type Provider struct {
	Root string
}

func (p Provider) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.Root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), mapExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), mapExt))
	}
	sort.Strings(names)
	return names, nil
}

func (p Provider) Load(_ context.Context, name string) (world.World, error) {
	path, err := secureJoin(p.Root, name+mapExt)
	if err != nil {
		return world.World{}, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return world.World{}, fmt.Errorf("map %q: %w", name, ports.ErrNotFound)
	}
	if err != nil {
		return world.World{}, err
	}
	return generator.ParseRows(strings.Split(string(b), "\n"), world.Position{})
}

// Generator adapts one named map to world.Generator.
func (p Provider) Generator(name string) world.Generator {
	return mapGenerator{p: p, name: name}
}

type mapGenerator struct {
	p    Provider
	name string
}

func (g mapGenerator) Generate() (world.World, error) {
	return g.p.Load(context.Background(), g.name)
}

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" || rel == mapExt || filepath.IsAbs(rel) {
		return "", ErrInvalidMapPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	if filepath.Dir(target) != rootAbs {
		return "", ErrInvalidMapPath
	}
	return target, nil
}
