// Command fieldmap samples a level's gravity field on a grid and writes it as
// a PNG heatmap or a text table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/milk9111/starstruck/gravity"
	"github.com/milk9111/starstruck/levels"
	"github.com/milk9111/starstruck/prefabs"
)

func main() {
	levelName := flag.String("level", "starstruck", fmt.Sprintf("level name in levels/ (%s)", strings.Join(levels.Names(), ", ")))
	cell := flag.Float64("cell", 8, "grid cell size in world units")
	out := flag.String("out", "", "output file (default stdout)")
	asText := flag.Bool("text", false, "write a text table instead of a PNG")
	flag.Parse()

	lvl, err := levels.LoadLevelFromFS(*levelName)
	if err != nil {
		log.Fatal(err)
	}
	spec, err := prefabs.LoadGravitySpec()
	if err != nil {
		log.Fatal(err)
	}
	field, err := buildField(lvl, spec.Config)
	if err != nil {
		log.Fatal(err)
	}

	grid, err := Sample(field, lvl.Width, lvl.Height, *cell)
	if err != nil {
		log.Fatal(err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}

	if *asText {
		err = WriteText(w, grid)
	} else {
		err = WritePNG(w, grid)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("fieldmap: %s sampled %dx%d cells, G=%g, max pull %.1f", lvl.Name, grid.Cols, grid.Rows, grid.G, grid.Max)
}

func buildField(lvl *levels.Level, cfg gravity.Config) (*gravity.Field, error) {
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	field, err := gravity.NewField(cfg)
	if err != nil {
		return nil, err
	}
	planets, err := lvl.BuildPlanets()
	if err != nil {
		return nil, err
	}
	for _, p := range planets {
		field.AddPlanet(p)
	}
	return field, nil
}
