package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/starstruck/common"
	"github.com/milk9111/starstruck/levels"
)

func main() {
	debug := flag.Bool("debug", false, "draw planet reach, local up and physics shapes")
	levelName := flag.String("level", "starstruck", fmt.Sprintf("level name in levels/ (%s)", strings.Join(levels.Names(), ", ")))
	tieBreak := flag.String("tiebreak", "", "landing tie-break when several planets are touched at once: first or nearest (default from player.yaml)")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("starstruck")
	ebiten.SetTPS(int(1 / common.FixedDT))

	game, err := NewGame(*levelName, *debug, *tieBreak)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
