package parser

import "git.lost.host/meutraa/djmix/internal/game"

type Parser interface {
	// Parse reads the song header of a chart file into a track
	Parse(file string) (*game.Track, error)
}
