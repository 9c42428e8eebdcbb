package mission

import (
	"hash/crc32"
	"math/rand/v2"
	"strings"

	"github.com/OCharnyshevich/terrain-mapgen/pkg/terrain"
)

// maxNoisePhase bounds the per-mission noise phase offsets.
const maxNoisePhase = 900.0

// Mission is one campaign mission and the parameters derived from its id.
type Mission struct {
	ID   string
	Seed uint32
	// NoisePhaseX and NoisePhaseY shift the noise lookups so missions with
	// colliding seeds still differ.
	NoisePhaseX float64
	NoisePhaseY float64
}

// Seed returns the CRC-32 of id plus offset, wrapping at 32 bits.
func Seed(id string, offset uint32) uint32 {
	return crc32.ChecksumIEEE([]byte(id)) + offset
}

// New derives the mission parameters for id.
func New(id string, offset uint32) Mission {
	seed := Seed(id, offset)
	r := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	return Mission{
		ID:          id,
		Seed:        seed,
		NoisePhaseX: (r.Float64()*2 - 1) * maxNoisePhase,
		NoisePhaseY: (r.Float64()*2 - 1) * maxNoisePhase,
	}
}

// Apply returns base configured for this mission.
func (m Mission) Apply(base terrain.Config) terrain.Config {
	base.Seed = m.Seed
	base.NoisePhaseX = m.NoisePhaseX
	base.NoisePhaseY = m.NoisePhaseY
	return base
}

// FileName returns a file system safe name for the mission id.
func (m Mission) FileName() string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '-'
	}, m.ID)
	name = strings.Trim(name, ".")
	if name == "" {
		return "mission"
	}
	return name
}
