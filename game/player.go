package game

// EmptySlot marks an unoccupied rack position. Slot order is
// preserved so the peer's rack view stays stable across refills.
const EmptySlot = ""

// Player is one of the two participants' scoreboard state.
type Player struct {
	Name              string   `json:"name"`
	Score             int      `json:"score"`
	Rack              []string `json:"rack"`
	ConsecutivePasses int      `json:"consecutivePasses"`
}

// NewPlayer creates a player with an empty rack of the given capacity.
func NewPlayer(name string, rackSize int) *Player {
	rack := make([]string, rackSize)
	for i := range rack {
		rack[i] = EmptySlot
	}
	return &Player{Name: name, Rack: rack}
}

// Clone deep-copies the player.
func (p *Player) Clone() *Player {
	out := *p
	out.Rack = append([]string(nil), p.Rack...)
	return &out
}

// RackCount is the number of tiles currently held.
func (p *Player) RackCount() int {
	n := 0
	for _, t := range p.Rack {
		if t != EmptySlot {
			n++
		}
	}
	return n
}

// RackTiles returns the held tiles, skipping empty slots.
func (p *Player) RackTiles() []string {
	tiles := make([]string, 0, len(p.Rack))
	for _, t := range p.Rack {
		if t != EmptySlot {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// HasEmptyRack reports whether every slot is empty, which ends the
// game.
func (p *Player) HasEmptyRack() bool {
	return p.RackCount() == 0
}

// Refill draws from the bag into the empty slots, keeping held tiles
// in place.
func (p *Player) Refill(bag *Bag) {
	for i, t := range p.Rack {
		if t != EmptySlot {
			continue
		}
		drawn := bag.Draw(1)
		if len(drawn) == 0 {
			return
		}
		p.Rack[i] = drawn[0]
	}
}
