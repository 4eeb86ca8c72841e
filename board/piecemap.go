package board

import "fmt"

// PieceMap holds one color's pieces as three bitplanes. On each cell the two
// tall planes encode the tall kind (01 hand, 10 blind, 11 star) and the flat
// plane says whether a flat is present, alone or under the tall.
type PieceMap struct {
	flats BitSet
	tall0 BitSet
	tall1 BitSet
}

// Planes exposes the raw bitplanes, e.g. for hashing.
func (pm PieceMap) Planes() (flats, tall0, tall1 BitSet) {
	return pm.flats, pm.tall0, pm.tall1
}

func (pm PieceMap) talls() BitSet {
	return pm.tall0 | pm.tall1
}

func (pm PieceMap) Occupied() BitSet {
	return pm.flats | pm.talls()
}

func (pm PieceMap) Count() int {
	return pm.Occupied().Count()
}

func (pm PieceMap) IsEmpty() bool {
	return pm.Occupied() == 0
}

func (pm PieceMap) Has(t Tile) bool {
	return pm.Occupied().Has(t)
}

// ViableTallDestinations are the cells a tall of this color may enter:
// anything not already holding one of its talls.
func (pm PieceMap) ViableTallDestinations() BitSet {
	return pm.talls().Complement()
}

func (pm PieceMap) LocateLoneFlats() BitSet {
	return pm.flats &^ pm.talls()
}

// LocateTalls finds every cell whose tall is t, stacked or not.
func (pm PieceMap) LocateTalls(t Tall) BitSet {
	switch t {
	case Hand:
		return pm.tall1 &^ pm.tall0
	case Blind:
		return pm.tall0 &^ pm.tall1
	case Star:
		return pm.tall0 & pm.tall1
	}
	return EmptySet
}

func (pm PieceMap) LocateSpecies(s Species) BitSet {
	switch {
	case s == Flat:
		return pm.LocateLoneFlats()
	case s.IsLone():
		return pm.LocateTalls(s.Tall()) &^ pm.flats
	default:
		return pm.LocateTalls(s.Tall()) & pm.flats
	}
}

// Get returns the species on t, or false if the cell is empty.
func (pm PieceMap) Get(t Tile) (Species, bool) {
	flat := pm.flats.Has(t)
	tall := tallFromBits(pm.tall0.Has(t), pm.tall1.Has(t))
	switch {
	case tall != NoTall && flat:
		return Stack(tall), true
	case tall != NoTall:
		return Lone(tall), true
	case flat:
		return Flat, true
	}
	return Flat, false
}

func (pm *PieceMap) setTall(t Tile, tall Tall) {
	b0, b1 := tall.Bits()
	pm.tall0 = pm.tall0.Without(t)
	pm.tall1 = pm.tall1.Without(t)
	if b0 {
		pm.tall0 = pm.tall0.With(t)
	}
	if b1 {
		pm.tall1 = pm.tall1.With(t)
	}
}

// Set overwrites whatever stands on t with s.
func (pm *PieceMap) Set(t Tile, s Species) {
	pm.ClearTile(t)
	if s.HasFlat() {
		pm.flats = pm.flats.With(t)
	}
	if tall := s.Tall(); tall != NoTall {
		pm.setTall(t, tall)
	}
}

func (pm *PieceMap) ClearTile(t Tile) {
	pm.flats = pm.flats.Without(t)
	pm.tall0 = pm.tall0.Without(t)
	pm.tall1 = pm.tall1.Without(t)
}

// PullMovingPiece lifts the piece that moves from t. A stack gives up its
// tall and leaves the flat behind. It panics on an empty cell.
func (pm *PieceMap) PullMovingPiece(t Tile) Species {
	s, ok := pm.Get(t)
	if !ok {
		panic(fmt.Sprintf("no piece to pull from %v", t))
	}
	if s.IsStack() {
		pm.tall0 = pm.tall0.Without(t)
		pm.tall1 = pm.tall1.Without(t)
		return s.ToLone()
	}
	pm.ClearTile(t)
	return s
}

// Toss drops a moving piece onto t. A tall landing on an allied lone flat
// forms a stack.
func (pm *PieceMap) Toss(t Tile, s Species) {
	switch {
	case s == Flat:
		if pm.Has(t) {
			panic(fmt.Sprintf("flat tossed onto occupied %v", t))
		}
		pm.flats = pm.flats.With(t)
	case s.IsLone():
		if pm.talls().Has(t) {
			panic(fmt.Sprintf("tall tossed onto tall at %v", t))
		}
		pm.setTall(t, s.Tall())
	default:
		panic(fmt.Sprintf("cannot toss stack %v onto %v", s, t))
	}
}

// Mask keeps only the pieces inside b.
func (pm PieceMap) Mask(b BitSet) PieceMap {
	return PieceMap{flats: pm.flats & b, tall0: pm.tall0 & b, tall1: pm.tall1 & b}
}

// Kill removes the pieces inside b and returns them.
func (pm *PieceMap) Kill(b BitSet) PieceMap {
	killed := pm.Mask(b)
	*pm = pm.Mask(^b)
	return killed
}

// Flip rotates the map 180° about the center.
func (pm PieceMap) Flip() PieceMap {
	var flipped PieceMap
	for _, e := range pm.Entries() {
		flipped.Set(e.Tile.Antipode(), e.Species)
	}
	return flipped
}

// Entry is an occupied cell.
type Entry struct {
	Tile    Tile
	Species Species
}

// Entries lists occupied cells in ascending tile order.
func (pm PieceMap) Entries() []Entry {
	occ := pm.Occupied()
	entries := make([]Entry, 0, occ.Count())
	for occ != 0 {
		t := occ.PopTile()
		s, _ := pm.Get(t)
		entries = append(entries, Entry{Tile: t, Species: s})
	}
	return entries
}

// SpeciesCounts tallies pieces by species code.
func (pm PieceMap) SpeciesCounts() [NumSpecies]int {
	var counts [NumSpecies]int
	for _, s := range AllSpecies {
		counts[s] = pm.LocateSpecies(s).Count()
	}
	return counts
}

func (pm PieceMap) String() string {
	return fmt.Sprintf("%v", pm.Entries())
}

func (e Entry) String() string {
	return e.Tile.String() + ":" + e.Species.String()
}
