package domain

import "fmt"

type CellStatus string

const (
	CellOK          CellStatus = "OK"
	CellUnavailable CellStatus = "UNAVAILABLE"
)

// Provenance records whether a cell came from a routing provider or a geometric estimate.
type Provenance string

const (
	ProvenanceExact        Provenance = "exact"
	ProvenanceApproximated Provenance = "approximated"
)

type TravelCost struct {
	DurationMinutes float64
	DistanceMeters  float64
	Status          CellStatus
	Provenance      Provenance
}

func (tc TravelCost) Usable() bool { return tc.Status == CellOK }

// TravelCostMatrix holds directed pairwise costs between the places of one
// synthesis request. Index i in Places is row/column i. The diagonal is zero.
// Cells not filled are UNAVAILABLE and must never be read as zero cost.
type TravelCostMatrix struct {
	Places []Place
	cells  [][]TravelCost
	index  map[string]int
}

func NewTravelCostMatrix(places []Place) *TravelCostMatrix {
	n := len(places)
	m := &TravelCostMatrix{
		Places: places,
		cells:  make([][]TravelCost, n),
		index:  make(map[string]int, n),
	}
	for i := range places {
		m.index[places[i].ID] = i
		m.cells[i] = make([]TravelCost, n)
		for j := range m.cells[i] {
			if i == j {
				m.cells[i][j] = TravelCost{Status: CellOK, Provenance: ProvenanceExact}
				continue
			}
			m.cells[i][j] = TravelCost{Status: CellUnavailable}
		}
	}
	return m
}

func (m *TravelCostMatrix) Size() int { return len(m.Places) }

func (m *TravelCostMatrix) IndexOf(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// Set overwrites cell (i, j). Diagonal writes are ignored.
func (m *TravelCostMatrix) Set(i, j int, tc TravelCost) {
	if i == j {
		return
	}
	m.cells[i][j] = tc
}

func (m *TravelCostMatrix) At(i, j int) TravelCost { return m.cells[i][j] }

// Minutes returns the travel time for (i, j) and whether the cell is usable.
func (m *TravelCostMatrix) Minutes(i, j int) (float64, bool) {
	c := m.cells[i][j]
	return c.DurationMinutes, c.Usable()
}

func (m *TravelCostMatrix) Lookup(fromID, toID string) (TravelCost, error) {
	i, ok := m.index[fromID]
	if !ok {
		return TravelCost{}, fmt.Errorf("lookup travel cost: unknown place %q", fromID)
	}
	j, ok := m.index[toID]
	if !ok {
		return TravelCost{}, fmt.Errorf("lookup travel cost: unknown place %q", toID)
	}
	c := m.cells[i][j]
	if !c.Usable() {
		return c, fmt.Errorf("lookup travel cost %s -> %s: %w", fromID, toID, ErrUnreachablePair)
	}
	return c, nil
}

// Approximated reports whether any usable cell was estimated rather than measured.
func (m *TravelCostMatrix) Approximated() bool {
	for i := range m.cells {
		for j := range m.cells[i] {
			c := m.cells[i][j]
			if i != j && c.Usable() && c.Provenance == ProvenanceApproximated {
				return true
			}
		}
	}
	return false
}
