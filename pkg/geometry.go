package tpc

const (
	// MaxSector is the number of sectors (partitions) on both sides.
	MaxSector = 36
	// RegionsPerSector is the number of pad regions served by one sector.
	RegionsPerSector = 10
	// MaxROC is the number of readout chambers (inner + outer per sector).
	MaxROC = 2 * MaxSector
	// RowsPerSector is the total number of pad rows in one sector.
	RowsPerSector = 152
	// IROCRows is the number of pad rows covered by the inner chamber.
	IROCRows = 63
	// orocFirstRegion is the first region read out by the outer chamber.
	orocFirstRegion = 4
)

// CRU identifies one readout unit. Ten consecutive units serve one sector,
// one per pad region.
type CRU uint16

func (c CRU) Sector() int {
	return int(c) / RegionsPerSector
}

func (c CRU) Region() int {
	return int(c) % RegionsPerSector
}

// Geometry maps region-local pad coordinates onto global and per-chamber
// row indices. It is immutable after construction and safe for concurrent
// readers; build it once per process and hand it to the components that
// need it.
type Geometry struct {
	rowOffset  [RegionsPerSector]int
	regionRows [RegionsPerSector]int
}

func NewGeometry() *Geometry {
	return &Geometry{
		rowOffset:  [RegionsPerSector]int{0, 17, 32, 48, 63, 81, 97, 113, 127, 140},
		regionRows: [RegionsPerSector]int{17, 15, 16, 15, 18, 16, 16, 14, 13, 12},
	}
}

// GlobalRow converts a region-local row into the sector-global row index.
func (g *Geometry) GlobalRow(region int, row int) int {
	return row + g.rowOffset[region]
}

// RegionRows returns the number of pad rows in a region.
func (g *Geometry) RegionRows(region int) int {
	return g.regionRows[region]
}

func (g *Geometry) IsOROC(cru CRU) bool {
	return cru.Region() >= orocFirstRegion
}

// ROC returns the readout chamber id for a unit. Inner chambers use the
// sector number, outer chambers the sector number shifted by MaxSector.
func (g *Geometry) ROC(cru CRU) int {
	if g.IsOROC(cru) {
		return cru.Sector() + MaxSector
	}
	return cru.Sector()
}

// SectorRow converts a global row index into the row index local to the
// readout chamber, which is what the calibration tables are keyed on.
func (g *Geometry) SectorRow(cru CRU, globalRow int) int {
	if g.IsOROC(cru) {
		return globalRow - IROCRows
	}
	return globalRow
}

// ROCRows returns the number of pad rows in a readout chamber.
func (g *Geometry) ROCRows(roc int) int {
	if roc < MaxSector {
		return IROCRows
	}
	return RowsPerSector - IROCRows
}
