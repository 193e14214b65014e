package tpc

// Decision is the outcome of evaluating one raw sample.
type Decision int

const (
	Accept Decision = iota
	RejectTimeWindow
	RejectAmplitude
	RejectNoise
	MaskedPad
	NumDecisions
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accepted"
	case RejectTimeWindow:
		return "outside time window"
	case RejectAmplitude:
		return "outside ADC window"
	case RejectNoise:
		return "below noise threshold"
	case MaskedPad:
		return "masked pad"
	default:
		return "unknown"
	}
}

// SignalFilter applies the zero-suppression chain to raw samples. The
// calibration tables and the pad mask are read-only, so one filter (or
// several sharing the same tables) may run per worker.
type SignalFilter struct {
	params FilterParams
	geo    *Geometry
	calib  *CalibPads
	mask   *PadMask
}

func NewSignalFilter(params FilterParams, geo *Geometry, calib *CalibPads, mask *PadMask) *SignalFilter {
	return &SignalFilter{
		params: params,
		geo:    geo,
		calib:  calib,
		mask:   mask,
	}
}

// Evaluate runs the filter chain on one sample, cheapest check first. On
// Accept the returned digit carries the pedestal-corrected charge and the
// sector-global row; for every other decision the digit is zero.
func (f *SignalFilter) Evaluate(cru CRU, row int, pad int, timeBin int, signal float32) (Decision, Digit) {
	if (timeBin < f.params.FirstTimeBin) || (timeBin > f.params.LastTimeBin) {
		return RejectTimeWindow, Digit{}
	}

	globalRow := f.geo.GlobalRow(cru.Region(), row)
	sectorRow := f.geo.SectorRow(cru, globalRow)
	roc := f.geo.ROC(cru)

	pedestal := f.calib.Pedestal(roc, sectorRow, pad)
	noise := f.calib.NoiseValue(roc, sectorRow, pad)

	// adc thresholds (zero suppression)
	signalCorr := signal - pedestal

	if (signalCorr < f.params.ADCMin) || (signalCorr > f.params.ADCMax) {
		return RejectAmplitude, Digit{}
	}

	// The comparison is signed on purpose: with a positive threshold a
	// negative corrected charge always counts as noise.
	if (f.params.NoiseThreshold > 0) && (signalCorr < noise*f.params.NoiseThreshold) {
		return RejectNoise, Digit{}
	}

	// masked pads are checked last, after the cheaper cuts
	if f.mask.Contains(roc, sectorRow, pad) {
		return MaskedPad, Digit{}
	}

	digit := Digit{
		CRU:     cru,
		Charge:  signalCorr,
		Row:     globalRow,
		Pad:     pad,
		TimeBin: timeBin,
	}
	return Accept, digit
}
