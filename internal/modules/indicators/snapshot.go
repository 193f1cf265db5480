package indicators

// Snapshot is the most recent row of a Frame with every derived column
// lifted to a pointer. A nil field means the column had not warmed up yet
// on that date; callers never see NaN.
type Snapshot struct {
	Symbol string
	Date   string
	Open   float64
	Close  float64
	Volume int64

	SMA map[int]*float64
	EMA map[int]*float64

	MACDLine      *float64
	MACDSignal    *float64
	MACDHistogram *float64

	RSI *float64

	BBMiddle *float64
	BBUpper  *float64
	BBLower  *float64
	BBWidth  *float64
	BBPct    *float64

	VolSMA   *float64
	VolRatio *float64
	OBV      *float64
	OBVSMA   *float64
}

// Latest returns a Snapshot of the final row.
func (f *Frame) Latest() Snapshot {
	i := len(f.Bars) - 1
	bar := f.Bars[i]

	snap := Snapshot{
		Symbol: bar.Symbol,
		Date:   bar.Date,
		Open:   bar.Open,
		Close:  bar.Close,
		Volume: bar.Volume,
		SMA:    make(map[int]*float64, len(f.SMA)),
		EMA:    make(map[int]*float64, len(f.EMA)),
	}

	for p, col := range f.SMA {
		snap.SMA[p] = at(col, i)
	}
	for p, col := range f.EMA {
		snap.EMA[p] = at(col, i)
	}

	snap.MACDLine = at(f.MACDLine, i)
	snap.MACDSignal = at(f.MACDSignal, i)
	snap.MACDHistogram = at(f.MACDHistogram, i)
	snap.RSI = at(f.RSI, i)
	snap.BBMiddle = at(f.BBMiddle, i)
	snap.BBUpper = at(f.BBUpper, i)
	snap.BBLower = at(f.BBLower, i)
	snap.BBWidth = at(f.BBWidth, i)
	snap.BBPct = at(f.BBPct, i)
	snap.VolSMA = at(f.VolSMA, i)
	snap.VolRatio = at(f.VolRatio, i)
	snap.OBV = at(f.OBV, i)
	snap.OBVSMA = at(f.OBVSMA, i)

	return snap
}

func at(col []float64, i int) *float64 {
	if i < 0 || i >= len(col) || !Defined(col[i]) {
		return nil
	}
	v := col[i]
	return &v
}
