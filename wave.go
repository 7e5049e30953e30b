package livebg

import "math"

// WaveShape selects the trigonometric function of a WaveTerm.
type WaveShape uint8

const (
	WaveSine   WaveShape = iota // sin
	WaveCosine                  // cos
)

// WaveTerm contributes Amplitude * shape(Frequency*x + Speed*t + Phase).
type WaveTerm struct {
	Amplitude float64
	Frequency float64
	Speed     float64
	Phase     float64
	Shape     WaveShape
}

func (w WaveTerm) at(x, t float64) float64 {
	arg := w.Frequency*x + w.Speed*t + w.Phase
	if w.Shape == WaveCosine {
		return w.Amplitude * math.Cos(arg)
	}
	return w.Amplitude * math.Sin(arg)
}

// WaveBand is one animated silhouette anchored to the bottom edge.
type WaveBand struct {
	// Offset is the baseline's distance above the bottom edge.
	Offset float64
	Terms  []WaveTerm
	Color  Color
	// Alpha is the gradient opacity at its top.
	Alpha float64
	// FadeHeight is how far above the bottom the gradient starts.
	FadeHeight float64
}

// Baseline returns the band's baseline y for the viewport.
func (b *WaveBand) Baseline(vp Viewport) float64 {
	return float64(vp.Height) - b.Offset
}

// Amplitude returns the sum of absolute term amplitudes, the band's maximum
// deviation from its baseline.
func (b *WaveBand) Amplitude() float64 {
	sum := 0.0
	for _, term := range b.Terms {
		sum += math.Abs(term.Amplitude)
	}
	return sum
}

// Height returns the curve's y at horizontal position x and tick t.
func (b *WaveBand) Height(x, t float64, vp Viewport) float64 {
	y := b.Baseline(vp)
	for _, term := range b.Terms {
		y += term.at(x, t)
	}
	return y
}

// minWaveStep is the finest sample spacing in pixels.
const minWaveStep = 1

// Samples appends to dst[:0] the curve sampled every step pixels from 0 to
// the viewport width. The last sample is always at x = width. A step that is
// not positive, or wider than the viewport, samples only the two edges; a
// step below one pixel is raised to one.
func (b *WaveBand) Samples(vp Viewport, t, step float64, dst []Vec2) []Vec2 {
	dst = dst[:0]
	w := float64(vp.Width)
	if !(step > 0) || step > w {
		step = w
	}
	step = max(step, minWaveStep)
	for i := 0; ; i++ {
		x := float64(i) * step
		if x >= w {
			break
		}
		dst = append(dst, Vec2{X: x, Y: b.Height(x, t, vp)})
	}
	return append(dst, Vec2{X: w, Y: b.Height(w, t, vp)})
}

// WaveLayer renders its bands back to back, each fully resampled every tick.
// Render only reads the layer, so one layer may be shared by compositors
// running on different goroutines as long as nobody mutates it meanwhile.
type WaveLayer struct {
	Bands []WaveBand
	// Step is the horizontal sample spacing in pixels, at least one.
	Step float64
}

// waveScratch holds the sample and outline buffers reused across ticks by
// one renderer.
type waveScratch struct {
	samples []Vec2
	points  []Vec2
}

// DefaultWaveLayer returns the teal band followed by the amber band.
func DefaultWaveLayer() *WaveLayer {
	return &WaveLayer{
		Bands: []WaveBand{
			{
				Offset: 40,
				Terms: []WaveTerm{
					{Amplitude: 18, Frequency: 0.006, Speed: 0.015},
					{Amplitude: 8, Frequency: 0.012, Speed: 0.008},
				},
				Color:      mustHex("#2dd4bf"),
				Alpha:      0.03,
				FadeHeight: 60,
			},
			{
				Offset: 25,
				Terms: []WaveTerm{
					{Amplitude: 12, Frequency: 0.008, Speed: 0.01, Phase: 2},
					{Amplitude: 6, Frequency: 0.015, Speed: 0.006, Shape: WaveCosine},
				},
				Color:      mustHex("#f59e0b"),
				Alpha:      0.02,
				FadeHeight: 40,
			},
		},
		Step: 8,
	}
}

// Render fills, for each band, the region between the sampled curve and the
// bottom edge with a vertical gradient that fades out toward the bottom.
func (l *WaveLayer) Render(s Surface, vp Viewport, t, opacity float64) {
	l.render(s, vp, t, opacity, &waveScratch{})
}

func (l *WaveLayer) render(s Surface, vp Viewport, t, opacity float64, sc *waveScratch) {
	h := float64(vp.Height)
	w := float64(vp.Width)
	for i := range l.Bands {
		b := &l.Bands[i]
		sc.samples = b.Samples(vp, t, l.Step, sc.samples)
		sc.points = append(sc.points[:0], Vec2{X: 0, Y: h})
		sc.points = append(sc.points, sc.samples...)
		sc.points = append(sc.points, Vec2{X: w, Y: h})

		stops := []GradientStop{
			{Offset: 0, Color: b.Color.WithAlpha(b.Alpha * opacity)},
			{Offset: 1, Color: b.Color.WithAlpha(0)},
		}
		g := Gradient{Kind: GradientLinear, X0: 0, Y0: h - b.FadeHeight, X1: 0, Y1: h, Stops: stops}
		s.FillPath(sc.points, &g)
	}
}
