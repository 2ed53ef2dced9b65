package random

//go:generate mockgen -destination=mock/mock_source.go -package=mockrandom -source=source.go

// Source provides the single uniform-random stream used by every
// randomized check in the engine. This allows us to inject a fixed
// implementation for deterministic testing.
type Source interface {
	// Float64 returns a uniform double in [0, n)
	Float64(n float64) float64

	// Between returns a uniform double in [lo, hi]
	Between(lo, hi float64) float64

	// Percent returns a uniform double in [0, 100)
	Percent() float64
}
