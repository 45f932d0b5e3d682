package bootstrap

import (
	"fmt"
	"math/rand"
	"time"

	"bootcomp/internal/model"

	"golang.org/x/sync/errgroup"
)

// Resampler draws bootstrap samples and reduces them to point estimates.
//
// All draws come from the single generator handed to NewResampler, so a run
// is reproducible when the caller seeds that generator. A Resampler is not
// safe for concurrent use; parallel mode derives its own per-scenario
// generators internally.
type Resampler struct {
	cfg *Config
	rng *rand.Rand
}

// NewResampler binds cfg to rng. A nil rng is replaced by a time-seeded one.
func NewResampler(cfg *Config, rng *rand.Rand) *Resampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Resampler{cfg: cfg, rng: rng}
}

func (r *Resampler) Config() *Config { return r.cfg }

// DrawIndices fills dst with len(dst) indices drawn uniformly, with
// replacement, from {0, ..., n-1}.
func (r *Resampler) DrawIndices(n int, dst []int) {
	drawIndices(r.rng, n, dst)
}

func drawIndices(rng *rand.Rand, n int, dst []int) {
	for i := range dst {
		dst[i] = rng.Intn(n)
	}
}

// ResampleScenario returns nboots point estimates of data, each computed from
// len(data) observations drawn with replacement.
func (r *Resampler) ResampleScenario(data model.ReplicationSet) ([]float64, error) {
	if data.Len() == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no replications", model.ErrInsufficientData, data.Label())
	}
	return resample(r.rng, data.Values(), r.cfg.NBoots(), r.cfg.Estimator())
}

// ResampleValues is ResampleScenario over a raw slice with an explicit estimator.
func (r *Resampler) ResampleValues(values []float64, est Estimator) ([]float64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values to resample", model.ErrInsufficientData)
	}
	return resample(r.rng, values, r.cfg.NBoots(), est)
}

func resample(rng *rand.Rand, values []float64, nboots int, est Estimator) ([]float64, error) {
	n := len(values)
	idx := make([]int, n)
	sample := make([]float64, n)
	out := make([]float64, nboots)
	for b := 0; b < nboots; b++ {
		drawIndices(rng, n, idx)
		for i, j := range idx {
			sample[i] = values[j]
		}
		v, err := est.Estimate(sample)
		if err != nil {
			return nil, err
		}
		out[b] = v
	}
	return out, nil
}

// ResampleAllScenarios resamples every scenario independently, returning one
// sequence of nboots estimates per scenario (scenario-major).
func (r *Resampler) ResampleAllScenarios(sc model.Scenarios) ([][]float64, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if r.cfg.Mode() == ModeParallel {
		return r.resampleParallel(sc)
	}
	out := make([][]float64, len(sc))
	for i, data := range sc {
		series, err := r.ResampleScenario(data)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", model.ScenarioLabel(i), err)
		}
		out[i] = series
	}
	return out, nil
}

// resampleParallel gives each scenario its own generator, seeded in scenario
// order from r.rng, so the result depends only on the caller's seed and not
// on goroutine scheduling.
func (r *Resampler) resampleParallel(sc model.Scenarios) ([][]float64, error) {
	seeds := make([]int64, len(sc))
	for i := range seeds {
		seeds[i] = r.rng.Int63()
	}

	out := make([][]float64, len(sc))
	var g errgroup.Group
	g.SetLimit(r.cfg.Workers())
	for i := range sc {
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[i]))
			series, err := resample(rng, sc[i].Values(), r.cfg.NBoots(), r.cfg.Estimator())
			if err != nil {
				return fmt.Errorf("scenario %s: %w", model.ScenarioLabel(i), err)
			}
			out[i] = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// BlockBootstrap resamples index-aligned scenarios jointly: each bootstrap
// iteration draws one set of replication rows and applies it to every
// scenario, preserving the correlation induced by common random numbers.
func (r *Resampler) BlockBootstrap(sc model.Scenarios) (model.ResampleMatrix, error) {
	if err := sc.Aligned(); err != nil {
		return nil, err
	}
	n := sc[0].Len()
	values := make([][]float64, len(sc))
	for j, data := range sc {
		values[j] = data.Values()
	}

	est := r.cfg.Estimator()
	m := model.NewResampleMatrix(r.cfg.NBoots(), len(sc))
	idx := make([]int, n)
	sample := make([]float64, n)
	for b := range m {
		r.DrawIndices(n, idx)
		for j, col := range values {
			for i, row := range idx {
				sample[i] = col[row]
			}
			v, err := est.Estimate(sample)
			if err != nil {
				return nil, err
			}
			m[b][j] = v
		}
	}
	return m, nil
}

// Resample produces the ResampleMatrix using the configured strategy.
func (r *Resampler) Resample(sc model.Scenarios) (model.ResampleMatrix, error) {
	if r.cfg.Resampling() == ResamplingDependent {
		return r.BlockBootstrap(sc)
	}
	series, err := r.ResampleAllScenarios(sc)
	if err != nil {
		return nil, err
	}
	return model.MatrixFromSeries(series)
}
