package automatic

import (
	"context"
	"errors"
	"expvar"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/tokonoma/hexstack/board"
	"github.com/tokonoma/hexstack/bot"
	"github.com/tokonoma/hexstack/game"
	"github.com/tokonoma/hexstack/match"
	"github.com/tokonoma/hexstack/stats"
)

var (
	SurveyGameCounter *expvar.Int
	IsSurveying       *expvar.Int
)

// surveying admits one survey at a time; IsSurveying only publishes it.
var surveying atomic.Bool

func init() {
	SurveyGameCounter = expvar.NewInt("surveyGameCounter")
	IsSurveying = expvar.NewInt("isSurveying")
}

var ErrSurveyRunning = errors.New("a survey is already running, please wait till it completes")

type SurveyConfig struct {
	Level           bot.Level
	Samples         int
	MaxPlies        int
	Threads         int
	TablePower      int
	RepetitionDraws bool
}

// OpeningResult collects the games that started with one White move.
type OpeningResult struct {
	FirstMove board.Ply
	Notation  string
	Outcomes  stats.Outcomes
	Length    stats.Statistic
	// Lengths of decided games, for the histogram.
	Lengths []float64
}

func (o *OpeningResult) record(g GameResult) {
	if g.Decided() {
		o.Outcomes.Record(g.Winner, true)
		o.Lengths = append(o.Lengths, float64(g.Plies))
	} else {
		o.Outcomes.Record(board.White, false)
	}
	o.Length.Push(float64(g.Plies))
}

type Survey struct {
	Config  SurveyConfig
	Results []*OpeningResult
}

// Total merges every opening's outcomes.
func (s *Survey) Total() stats.Outcomes {
	var total stats.Outcomes
	for _, r := range s.Results {
		total.Merge(&r.Outcomes)
	}
	return total
}

// RunOpeningSurvey plays cfg.Samples games after each of White's first
// moves, cfg.Threads games at a time. Each game gets its own bots, and
// therefore its own tables.
func RunOpeningSurvey(ctx context.Context, cfg SurveyConfig) (*Survey, error) {
	if !surveying.CompareAndSwap(false, true) {
		return nil, ErrSurveyRunning
	}
	defer surveying.Store(false)
	IsSurveying.Set(1)
	defer IsSurveying.Set(0)
	SurveyGameCounter.Set(0)

	if cfg.MaxPlies <= 0 {
		cfg.MaxPlies = DefaultMaxPlies
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 1
	}

	setup := game.Setup()
	survey := &Survey{
		Config: cfg,
		Results: lo.Map(setup.ValidMoves(), func(ply board.Ply, _ int) *OpeningResult {
			return &OpeningResult{
				FirstMove: ply,
				Notation:  setup.ComputeHistoryEntry(ply, [2]game.Captured{}).String(),
			}
		}),
	}
	log.Info().Int("openings", len(survey.Results)).Int("samples", cfg.Samples).
		Int("threads", cfg.Threads).Str("level", cfg.Level.Name).Msg("starting-survey")

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

queue:
	for _, res := range survey.Results {
		res := res
		for i := 0; i < cfg.Samples; i++ {
			if gctx.Err() != nil {
				log.Info().Msg("got stop signal, exiting soon...")
				break queue
			}
			g.Go(func() error {
				ms := match.Setup()
				if err := ms.ApplyMove(res.FirstMove); err != nil {
					return err
				}
				runner := NewGameRunner([2]bot.Level{cfg.Level, cfg.Level}, cfg.TablePower)
				runner.SetMaxPlies(cfg.MaxPlies)
				runner.SetRepetitionDraws(cfg.RepetitionDraws)
				out, err := runner.PlayGame(gctx, ms)
				if err != nil {
					return err
				}
				mu.Lock()
				res.record(out)
				mu.Unlock()
				SurveyGameCounter.Add(1)
				if n := SurveyGameCounter.Value(); n%100 == 0 {
					log.Info().Int64("games", n).Msg("survey-progress")
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return survey, err
	}
	if err := ctx.Err(); err != nil {
		return survey, err
	}
	log.Info().Int64("games", SurveyGameCounter.Value()).Msg("survey-finished")
	return survey, nil
}
