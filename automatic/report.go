package automatic

import (
	"fmt"
	"io"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const histogramBins = 10

type openingRow struct {
	Opening     string  `yaml:"opening"`
	FirstMove   string  `yaml:"first_move"`
	WhiteWins   int     `yaml:"white_wins"`
	Draws       int     `yaml:"draws"`
	BlackWins   int     `yaml:"black_wins"`
	WhiteScore  float64 `yaml:"white_score"`
	ScoreLow    float64 `yaml:"score_low"`
	ScoreHigh   float64 `yaml:"score_high"`
	MeanLength  float64 `yaml:"mean_length"`
	StdevLength float64 `yaml:"stdev_length"`
}

type surveyDoc struct {
	Level      string       `yaml:"level"`
	Depth      int          `yaml:"depth"`
	Samples    int          `yaml:"samples"`
	MaxPlies   int          `yaml:"max_plies"`
	Confidence float64      `yaml:"confidence"`
	Openings   []openingRow `yaml:"openings"`
}

func (s *Survey) rows(confidence float64) []openingRow {
	return lo.Map(s.Results, func(r *OpeningResult, _ int) openingRow {
		low, high := r.Outcomes.Interval(confidence)
		return openingRow{
			Opening:     r.Notation,
			FirstMove:   r.FirstMove.String(),
			WhiteWins:   r.Outcomes.WhiteWins,
			Draws:       r.Outcomes.Draws,
			BlackWins:   r.Outcomes.BlackWins,
			WhiteScore:  r.Outcomes.WhiteScore(),
			ScoreLow:    low,
			ScoreHigh:   high,
			MeanLength:  r.Length.Mean(),
			StdevLength: r.Length.Stdev(),
		}
	})
}

// YAML renders the survey with intervals at the given confidence.
func (s *Survey) YAML(confidence float64) ([]byte, error) {
	return yaml.Marshal(surveyDoc{
		Level:      s.Config.Level.Name,
		Depth:      s.Config.Level.Depth,
		Samples:    s.Config.Samples,
		MaxPlies:   s.Config.MaxPlies,
		Confidence: confidence,
		Openings:   s.rows(confidence),
	})
}

// WriteText prints one line per opening followed by a histogram of the
// lengths of all decided games.
func (s *Survey) WriteText(w io.Writer, confidence float64) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-10s %-6s %6s %6s %6s  %-22s %s\n",
		"Opening", "Ply", "White", "Draw", "Black", "White score", "Length")
	for _, row := range s.rows(confidence) {
		fmt.Fprintf(&sb, "%-10s %-6s %6d %6d %6d  %.3f [%.3f, %.3f]  %.1f ± %.1f\n",
			row.Opening, row.FirstMove, row.WhiteWins, row.Draws, row.BlackWins,
			row.WhiteScore, row.ScoreLow, row.ScoreHigh, row.MeanLength, row.StdevLength)
	}
	total := s.Total()
	fmt.Fprintf(&sb, "\nTotal: %s\n", total.String())
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	lengths := lo.FlatMap(s.Results, func(r *OpeningResult, _ int) []float64 { return r.Lengths })
	if len(lengths) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\nLengths of decided games (plies):\n"); err != nil {
		return err
	}
	if lo.Min(lengths) == lo.Max(lengths) {
		_, err := fmt.Fprintf(w, "%d games, all %.0f plies\n", len(lengths), lengths[0])
		return err
	}
	return histogram.Fprint(w, histogram.Hist(histogramBins, lengths), histogram.Linear(40))
}
