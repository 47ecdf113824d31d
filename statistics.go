package qttt

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gorgonia/qttt/game"
	"github.com/gorgonia/qttt/game/nxn"
	"gorgonia.org/vecf32"
)

// EpisodeStats summarises one self-play episode.
type EpisodeStats struct {
	Winner          game.Player
	Moves           int     // turns taken, wasted ones included
	Wasted          int     // turns spent on occupied cells
	ExplorationRate float32 // the rate the episode was played with
	MeanTDError     float32 // mean absolute temporal-difference error over the episode's updates
}

type Statistics struct {
	Episodes []EpisodeStats
}

func makeStatistics() Statistics {
	return Statistics{
		Episodes: make([]EpisodeStats, 0, 1024),
	}
}

func (s *Statistics) record(e EpisodeStats) { s.Episodes = append(s.Episodes, e) }

// WinRates returns, for every block of window episodes, the fraction of them won by p.
// A trailing partial block is dropped.
func (s *Statistics) WinRates(p game.Player, window int) []float32 {
	if window < 1 {
		return nil
	}
	blocks := len(s.Episodes) / window
	retVal := make([]float32, blocks)
	for i := 0; i < blocks*window; i++ {
		if s.Episodes[i].Winner == p {
			retVal[i/window]++
		}
	}
	vecf32.Scale(retVal, 1/float32(window))
	return retVal
}

// Dump writes one CSV row per episode into filename.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.WriteCSV(f)
}

// WriteCSV writes one CSV row per episode into w.
func (s *Statistics) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"episode", "winner", "moves", "wasted", "exploration_rate", "mean_td_error"}); err != nil {
		return err
	}
	records := make([][]string, 0, len(s.Episodes))
	for i, e := range s.Episodes {
		records = append(records, []string{
			strconv.Itoa(i),
			winnerName(e.Winner),
			strconv.Itoa(e.Moves),
			strconv.Itoa(e.Wasted),
			strconv.FormatFloat(float64(e.ExplorationRate), 'f', 6, 32),
			strconv.FormatFloat(float64(e.MeanTDError), 'f', 6, 32),
		})
	}
	// WriteAll flushes
	return cw.WriteAll(records)
}

// Plot renders the training curves as a HTML page: the exploration rate, the mean TD error,
// and the win rates of both marks over blocks of window episodes.
func (s *Statistics) Plot(w io.Writer, title string, window int) error {
	if window < 1 {
		window = 1
	}
	blocks := len(s.Episodes) / window

	xs := make([]string, 0, blocks)
	rates := make([]opts.LineData, 0, blocks)
	errs := make([]opts.LineData, 0, blocks)
	for i := 0; i < blocks; i++ {
		xs = append(xs, fmt.Sprintf("%d", i*window))
		var tdSum float32
		for _, e := range s.Episodes[i*window : (i+1)*window] {
			tdSum += e.MeanTDError
		}
		rates = append(rates, opts.LineData{Value: s.Episodes[i*window].ExplorationRate})
		errs = append(errs, opts.LineData{Value: tdSum / float32(window)})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d episodes, blocks of %d", len(s.Episodes), window),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)
	line.SetXAxis(xs).
		AddSeries("exploration rate", rates).
		AddSeries("mean |TD error|", errs).
		AddSeries("X win rate", lineData(s.WinRates(nxn.Cross, window))).
		AddSeries("O win rate", lineData(s.WinRates(nxn.Nought, window))).
		AddSeries("draw rate", lineData(s.WinRates(game.Player(game.None), window)))

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}

func lineData(a []float32) []opts.LineData {
	retVal := make([]opts.LineData, 0, len(a))
	for _, v := range a {
		retVal = append(retVal, opts.LineData{Value: v})
	}
	return retVal
}

func winnerName(p game.Player) string {
	if p == game.Player(game.None) {
		return "draw"
	}
	return p.Mark()
}
