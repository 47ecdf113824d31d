package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gorgonia/qttt"
	"github.com/gorgonia/qttt/encoding/gif"
	"github.com/gorgonia/qttt/game/nxn"
	"github.com/gorgonia/qttt/gtp"
	"github.com/gorgonia/qttt/qtable"
)

var (
	size      = flag.Int("size", 5, "board size N of the NxN board")
	episodes  = flag.Int("episodes", 1000, "number of self-play training episodes")
	explore   = flag.Float64("explore", 1.0, "initial exploration rate")
	decay     = flag.Float64("decay", 0.995, "exploration decay per episode")
	alpha     = flag.Float64("lr", 0.1, "learning rate")
	gamma     = flag.Float64("discount", 0.9, "discount factor")
	mask      = flag.Bool("mask", true, "never let the AI pick an occupied cell while playing")
	maskTrain = flag.Bool("mask-train", false, "never let the agents pick an occupied cell while training")
	seed      = flag.Int64("seed", 0, "random seed. 0 seeds from the clock")

	statsFile = flag.String("stats", "", "write per-episode training statistics as CSV into this file")
	plotFile  = flag.String("plot", "", "write training curves as a HTML chart into this file")
	dotFile   = flag.String("dot", "", "write the greedy line from the empty board as a graphviz file")
	gifFile   = flag.String("gif", "", "record AI vs AI games as an animated GIF into this file")
	colour    = flag.Bool("colour", true, "colour the console output")
)

func main() {
	flag.Parse()
	setupColour(*colour)

	conf := qttt.DefaultConfig(*size)
	conf.Episodes = *episodes
	conf.ExplorationRate = float32(*explore)
	conf.ExplorationDecay = float32(*decay)
	conf.LearningRate = float32(*alpha)
	conf.DiscountFactor = float32(*gamma)
	conf.MaskIllegal = *maskTrain
	conf.Seed = *seed

	trainer, err := qttt.NewTrainer(conf)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	table, err := trainer.Train()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf("Learned %d states", table.Len())
	writeReports(trainer, table)

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Select Game Mode:")
	fmt.Println("1: Human vs AI")
	fmt.Println("2: AI vs AI")
	switch prompt(reader, "Enter choice (1 or 2): ") {
	case "1":
		human := nxn.Cross
		if strings.ToUpper(prompt(reader, "Choose your symbol (X or O): ")) == "O" {
			human = nxn.Nought
		}
		humanStarts := prompt(reader, "Who starts first? (1: Human, 2: AI): ") == "1"
		s, err := qttt.NewSession(table, qttt.SessionConfig{
			Name:        conf.Name,
			Mode:        qttt.HumanVsAI,
			Human:       human,
			HumanStarts: humanStarts,
			MaskIllegal: *mask,
		})
		if err != nil {
			log.Fatalf("%+v", err)
		}
		playHuman(reader, gtp.New(s, "qttt", "1", nil), s)
	case "2":
		s, err := qttt.NewSession(table, qttt.SessionConfig{
			Name:        conf.Name,
			Mode:        qttt.AIVsAI,
			Human:       nxn.Cross,
			MaskIllegal: *mask,
		})
		if err != nil {
			log.Fatalf("%+v", err)
		}
		playAI(reader, s)
	default:
		fmt.Println("Invalid choice. Please restart the program and choose 1 or 2.")
	}
}

func prompt(r *bufio.Reader, msg string) string {
	fmt.Print(msg)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func writeReports(trainer *qttt.Trainer, table *qtable.Table) {
	if *statsFile != "" {
		if err := trainer.Dump(*statsFile); err != nil {
			log.Printf("Unable to write statistics: %v", err)
		}
	}
	if *plotFile != "" {
		f, err := os.Create(*plotFile)
		if err != nil {
			log.Printf("Unable to create %v: %v", *plotFile, err)
		} else {
			window := *episodes / 50
			if err := trainer.Plot(f, trainer.Name(), window); err != nil {
				log.Printf("Unable to plot: %v", err)
			}
			f.Close()
		}
	}
	if *dotFile != "" {
		if err := os.WriteFile(*dotFile, []byte(qttt.ToDot(table, nxn.Cross)), 0644); err != nil {
			log.Printf("Unable to write %v: %v", *dotFile, err)
		}
	}
}

// playHuman drives a human vs AI session through the text protocol engine. Every finished game is reported and the board reset.
func playHuman(reader *bufio.Reader, e *gtp.Engine, s *qttt.Session) {
	fmt.Printf("You are %s. Enter moves as \"row col\" (0 based), q to quit.\n", au.Bold(s.Human().Mark()))
	for {
		fmt.Println(render(s.State()))
		if s.ToMove() == s.AI() && !s.Ended() {
			resp, _ := e.Exec("genmove")
			if strings.TrimSpace(resp) == "=" {
				fmt.Println(au.Red("The AI insists on an occupied cell. Restart with -mask to let it pick the best empty cell."))
				return
			}
		} else {
			line := prompt(reader, fmt.Sprintf("%s to move> ", s.Human().Mark()))
			if line == "q" || line == "quit" {
				return
			}
			resp, _ := e.Exec("play " + line)
			if strings.HasPrefix(resp, "?") {
				fmt.Println(au.Yellow(strings.TrimSpace(resp)))
			}
		}
		if s.Ended() {
			fmt.Println(render(s.State()))
			fmt.Println(au.Green(au.Bold(s.Message())))
			e.Exec("clear_board")
		}
	}
}

// playAI lets the table play against itself, one game per enter key.
func playAI(reader *bufio.Reader, s *qttt.Session) {
	var enc *gif.Encoder
	if *gifFile != "" {
		f, err := os.Create(*gifFile)
		if err != nil {
			log.Fatalf("Unable to create %v: %v", *gifFile, err)
		}
		defer f.Close()
		enc = gif.NewGifEncoder(800, 800, f)
	}

	for {
		for !s.Ended() {
			if _, ok := s.AIMove(); !ok {
				fmt.Println(au.Red("The AI insists on an occupied cell. Restart with -mask to let it pick the best empty cell."))
				break
			}
			fmt.Println(render(s.State()))
			if enc != nil {
				if err := enc.Encode(s); err != nil {
					log.Printf("Unable to encode: %v", err)
				}
			}
		}
		if s.Ended() {
			fmt.Println(au.Green(au.Bold(s.Message())))
		}
		if prompt(reader, "Play again? (y/n): ") != "y" {
			break
		}
		s.Reset()
	}

	if enc != nil && enc.Frames() > 0 {
		if err := enc.Flush(); err != nil {
			log.Printf("Unable to write %v: %v", *gifFile, err)
		}
	}
}
