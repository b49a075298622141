// cmd/maumau/main.go

// Command maumau runs a terminal game of Mau Mau against the built-in bot.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maustack/maumau/internal/config"
	"github.com/maustack/maumau/internal/table"
)

var log = logrus.New()

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	store := table.NewStore(log)
	tbl := store.Create(seed)
	if err := tbl.Join(cfg.PlayerName); err != nil {
		log.Fatalf("join: %v", err)
	}
	for i := 0; i < cfg.Bots; i++ {
		tbl.AddBot()
	}
	if err := tbl.Start(); err != nil {
		log.Fatalf("start: %v", err)
	}

	runGame(tbl, cfg.PlayerName)
}

// runGame is the interactive loop: render, read a command, apply it.
func runGame(tbl *table.Table, you string) {
	in := bufio.NewScanner(os.Stdin)

	for {
		v := tbl.View(you)
		if v.Finished {
			printResult(v, you)
			return
		}
		render(v)
		if !v.YourTurn {
			// Only possible with a second human seat; bots resolve inline.
			fmt.Printf("Waiting for %s.\n", v.ActivePlayer)
			return
		}

		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "p", "play":
			err = playCommand(tbl, you, fields[1:])
		case "d", "draw":
			err = tbl.Draw(you)
		case "e", "end":
			err = tbl.EndTurn(you)
		case "c", "cheat":
			printCheatSheet(tbl, you)
		case "q", "quit":
			return
		case "h", "help":
			printHelp()
		default:
			fmt.Printf("Unknown command %q.\n", fields[0])
			printHelp()
		}
		if err != nil {
			fmt.Printf("No: %v\n", err)
		}
	}
}

func playCommand(tbl *table.Table, you string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("play needs a card number")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%q is not a card number", args[0])
	}
	suit := ""
	if len(args) > 1 {
		suit = args[1]
	}
	return tbl.Play(you, index, suit)
}

func render(v table.View) {
	fmt.Println()
	if v.TopDiscard != nil {
		fmt.Printf("Top card: %s", v.TopDiscard)
		if v.PendingDraws > 0 {
			fmt.Printf("   (draw %d pending!)", v.PendingDraws)
		}
		fmt.Println()
	}
	fmt.Printf("Draw pile: %d cards\n", v.DrawPile)
	for _, o := range v.Opponents {
		tag := ""
		if o.Bot {
			tag = " (bot)"
		}
		fmt.Printf("%s%s: %d cards\n", o.Name, tag, o.HandSize)
	}

	fmt.Println("Your cards:")
	for i, c := range v.Hand {
		marker := " "
		if v.Legal[i] {
			marker = "*"
		}
		fmt.Printf("  [%d] %s %s\n", i, c, marker)
	}
	if !v.MayDraw && v.YourTurn {
		fmt.Println("You already drew; play a card or end your turn (e).")
	}
}

func printCheatSheet(tbl *table.Table, you string) {
	probs := tbl.PlayProbabilities(you)
	if len(probs) == 0 {
		fmt.Println("Nothing playable to score.")
		return
	}
	fmt.Println("Chance the next player can answer:")
	for _, pp := range probs {
		fmt.Printf("  [%d] %-24s %5.1f%%\n", pp.CardIndex, pp.Card, pp.Probability*100)
	}
}

func printResult(v table.View, you string) {
	fmt.Println()
	if len(v.Remaining) == 1 && v.Remaining[0] == you {
		fmt.Println("You were left holding cards. You lose.")
		return
	}
	fmt.Printf("Game over. Left holding cards: %s\n", strings.Join(v.Remaining, ", "))
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  p <n> [suit]  play card n (declare a suit for a Jack)")
	fmt.Println("  d             draw (pays a pending draw-two chain)")
	fmt.Println("  e             end your turn after drawing")
	fmt.Println("  c             show answer probabilities for your legal cards")
	fmt.Println("  q             quit")
}
