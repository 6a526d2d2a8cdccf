package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lk16/webcheckers/internal/checkers"
	"github.com/lk16/webcheckers/internal/client"
	"github.com/lk16/webcheckers/internal/config"
	"github.com/lk16/webcheckers/internal/models"
)

func main() {
	playerID := flag.String("player", "", "your player id")
	matchID := flag.String("match", "", "the match to join")
	opponent := flag.String("against", "", "start a new match against this player")
	asColor := flag.String("color", "red", "your color in a new match")
	flag.Parse()

	config.SetLogLevel()

	cfg := config.LoadClientConfig()

	if *playerID == "" {
		fmt.Println("the -player flag is required")
		os.Exit(1)
	}

	apiClient := client.NewClient(cfg, *playerID)

	if *matchID == "" {
		if *opponent == "" {
			fmt.Println("either -match or -against is required")
			os.Exit(1)
		}

		color, err := checkers.ParsePieceColor(*asColor)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		req := models.CreateMatchRequest{Red: *playerID, White: *opponent}
		if color == checkers.White {
			req.Red, req.White = *opponent, *playerID
		}

		*matchID, err = apiClient.CreateMatch(req)
		if err != nil {
			slog.Error("Failed to create match", "error", err)
			os.Exit(1)
		}
	}

	player, err := client.NewPlayer(apiClient, *matchID, os.Stdout)
	if err != nil {
		slog.Error("Failed to join match", "error", err)
		os.Exit(1)
	}

	if err = player.Run(os.Stdin); err != nil {
		slog.Error("Player stopped", "error", err)
		os.Exit(1)
	}
}
