package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tanutb/ManhwaQuiz/clients/quiz_api_client"
	"github.com/tanutb/ManhwaQuiz/internal/identity"
	"github.com/tanutb/ManhwaQuiz/internal/netconfig"
	"github.com/tanutb/ManhwaQuiz/internal/protocol"
	"github.com/tanutb/ManhwaQuiz/internal/room"
	"github.com/tanutb/ManhwaQuiz/internal/roomclient"
	"github.com/tanutb/ManhwaQuiz/internal/suggest"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var (
		create       = flag.Bool("create", false, "create a new room before joining")
		roomCode     = flag.String("room", "", "room code to join")
		playerName   = flag.String("name", "", "display name")
		settingsPath = flag.String("settings", "", "YAML room-creation presets")
		identityPath = flag.String("identity", ".quiz-identity.json", "player identity file")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if *playerName == "" {
		log.Fatal().Msg("-name is required")
	}

	cfg := netconfig.NewConfigFromEnv()
	api := quiz_api_client.NewQuizApiClient(cfg.APIBaseURL, cfg.APIKey)

	code := *roomCode
	ownerID := ""
	if *create {
		var settings *Settings
		if *settingsPath != "" {
			s, err := loadSettings(*settingsPath)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to load settings")
			}
			settings = s
		}
		created, err := api.CreateRoom(settings.createRequest())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create room")
		}
		code = created.RoomCode
		ownerID = created.OwnerID
		log.Info().Str("room_code", code).Msg("room created")
	} else {
		if code == "" {
			log.Fatal().Msg("-room is required unless -create is set")
		}
		if !api.RoomExists(code) {
			log.Fatal().Str("room_code", code).Msg("room not found")
		}
	}

	ids := identity.NewStore(*identityPath)
	playerID, err := ids.PlayerID(code)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve player id")
	}

	client, err := roomclient.New(roomclient.Config{
		WSBaseURL:  cfg.WSBaseURL,
		RoomCode:   code,
		PlayerName: *playerName,
		PlayerID:   playerID,
		OwnerID:    ownerID,
		OnUpdate:   printView,
		OnAnswerReceived: func() {
			fmt.Println("answer locked in")
		},
		OnFatal: func(message string) {
			log.Error().Str("message", message).Msg("session ended by server")
			os.Exit(1)
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid room configuration")
	}
	if err := client.Connect(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect")
	}

	guardCfg := suggest.DefaultConfig()
	guardCfg.RoomCode = code
	guard := suggest.NewGuard(api, printSuggestions, guardCfg)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		client.Close()
		os.Exit(0)
	}()

	fmt.Printf("joined %s as %s — type an answer, or: /start, /suggest <q>, /quit\n", code, *playerName)
	runInput(client, guard)
}

// runInput reads player commands from stdin until EOF or /quit.
func runInput(client *roomclient.Client, guard *suggest.Guard) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			client.Close()
			return
		case line == "/start":
			if err := client.StartGame(); err != nil {
				log.Warn().Err(err).Msg("could not start game")
			}
		case strings.HasPrefix(line, "/suggest "):
			guard.Query(strings.TrimPrefix(line, "/suggest "))
		default:
			if err := client.SubmitAnswer(line); err != nil {
				log.Warn().Err(err).Msg("could not submit answer")
			}
		}
	}
	client.Close()
}

func printView(v room.View) {
	if v.State == nil {
		return
	}
	switch {
	case v.FinalScores != nil:
		fmt.Println("=== final scores ===")
		for i, s := range room.RankScores(v.FinalScores) {
			fmt.Printf("%d. %s — %d\n", i+1, s.Name, s.Score)
		}
	case v.BetweenRounds && v.LastResult != nil:
		fmt.Printf("round over — correct title: %s\n", v.LastResult.CorrectTitle)
	case v.State.Phase == protocol.PhasePlaying && v.State.CurrentQuestion != nil:
		fmt.Printf("round %d/%d — %ds left — answered: %d/%d\n",
			v.State.RoundIndex+1, v.State.RoundsTotal, v.SecondsLeft,
			len(v.State.AnsweredPlayers), len(v.State.Players))
	default:
		names := make([]string, 0, len(v.State.Players))
		for _, p := range v.State.Players {
			names = append(names, p.Name)
		}
		fmt.Printf("lobby %s — players: %s\n", v.State.RoomCode, strings.Join(names, ", "))
	}
}

func printSuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Printf("suggestions: %s\n", strings.Join(suggestions, " | "))
}
