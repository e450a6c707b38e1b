package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jwhyun/baduk-bot/internal/baduk"
	"github.com/jwhyun/baduk-bot/internal/baduk/gtp"
)

// fuegocheck starts one engine process, applies the default profile and
// reports what the binary answers. Handy for verifying a Fuego build
// before pointing the bot at it.
func main() {
	binary := os.Getenv("FUEGO_PATH")
	if binary == "" {
		log.Fatal("FUEGO_PATH is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := gtp.NewSession(ctx, binary)
	if err != nil {
		log.Fatalf("session error: %v", err)
	}
	defer session.Close()

	name, err := session.Name(ctx)
	if err != nil {
		log.Fatalf("name error: %v", err)
	}
	version, err := session.Version(ctx)
	if err != nil {
		log.Fatalf("version error: %v", err)
	}
	log.Printf("engine ok: %s %s", name, version)

	profile := baduk.NewProfile("check", "check")
	if err := session.SetBoardSize(ctx, baduk.MaxBoardSize); err != nil {
		log.Fatalf("boardsize error: %v", err)
	}
	if err := session.ApplyProfile(ctx, profile, baduk.MaxBoardSize); err != nil {
		log.Fatalf("apply profile error: %v", err)
	}
	log.Printf("default profile applied at %dx%d", baduk.MaxBoardSize, baduk.MaxBoardSize)

	commands, err := baduk.BuildEngineCommands(profile, baduk.MaxBoardSize)
	if err != nil {
		log.Fatalf("command build error: %v", err)
	}
	for _, cmd := range commands {
		log.Printf("  %s", cmd)
	}
}
