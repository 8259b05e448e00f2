package main

import (
	"chatsync/internal/api"
	"chatsync/internal/auth"
	"chatsync/internal/chat"
	"context"
	"fmt"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"log"
	"os"
	"time"
)

// Usage:
//
//	chatsync                    list rooms
//	chatsync <roomID>           print the room timeline
//	chatsync <roomID> <text>    print the timeline, then send text
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("zap.NewDevelopment: %v", err)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	// a missing .env is fine, real environment variables win either way
	_ = godotenv.Load()

	apiCfg := api.EnvConfig{}
	if err := env.Parse(&apiCfg); err != nil {
		sugar.Fatalf("Cannot parse api config: %v", err)
	}

	authCfg := auth.EnvConfig{}
	if err := env.Parse(&authCfg); err != nil {
		sugar.Fatalf("Cannot parse auth config: %v", err)
	}
	creds := auth.FromEnvConfig(authCfg)

	client, err := api.NewClient(sugar, api.WithEnvConfig(apiCfg))
	if err != nil {
		sugar.Fatalf("Cannot create api client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if len(os.Args) < 2 {
		listRooms(ctx, sugar, client)
		return
	}

	roomID := os.Args[1]

	session := chat.NewSynchronizer(sugar, client, roomID)
	defer session.Close()

	if err := session.Load(ctx); err != nil {
		sugar.Fatalf("Cannot load room %s: %v", roomID, err)
	}

	if room, ok := session.Room(); ok {
		fmt.Printf("# %s", room.Name)
		if room.Description != "" {
			fmt.Printf(" (%s)", room.Description)
		}
		fmt.Println()
	}

	for _, m := range session.Timeline() {
		fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Format("15:04"), m.SenderName, m.Content)
	}

	if len(os.Args) > 2 {
		if !creds.CanSend() {
			sugar.Fatal("USER_ID and USER_NAME must be set to send messages")
		}

		if err := session.Send(ctx, os.Args[2], creds.UserID, creds.UserName); err != nil {
			sugar.Fatalf("Cannot send message: %v", err)
		}

		timeline := session.Timeline()
		sent := timeline[len(timeline)-1]
		fmt.Printf("sent %s at %s\n", sent.ID, sent.CreatedAt.Format(time.RFC3339))
	}
}

func listRooms(ctx context.Context, sugar *zap.SugaredLogger, client *api.Client) {
	roster := chat.NewRoster(sugar, client)
	if err := roster.Refresh(ctx); err != nil {
		sugar.Fatalf("Cannot list rooms: %v", err)
	}

	for _, room := range roster.Rooms() {
		fmt.Printf("%s\t%s\t%s\n", room.ID, room.Name, room.LastMessage)
	}
}
