package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Dardva/Bot-for-remind/bot"
	corecmd "github.com/Dardva/Bot-for-remind/core/cmd"
	"github.com/Dardva/Bot-for-remind/core/buildinfo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	log.Printf("starting version=%s commit=%s", buildinfo.Version, buildinfo.Commit)

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        bot.LoadConfig,
		Bootstrap:         bot.Bootstrap,
	})
	if err != nil {
		log.Fatalf("bot terminated: %v", err)
	}
}
