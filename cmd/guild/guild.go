package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	cosmoslog "cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/guilddao/guild-app/app"
	app_config "github.com/guilddao/guild-app/config"
	"github.com/guilddao/guild-app/indexer"
	"github.com/guilddao/guild-app/types"
)

var homeDir string

var guildCmd = &cobra.Command{
	Use:   "guild",
	Short: "guild is a member-governed organizational ledger",
	Long: `A member-governed organizational ledger: weighted membership,
queued proposals, checkpointed voting and proportional exit.`,
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	guildCmd.Flags().StringVarP(&homeDir, "homedir", "d", "", "home directory")
}

func run(cmd *cobra.Command, args []string) {
	if homeDir == "" {
		homeDir = os.ExpandEnv("$HOME/.guild")
	}

	cfg, err := app_config.Load(homeDir)
	if err != nil {
		log.Fatalf("Reading config: %v", err)
	}

	filter, err := cosmoslog.ParseLogLevel(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("failed to parse log level: %v", err)
	}
	logger := cosmoslog.NewLogger(os.Stdout, cosmoslog.FilterOption(filter))

	guildApp, err := app.NewGuildApp(cfg.App, app.NewMemVault(), app.NewLogRunner(logger), app.SystemClock{}, logger)
	if err != nil {
		log.Fatalf("new App err:%v", err)
	}

	if guildApp.DB().Header().Height == 0 {
		genDoc, err := types.LoadGenesisDoc(cfg.GenesisFile())
		if err != nil {
			log.Fatalf("load genesis err:%v", err)
		}
		hash, err := guildApp.InitChain(genDoc)
		if err != nil {
			log.Fatalf("init chain err:%v", err)
		}
		logger.Info("chain initialized", "chainId", genDoc.ChainID, "hash", hash.Hex())
	}

	idx, err := indexer.NewIndexer(logger, cfg.IndexDBFile())
	if err != nil {
		log.Fatalf("new indexer err %s", err.Error())
	}
	guildApp.DB().SetEventSink(idx.Sink)

	ctx, cancel := context.WithCancel(context.Background())
	idx.Start(ctx)

	service := indexer.NewService(cfg.App.ListenAddr, guildApp, idx)
	go service.Start()

	defer func() {
		log.Println("shut down...")
		done := make(chan struct{})
		go func() {
			defer close(done)
			cancel()
			guildApp.Stop()
			idx.Close()
		}()
		timer := time.NewTimer(time.Second * 10)
		select {
		case <-timer.C:
			os.Exit(1)
		case <-done:
			return
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
