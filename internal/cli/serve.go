package cli

import (
	"bufio"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kodekoan/phrasebot/internal/brain"
	"github.com/kodekoan/phrasebot/internal/config"
	"github.com/kodekoan/phrasebot/internal/engine"
	"github.com/kodekoan/phrasebot/internal/httpd"
	"github.com/kodekoan/phrasebot/internal/phrase"
	"github.com/kodekoan/phrasebot/internal/robot"
	"github.com/kodekoan/phrasebot/internal/vars"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot on stdin/stdout plus the phrase dump endpoint",
		Long:  "Run the bot against a line-based shell adapter. Each stdin line is dispatched as a chat message; replies go to stdout. The HTTP phrase dump endpoint listens in the background.",
		Run:   runServe,
	}

	cmd.Flags().String("user", "shell", "User name for stdin messages")
	cmd.Flags().String("room", "shell", "Room name for stdin messages")
	cmd.Flags().StringSlice("role", nil, "Roles granted to the stdin user (e.g. edit_phrases)")

	RootCmd.AddCommand(cmd)
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runServe(cmd *cobra.Command, args []string) {
	userName, _ := cmd.Flags().GetString("user")
	room, _ := cmd.Flags().GetString("room")
	roles, _ := cmd.Flags().GetStringSlice("role")

	cfg, err := config.Load()
	if err != nil {
		exitErr("config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	log, err := newLogger(cfg.Env)
	if err != nil {
		exitErr("logger", err)
	}
	defer log.Sync()

	b, err := brain.NewSQLiteBrain(cfg.DBPath)
	if err != nil {
		exitErr("open brain", err)
	}
	defer b.Close()

	st := phrase.NewStore(b)
	eng := engine.New(st, engine.Options{
		BotName: cfg.BotName,
		BaseURL: cfg.BaseURL,
		Vars:    vars.Who{},
		Logger:  log,
	})

	bot := robot.New(cfg.BotName, &robot.ShellAdapter{Out: os.Stdout}, log)
	eng.Register(bot)

	mux := http.NewServeMux()
	httpd.NewHandler(eng, cfg.BotName, log).RegisterRoutes(mux)
	go func() {
		log.Info("phrase dump endpoint listening", zap.String("addr", cfg.ListenAddr()))
		if err := http.ListenAndServe(cfg.ListenAddr(), mux); err != nil {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	log.Info("bot ready",
		zap.String("name", cfg.BotName),
		zap.String("db", cfg.DBPath),
	)

	user := robot.User{Name: userName, Room: room, Roles: roles}
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		bot.Receive(cmd.Context(), user, line)
	}
	if err := scanner.Err(); err != nil {
		exitErr("read stdin", err)
	}
}
