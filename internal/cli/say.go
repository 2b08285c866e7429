package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kodekoan/phrasebot/internal/config"
	"github.com/kodekoan/phrasebot/internal/engine"
	"github.com/kodekoan/phrasebot/internal/robot"
	"github.com/kodekoan/phrasebot/internal/vars"
)

func init() {
	cmd := &cobra.Command{
		Use:   "say [message]",
		Short: "Dispatch one message and print the replies",
		Long:  `Feed a single line through the bot's dispatch pipeline. Prefix with the bot name ("hubot: ...") to address it.`,
		Args:  cobra.MinimumNArgs(1),
		Run:   runSay,
	}

	cmd.Flags().String("user", "shell", "Speaking user name")
	cmd.Flags().String("room", "shell", "Room name")
	cmd.Flags().StringSlice("role", nil, "Roles granted to the user")

	RootCmd.AddCommand(cmd)
}

func runSay(cmd *cobra.Command, args []string) {
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

	st, b, err := openStoreAt(cfg.DBPath)
	if err != nil {
		exitErr("open brain", err)
	}
	defer b.Close()

	eng := engine.New(st, engine.Options{
		BotName: cfg.BotName,
		BaseURL: cfg.BaseURL,
		Vars:    vars.Who{},
		Logger:  zap.NewNop(),
	})
	bot := robot.New(cfg.BotName, &robot.ShellAdapter{Out: os.Stdout}, nil)
	eng.Register(bot)

	user := robot.User{Name: userName, Room: room, Roles: roles}
	bot.Receive(cmd.Context(), user, strings.Join(args, " "))
}
