package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	applog "github.com/puassist/backend/internal/infrastructure/log"
	"github.com/puassist/backend/internal/interfaces/tui"
	"github.com/puassist/backend/internal/wire"
)

func main() {
	var (
		conversationID = flag.String("conversation", "", "Conversation ID (random by default)")
		timeout        = flag.Duration("timeout", 60*time.Second, "Per-question timeout")
		logFile        = flag.String("log", "pu-assistant-cli.log", "Log file; the terminal is used by the UI")
	)
	flag.Parse()

	// 终端被界面占用，日志写入文件
	logCfg := applog.NewConfigFromEnv()
	logCfg.Output = "file:" + *logFile
	applog.Init(logCfg)

	svc, cleanup, err := wire.InitializeCLI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	id := *conversationID
	if id == "" {
		id = uuid.NewString()
	}

	if _, err := tea.NewProgram(tui.New(svc, id, *timeout), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cleanup()
		os.Exit(1)
	}
}
