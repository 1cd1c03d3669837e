package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"post-board/app/manage/commands"
	"post-board/app/server/inits"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

func main() {
	var l *zap.Logger
	flush := func() {
		if l != nil {
			_ = l.Sync()
		}
	}

	open := func() (*commands.App, error) {
		// 初始化配置
		cfg, err := inits.Config()
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}

		// 初始化日志
		if l, err = inits.Logger(!cfg.System.IsProd, "manage"); err != nil {
			return nil, fmt.Errorf("error initializing logger: %w", err)
		}

		// 初始化数据库连接，不写入初始管理员
		db, err := inits.OpenDB(cfg.System.DBDriver, cfg.System.DBConnectionString)
		if err != nil {
			return nil, fmt.Errorf("error initializing DB connection: %w", err)
		}

		return commands.NewApp(l, db, os.Stdin, os.Stdout), nil
	}

	parser := flags.NewNamedParser("manage", flags.Default)
	if err := commands.Register(parser, open); err != nil {
		log.Fatal(err)
	}

	_, err := parser.Parse()
	flush()
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}
