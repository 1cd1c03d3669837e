package inits

import (
	"fmt"

	"post-board/app/server/config"
	"post-board/app/server/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func DB(cfg *config.Config) (db *gorm.DB, err error) {
	// 打开连接并迁移
	if db, err = OpenDB(cfg.System.DBDriver, cfg.System.DBConnectionString); err != nil {
		return nil, err
	}

	// 初始化启动数据
	if err = initData(db, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

// OpenDB 只打开连接并迁移，不写入初始数据
func OpenDB(driver string, conn string) (db *gorm.DB, err error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(conn)
	case "sqlite":
		dialector = sqlite.Open(conn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	// 打开连接
	if db, err = gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite" {
		// 内存数据库只在同一个连接内共享
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
	)
}

func initData(db *gorm.DB, username string, password string) (err error) {
	// 查询现有记录数量
	var counter int64

	// 初始化用户
	if err = db.Model(&models.User{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get user count: %w", err)
	} else if counter == 0 { // 没有任何用户，添加初始管理员
		admin := models.User{
			Username:    username,
			Name:        "Administrator",
			Permissions: models.NewPermissionSet(models.PermissionAdmin),
		}

		// 创建密码
		if err = admin.SetPassword(password); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}

		// 插入记录
		if err = db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	}

	// 已有数据或全部导入成功
	return nil
}
