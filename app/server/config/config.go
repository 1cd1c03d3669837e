package config

import "time"

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBDriver              string // postgres 或 sqlite
		DBConnectionString    string // 数据库的连接字符串
		RedisConnectionString string // Redis 的连接字符串，为空时使用进程内缓存
	}
	Security struct {
		SignatureSecretKey string        // 签名密钥，用于产生签名（例如 JWT ），更新会导致旧有会话失效
		TokenTTL           time.Duration // 会话有效期
		LoginRate          float64       // 登录与注册的限流速率（每秒每 IP）
		LoginBurst         int           // 限流突发容量
	}
	Cache struct {
		TTL  time.Duration // 响应缓存的过期时间
		Size int           // 进程内缓存的最大条目数
	}
	Seed struct {
		AdminUsername string // 空数据库时创建的管理员
		AdminPassword string
	}
}
