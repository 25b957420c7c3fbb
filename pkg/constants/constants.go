package constants

const (
	CHANNEL_SIZE               = 100 // 通道大小（事件通道、连接回写通道）
	CONN_SEND_BUFFER           = 64  // 单个 WebSocket 连接的回写缓冲区大小
	REDIS_TIMEOUT              = 1   // redis timeout (分钟)
	RECENT_MESSAGE_LIMIT       = 20  // 首页最近消息条数
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
)
