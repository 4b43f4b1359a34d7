package redis

type RedisStreamConfig struct {
	RedisAddr     string
	RedisPassword string
	MaxRetries    int
	Stream        string
	ReplyStream   string
	Group         string
	ConsumerName  string
}

func NewRedisStreamConfig(redisAddr string, redisPassword string, stream string, replyStream string, group string, consumerName string) *RedisStreamConfig {
	return &RedisStreamConfig{
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		MaxRetries:    5,
		Stream:        stream,
		ReplyStream:   replyStream,
		Group:         group,
		ConsumerName:  consumerName,
	}
}
