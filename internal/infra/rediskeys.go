package infra

const (
	// RedisNamespace Базовый префикс для изоляции данных проекта в Redis
	RedisNamespace = "atlasbridge"
)

// Каналы Pub/Sub (события)
const (
	// RedisChanPolicyUpdate — широковещательный сигнал шлюзам о том,
	// что набор политик изменился и его пора перечитать.
	RedisChanPolicyUpdate = RedisNamespace + ":policies:update"
)
