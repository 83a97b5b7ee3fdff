package user

// KnownUsersKey 是一个Redis Set，缓存所有已经被持久化过的设备UUID。
// 它让"这个设备是否已知"的判断不需要触到SQLite。
const KnownUsersKey = "known_users"
