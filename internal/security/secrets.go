package security

// Secrets : источник секрета процесса, из которого выводятся ключи подписи и шифрования
type Secrets interface {
	SecretKey() []byte
}

// StaticSecrets : секрет из конфигурации
type StaticSecrets string

func (s StaticSecrets) SecretKey() []byte {
	return []byte(s)
}
