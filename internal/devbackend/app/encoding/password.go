package encoding

type PasswordEncoder interface {
	HashPassword(password string) ([]byte, error)
	CompareHash(passwordHash []byte, password string) bool
}
