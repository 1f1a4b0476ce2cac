package service

type PasswordService interface {
	// Hash returns a self-describing encoded hash (algorithm, params,
	// salt and digest in one string) suitable for a single text column.
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}
