package port

import "context"

// SessionPort - источник токена аутентификации. Токен перечитывается в
// начале каждой операции, которой он нужен, а не кэшируется реактивно
// из внешнего хранилища.
type SessionPort interface {
	// Token возвращает действующий токен или domain.ErrNotAuthenticated.
	Token(ctx context.Context) (string, error)
}
