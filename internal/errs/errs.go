// Package errs определяет закрытый набор видов ошибок бизнес-уровня.
// Сервисы и репозитории заворачивают один из сентинелов через
// fmt.Errorf("%s: %w", op, err), HTTP-слой сопоставляет вид статусу
// (response.StatusFromError). Новые виды не добавляются точечно:
// набор закрыт, неизвестная ошибка трактуется как внутренняя.
package errs

import "errors"

// Виды ошибок бизнес-уровня.
var (
	// ErrConflict — запись уже существует (дубликат email).
	ErrConflict = errors.New("already exists")
	// ErrNotFound — запрошенная запись отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized — недействительный или отсутствующий токен,
	// неверный пароль, повторное использование отозванного refresh-токена.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden — недостаточно прав (не admin).
	ErrForbidden = errors.New("forbidden")
	// ErrInvalid — запрос синтаксически корректен, но нарушает правила
	// домена: пустой заказ, истекший купон, неоплаченная сессия.
	ErrInvalid = errors.New("invalid")
	// ErrUpstream — отказ внешней системы (платежный шлюз).
	ErrUpstream = errors.New("upstream failure")
)
