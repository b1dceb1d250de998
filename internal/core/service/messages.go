package service

// User-facing envelope messages. The browser client renders these verbatim,
// so they stay in the product language.
const (
	MsgAccessDenied     = "Доступ запрещен"
	MsgUnknownOperation = "Неизвестная операция"
	MsgUserNotFound     = "Пользователь не найден"
	MsgWrongPassword    = "Неверный пароль"
	MsgLoginTaken       = "Такой логин уже занят"
	MsgPostNotFound     = "Статья не найдена"
	MsgCommentNotFound  = "Комментарий не найден"
	MsgUnknownRole      = "Такой роли не существует"
	MsgUpstreamFailure  = "Ошибка запроса"

	msgBadLogin      = "Неверно заполнен логин, допускаются только буквы и цифры"
	msgShortLogin    = "Неверно заполнен логин, минимум 3 символа"
	msgLongLogin     = "Неверно заполнен логин, максимум 15 символов"
	msgBadPassword   = "Неверно заполнен пароль. Допускаются только буквы, цифры, знаки # %"
	msgShortPassword = "Неверно заполнен пароль, минимум 6 символов"
	msgLongPassword  = "Неверно заполнен пароль, максимум 30 символов"
)
