package models

// TokenRequest представляет структуру запроса для получения пары токенов.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair представляет пару access/refresh токенов.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest представляет структуру запроса для обновления access-токена.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// AccessResponse представляет ответ с новым access-токеном.
type AccessResponse struct {
	Access string `json:"access"`
}
