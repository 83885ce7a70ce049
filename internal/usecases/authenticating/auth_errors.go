package authenticating

import "errors"

var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrMissingOwner  = errors.New("token sem owner_id")
	ErrMissingSecret = errors.New("AUTH_SECRET não configurado")
)
