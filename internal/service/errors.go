package service

import (
	"errors"
	"net/http"
)

// Kinds. Every error a service returns on purpose is, or wraps, one of these.
var (
	ErrValidation      = errors.New("Geçersiz istek")
	ErrUnauthorized    = errors.New("Giriş yapmalısınız")
	ErrForbidden       = errors.New("Yetkiniz yok")
	ErrNotFound        = errors.New("Bulunamadı")
	ErrConflict        = errors.New("Kayıt zaten mevcut")
	ErrDataUnavailable = errors.New("Piyasa verisine şu an ulaşılamıyor")
	ErrInternal        = errors.New("Internal server error")
)

// kindError carries a user-facing message while still matching its kind with errors.Is
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newKindError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

var (
	ErrMissingCredentials = newKindError(ErrValidation, "Kullanıcı adı ve şifre gerekli")
	ErrEmptyContent       = newKindError(ErrValidation, "İçerik boş olamaz")
	ErrMissingSymbol      = newKindError(ErrValidation, "Sembol gerekli")
	ErrInvalidRating      = newKindError(ErrValidation, "Geçersiz oy")
	ErrUsernameTaken      = newKindError(ErrConflict, "Bu kullanıcı adı alınmış")
	ErrInvalidCredentials = newKindError(ErrUnauthorized, "Kullanıcı adı veya şifre hatalı")
	ErrPostNotFound       = newKindError(ErrNotFound, "Gönderi bulunamadı")
	ErrCommentNotFound    = newKindError(ErrNotFound, "Yorum bulunamadı")
	ErrUserNotFound       = newKindError(ErrNotFound, "Kullanıcı bulunamadı")
	ErrNoMarketData       = newKindError(ErrNotFound, "Veri bulunamadı")
)

// ErrorMap assigns each kind its HTTP status
var ErrorMap = map[error]int{
	ErrValidation:      http.StatusBadRequest,
	ErrConflict:        http.StatusBadRequest,
	ErrUnauthorized:    http.StatusUnauthorized,
	ErrForbidden:       http.StatusForbidden,
	ErrNotFound:        http.StatusNotFound,
	ErrDataUnavailable: http.StatusInternalServerError,
	ErrInternal:        http.StatusInternalServerError,
}

// StatusOf returns the HTTP status for err and whether err belongs to a known kind
func StatusOf(err error) (int, bool) {
	for kind, code := range ErrorMap {
		if errors.Is(err, kind) {
			return code, true
		}
	}
	return http.StatusInternalServerError, false
}
