package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrStorage persistencia local no disponible o corrupta; fatal para la
	// operación en curso y siempre propagado al caller (sin pérdida silenciosa).
	ErrStorage = errors.New("almacenamiento local no disponible")
	// ErrRemoteUnavailable fallo de red o del backend remoto; transitorio,
	// se reintenta en el siguiente ciclo.
	ErrRemoteUnavailable = errors.New("almacén remoto no disponible")
	// ErrMalformedRecord payload remoto sin campos obligatorios; se omite ese
	// registro y se continúa con el resto.
	ErrMalformedRecord = errors.New("registro remoto malformado")
	// ErrNotFound recurso no encontrado.
	ErrNotFound = errors.New("recurso no encontrado")
	// ErrInvalidInput entrada inválida.
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrDuplicate recurso duplicado.
	ErrDuplicate = errors.New("recurso duplicado")
)
