package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Ressource introuvable",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"Accès non autorisé",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Erreur interne du serveur",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Non authentifié",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"Données invalides",
		http.StatusBadRequest,
	)

	ErrConflict = New(
		CodeConflict,
		"Conflit avec l'état actuel de la ressource",
		http.StatusConflict,
	)
)

func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s est requis", field),
		http.StatusBadRequest,
	)
}

func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s est invalide", field),
		http.StatusBadRequest,
	)
}
