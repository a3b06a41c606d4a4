package leaveerrors

import (
	"net/http"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/apperror"
)

var (
	ErrStartDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"La date de début est requise",
		http.StatusBadRequest,
	)
	ErrEndDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"La date de fin est requise",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Le motif est requis",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format de date invalide, attendu AAAA-MM-JJ",
		http.StatusBadRequest,
	)
	ErrReasonBlank = apperror.New(
		apperror.CodeInvalidInput,
		"Le motif ne peut pas être vide",
		http.StatusBadRequest,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"La date de début ne peut pas être dans le passé",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"La date de fin doit être après la date de début",
		http.StatusBadRequest,
	)
	ErrEmployeeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"L'employé concerné est requis",
		http.StatusBadRequest,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"Action invalide",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"Identifiant de demande invalide",
		http.StatusBadRequest,
	)
	ErrSubmitForOtherEmployee = apperror.New(
		apperror.CodeForbidden,
		"Vous ne pouvez pas demander un congé pour un autre employé",
		http.StatusForbidden,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Demande de congé non trouvée",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"Vous avez déjà une demande de congé pour cette période",
		http.StatusConflict,
	)
	ErrLeaveAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"Cette demande a déjà été traitée",
		http.StatusConflict,
	)
)
