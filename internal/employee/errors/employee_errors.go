package employeeerrors

import (
	"net/http"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employé non trouvé",
		http.StatusNotFound,
	)
)
