package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrUnknownCountry     ErrCode = "UNKNOWN_COUNTRY"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden     ErrCode = "FORBIDDEN"
	ErrNotGuideOwner ErrCode = "NOT_GUIDE_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Guide-specific ────────────────────────────────────────────────
	ErrGuideNotPublic      ErrCode = "GUIDE_NOT_PUBLIC"
	ErrSubjectNotFound     ErrCode = "SUBJECT_NOT_FOUND"
	ErrUnknownPrerequisite ErrCode = "UNKNOWN_PREREQUISITE"
	ErrPrerequisitePeriod  ErrCode = "PREREQUISITE_PERIOD"
	ErrInvalidCredits      ErrCode = "INVALID_CREDITS"
	ErrInvalidPeriod       ErrCode = "INVALID_PERIOD"
	ErrScoreRequired       ErrCode = "SCORE_REQUIRED"
	ErrScoreOutOfRange     ErrCode = "SCORE_OUT_OF_RANGE"
	ErrIllegalTransition   ErrCode = "ILLEGAL_TRANSITION"
	ErrSubjectBlocked      ErrCode = "SUBJECT_BLOCKED"
	ErrUnknownTheme        ErrCode = "UNKNOWN_THEME"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Correo o contraseña incorrectos."
	case ErrEmailTaken:
		return "Ya existe una cuenta con este correo electrónico."
	case ErrUnknownCountry:
		return "El país seleccionado no es válido."
	case ErrSessionInvalidated:
		return "Tu sesión ha finalizado. Inicia sesión nuevamente."
	case ErrTokenRequired:
		return "Se requiere un token de autenticación."
	case ErrTokenInvalid:
		return "El token de autenticación no es válido."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "No tienes permiso para acceder a este recurso."
	case ErrNotGuideOwner:
		return "No eres el propietario de esta guía."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "La validación falló. Revisa los datos ingresados."
	case ErrInvalidID:
		return "El formato del ID no es válido."
	case ErrInvalidPayload:
		return "El cuerpo de la solicitud no es válido."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Recurso no encontrado."

	// ─── Guide-specific ────────────────────────────────────────────────
	case ErrGuideNotPublic:
		return "Esta guía no es pública."
	case ErrSubjectNotFound:
		return "La materia no existe en esta guía."
	case ErrUnknownPrerequisite:
		return "Uno de los prerrequisitos no existe en esta guía."
	case ErrPrerequisitePeriod:
		return "Los prerrequisitos deben pertenecer a un periodo anterior."
	case ErrInvalidCredits:
		return "Los créditos deben ser mayores que cero."
	case ErrInvalidPeriod:
		return "El periodo debe ser mayor que cero."
	case ErrScoreRequired:
		return "Ingresa la calificación obtenida para aprobar la materia."
	case ErrScoreOutOfRange:
		return "La calificación debe estar entre 0 y 100."
	case ErrIllegalTransition:
		return "El cambio de estado solicitado no está permitido."
	case ErrSubjectBlocked:
		return "Esta materia está bloqueada porque no cumple con los prerrequisitos."
	case ErrUnknownTheme:
		return "El tema seleccionado no existe."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Demasiadas solicitudes. Intenta de nuevo más tarde."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Ocurrió un error interno del servidor."
	default:
		return "Ocurrió un error inesperado."
	}
}
