package domain

import (
	adomain "verihub/internal/services/analysis/domain"
)

// Wire error names outside the analysis taxonomy
const (
	ErrInternal           = "internal_error"
	ErrUnknownMessageType = "unknown_message_type"
	ErrChatFailed         = "chat_failed"
)

// User facing text, French per product contract
const (
	MsgRateLimitLocal  = "Trop de requêtes. Attendez quelques secondes."
	MsgRateLimitRemote = "Trop de requêtes. Réessayez dans quelques instants."
	MsgServerError     = "Erreur serveur. Réessayez plus tard."
	MsgInvalidRequest  = "Contenu invalide ou trop court."
	MsgNetworkError    = "Impossible de contacter le serveur. Vérifiez votre connexion."
	MsgUnknownError    = "Une erreur est survenue. Réessayez."
	MsgInternalError   = "Une erreur interne est survenue. Réessayez."
	MsgUnknownType     = "Type de message non reconnu."
	MsgChatFailed      = "Erreur lors de l'envoi du message"
	MsgChatComingSoon  = "La fonctionnalité de chat sera disponible prochainement."
)

// UserMessage translates a failure descriptor for display
func UserMessage(d *adomain.Descriptor) string {
	switch d.Kind {
	case adomain.KindRateLimit:
		if d.Local {
			return MsgRateLimitLocal
		}
		return MsgRateLimitRemote
	case adomain.KindServerError:
		return MsgServerError
	case adomain.KindInvalidRequest:
		return MsgInvalidRequest
	case adomain.KindNetworkError:
		return MsgNetworkError
	default:
		return MsgUnknownError
	}
}
