package handlers

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"send-push/constants"
	"send-push/middleware"
	"send-push/models"
	"send-push/services"
	"send-push/utils"
)

// Resolver détermine les tokens à notifier
type Resolver interface {
	Resolve(ctx context.Context, req *models.NotificationRequest) ([]string, error)
}

// FailureNotifier reçoit les échecs fataux liés à la configuration (identifiants, OAuth2)
type FailureNotifier interface {
	NotifyFailure(errorType, subjectID, message string)
}

// SendPushOptions regroupe les options du handler
type SendPushOptions struct {
	// StrictHTTPStatus remplace le statut 200 systématique par 4xx/5xx selon le type d'erreur
	StrictHTTPStatus bool
	// ExposeStack ajoute aux enveloppes d'erreur la pile du handler au moment de la réponse
	// (développement uniquement). Ce n'est pas la pile d'origine de l'erreur : la chaîne
	// de causes se lit dans le champ error.
	ExposeStack bool
	Notifier    FailureNotifier
}

// SendPushHandler gère l'endpoint send-push
type SendPushHandler struct {
	resolver   Resolver
	dispatcher services.Dispatcher
	opts       SendPushOptions
	now        func() time.Time
}

// NewSendPushHandler crée une nouvelle instance de SendPushHandler
func NewSendPushHandler(resolver Resolver, dispatcher services.Dispatcher, opts SendPushOptions) *SendPushHandler {
	return &SendPushHandler{
		resolver:   resolver,
		dispatcher: dispatcher,
		opts:       opts,
		now:        time.Now,
	}
}

// ServeHTTP traite OPTIONS (preflight) et POST. Les en-têtes CORS sont posés par middleware.CORS.
// Les échecs sont renvoyés en HTTP 200 avec success=false : le champ success fait foi.
func (h *SendPushHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
		return
	}

	req, err := ParseNotificationRequest(r)
	if err != nil {
		h.respondFailure(w, "", err)
		return
	}

	subjectID := req.SubjectID()
	if caller := middleware.GetCallerFromContext(r.Context()); caller != nil {
		log.Printf("📨 send-push pour %s: %q (appelant %s)", subjectID, req.Title, caller.Subject)
	} else {
		log.Printf("📨 send-push pour %s: %q", subjectID, req.Title)
	}

	tokens, err := h.resolver.Resolve(r.Context(), req)
	if err != nil {
		h.respondFailure(w, subjectID, err)
		return
	}

	if len(tokens) == 0 {
		log.Printf("⚠️  Aucun token pour: %s", subjectID)
		utils.RespondJSON(w, http.StatusOK, models.NoTokensResponse{
			Success:   true,
			Message:   constants.MsgNoTokensFound,
			SentCount: 0,
			SubjectID: subjectID,
			Timestamp: utils.Timestamp(h.now()),
		})
		return
	}

	log.Printf("📱 %d token(s) trouvé(s) pour %s", len(tokens), subjectID)

	summary, err := h.dispatcher.Dispatch(r.Context(), tokens, req.Message())
	if err != nil {
		h.respondFailure(w, subjectID, err)
		return
	}

	summary.SubjectID = subjectID
	summary.Timestamp = utils.Timestamp(h.now())
	utils.RespondJSON(w, http.StatusOK, summary)
}

func (h *SendPushHandler) respondFailure(w http.ResponseWriter, subjectID string, err error) {
	errorType := utils.ErrorType(err)
	log.Printf("❌ send-push %s: %v", errorType, err)

	if h.opts.Notifier != nil && (errorType == utils.ErrorTypeSigning || errorType == utils.ErrorTypeTokenExchange) {
		go h.opts.Notifier.NotifyFailure(errorType, subjectID, err.Error())
	}

	envelope := models.ErrorEnvelope{
		Error:     err.Error(),
		ErrorType: errorType,
		Success:   false,
		Timestamp: utils.Timestamp(h.now()),
	}
	if h.opts.ExposeStack {
		// pile du handler, pas celle de l'erreur
		envelope.Stack = string(debug.Stack())
	}

	status := http.StatusOK
	if h.opts.StrictHTTPStatus {
		status = strictStatus(errorType)
	}
	utils.RespondJSON(w, status, envelope)
}

// strictStatus associe un statut HTTP à chaque type d'erreur quand STRICT_HTTP_STATUS est actif
func strictStatus(errorType string) int {
	switch errorType {
	case utils.ErrorTypeValidation:
		return http.StatusBadRequest
	case utils.ErrorTypeLookup, utils.ErrorTypeTokenExchange:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
