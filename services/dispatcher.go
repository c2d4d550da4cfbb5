package services

import (
	"context"
	"log"
	"time"

	"send-push/models"

	"golang.org/x/sync/errgroup"
)

// Dispatcher envoie un message à une liste de tokens.
// Une erreur retournée est fatale pour la requête (identifiants, échange OAuth2) ;
// les échecs par token sont consignés dans le résumé.
type Dispatcher interface {
	Dispatch(ctx context.Context, tokens []string, msg models.PushMessage) (*models.DispatchSummary, error)
}

// sendFunc envoie le message à un token et retourne l'identifiant du message
type sendFunc func(ctx context.Context, token string) (string, error)

// fanOut envoie à chaque token avec au plus workers envois simultanés.
// Un échec n'interrompt jamais les autres envois ; les résultats gardent l'ordre des tokens.
func fanOut(ctx context.Context, tokens []string, workers int, timeout time.Duration, send sendFunc) *models.DispatchSummary {
	results := make([]models.DispatchResult, len(tokens))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	for i, token := range tokens {
		i, token := i, token
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			result := models.DispatchResult{Token: models.TokenPrefix(token)}
			messageID, err := send(sendCtx, token)
			if err != nil {
				result.Error = err.Error()
				log.Printf("❌ Échec pour le token %s: %v", result.Token, err)
			} else {
				result.Success = true
				result.MessageID = messageID
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	summary := models.NewDispatchSummary(results)
	log.Printf("📊 Envoi push: %d succès, %d échecs sur %d total", summary.SuccessCount, summary.FailedCount, summary.TotalTokens)
	return summary
}
