package services

import (
	"context"
	"errors"
	"log"
	"time"

	"send-push/models"
	"send-push/utils"
)

// refreshMargin évite d'utiliser un token qui expirerait pendant l'envoi
const refreshMargin = 60 * time.Second

// AccessTokenProvider fournit un access token FCM et le projet associé
type AccessTokenProvider interface {
	Token(ctx context.Context) (string, error)
	ProjectID() string
}

// AccessTokenSource signe l'assertion du compte de service puis l'échange contre un access token.
// Sans cache, chaque appel re-signe et ré-échange.
type AccessTokenSource struct {
	account   *models.ServiceAccount
	exchanger *TokenExchanger
	cache     AccessTokenCache
	now       func() time.Time
}

var _ AccessTokenProvider = (*AccessTokenSource)(nil)

// NewAccessTokenSource crée une source d'access tokens. account peut être nil (service démarré sans
// identifiants) : chaque appel à Token retourne alors une *utils.SigningError.
func NewAccessTokenSource(account *models.ServiceAccount, exchanger *TokenExchanger, cache AccessTokenCache) *AccessTokenSource {
	return &AccessTokenSource{
		account:   account,
		exchanger: exchanger,
		cache:     cache,
		now:       time.Now,
	}
}

// ProjectID retourne l'identifiant du projet Firebase
func (s *AccessTokenSource) ProjectID() string {
	if s.account == nil {
		return ""
	}
	return s.account.ProjectID
}

// Token retourne un access token valide
func (s *AccessTokenSource) Token(ctx context.Context) (string, error) {
	if s.account == nil {
		return "", &utils.SigningError{Err: errors.New("compte de service non configuré")}
	}

	cacheKey := s.account.ClientEmail
	if s.cache != nil {
		token, ok, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			log.Printf("⚠️  Cache d'access token indisponible: %v", err)
		} else if ok {
			return token, nil
		}
	}

	now := s.now()
	assertion, err := utils.SignServiceAccountAssertion(s.account, now)
	if err != nil {
		return "", err
	}

	token, err := s.exchanger.Exchange(ctx, assertion)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		ttl := token.ExpiresAt(now).Sub(now) - refreshMargin
		if ttl > 0 {
			if err := s.cache.Set(ctx, cacheKey, token.AccessToken, ttl); err != nil {
				log.Printf("⚠️  Impossible de mettre l'access token en cache: %v", err)
			}
		}
	}

	log.Printf("🔑 Access token OAuth2 obtenu (expire dans %ds)", token.ExpiresIn)
	return token.AccessToken, nil
}
