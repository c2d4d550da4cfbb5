package utils

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"send-push/models"

	"github.com/golang-jwt/jwt/v5"
)

// FirebaseMessagingScope est le scope OAuth2 requis par l'API FCM v1
const FirebaseMessagingScope = "https://www.googleapis.com/auth/firebase.messaging"

// AssertionLifetime est la durée de validité de l'assertion signée
const AssertionLifetime = time.Hour

var pemArmorRegex = regexp.MustCompile(`-----(BEGIN|END) [A-Z ]+-----`)

// Claims représente les revendications du JWT présenté par l'appelant de la fonction
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken génère un token JWT HS256 pour un appelant (utile pour les tests et la CLI)
func GenerateToken(subject string, role string, secret string) (string, error) {
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("erreur lors de la signature du token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken valide un token JWT et retourne les revendications
func ValidateToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Vérifier la méthode de signature
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature invalide: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("erreur lors du parsing du token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("token invalide")
	}

	return claims, nil
}

// SignServiceAccountAssertion construit et signe (RS256) l'assertion JWT échangée contre un access token.
// Toute erreur est une *SigningError.
func SignServiceAccountAssertion(cred *models.ServiceAccount, now time.Time) (string, error) {
	if cred == nil {
		return "", &SigningError{Err: errors.New("compte de service non configuré")}
	}
	if cred.ClientEmail == "" {
		return "", &SigningError{Err: errors.New("client_email manquant dans le compte de service")}
	}

	key, err := ParseServiceAccountKey(cred.PrivateKey)
	if err != nil {
		return "", err
	}

	iat := now.Unix()
	claims := jwt.MapClaims{
		"iss":   cred.ClientEmail,
		"scope": FirebaseMessagingScope,
		"aud":   cred.Audience(),
		"iat":   iat,
		"exp":   iat + int64(AssertionLifetime/time.Second),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", &SigningError{Err: err}
	}

	return signed, nil
}

// ParseServiceAccountKey importe la clé privée RSA d'un compte de service.
// Les "\n" littéraux des variables d'environnement sont acceptés ; si le PEM est mal formé,
// les en-têtes sont retirés et le corps est décodé directement en DER PKCS8.
func ParseServiceAccountKey(pemKey string) (*rsa.PrivateKey, error) {
	normalized := strings.ReplaceAll(pemKey, `\n`, "\n")
	if strings.TrimSpace(normalized) == "" {
		return nil, &SigningError{Err: errors.New("private_key manquante dans le compte de service")}
	}

	if key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(normalized)); err == nil {
		return key, nil
	}

	body := pemArmorRegex.ReplaceAllString(normalized, "")
	body = strings.Join(strings.Fields(body), "")

	der, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, &SigningError{Err: fmt.Errorf("décodage base64 de la clé privée: %w", err)}
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, &SigningError{Err: fmt.Errorf("import PKCS8 de la clé privée: %w", err)}
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, &SigningError{Err: fmt.Errorf("la clé privée n'est pas une clé RSA (%T)", parsed)}
	}

	return key, nil
}
