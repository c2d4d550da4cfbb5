package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"send-push/constants"
	"send-push/models"
	"send-push/utils"
)

// maxRequestBody borne la taille du corps accepté
const maxRequestBody = 1 << 20

type rawNotificationRequest struct {
	Token  string          `json:"token"`
	UserID string          `json:"user_id"`
	Title  string          `json:"title"`
	Body   string          `json:"body"`
	Data   json.RawMessage `json:"data"`
}

// ParseNotificationRequest décode et valide le corps (JSON ou formulaire urlencoded).
// Toute erreur est une utils.ValidationError.
func ParseNotificationRequest(r *http.Request) (*models.NotificationRequest, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return nil, utils.ValidationError{Message: "impossible de lire le corps de la requête"}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, utils.ValidationError{Message: constants.ErrEmptyBody}
	}

	var req *models.NotificationRequest
	if isFormEncoded(r.Header.Get(constants.HeaderContentType)) {
		req, err = parseFormBody(raw)
	} else {
		req, err = parseJSONBody(raw)
	}
	if err != nil {
		return nil, err
	}

	if err := validateNotificationRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

func isFormEncoded(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == constants.HeaderFormURLEncoded
}

func parseFormBody(raw []byte) (*models.NotificationRequest, error) {
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, utils.ValidationError{Message: constants.ErrInvalidFormBody}
	}

	req := &models.NotificationRequest{
		Token:  strings.TrimSpace(values.Get("token")),
		UserID: strings.TrimSpace(values.Get("user_id")),
		Title:  values.Get("title"),
		Body:   values.Get("body"),
		Data:   map[string]string{},
	}

	if encoded := values.Get("data"); encoded != "" {
		req.Data = parseEncodedData(encoded)
	}
	return req, nil
}

func parseJSONBody(raw []byte) (*models.NotificationRequest, error) {
	var body rawNotificationRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, utils.ValidationError{Message: constants.ErrInvalidJSONBody}
	}

	req := &models.NotificationRequest{
		Token:  strings.TrimSpace(body.Token),
		UserID: strings.TrimSpace(body.UserID),
		Title:  body.Title,
		Body:   body.Body,
		Data:   map[string]string{},
	}

	trimmed := bytes.TrimSpace(body.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return req, nil
	}

	if data, err := decodeDataObject(trimmed); err == nil {
		req.Data = data
		return req, nil
	}

	// Certains clients envoient data déjà sérialisé en chaîne
	var encoded string
	if err := json.Unmarshal(trimmed, &encoded); err == nil {
		if encoded != "" {
			req.Data = parseEncodedData(encoded)
		}
		return req, nil
	}

	return nil, utils.ValidationError{Field: "data", Message: constants.ErrInvalidDataField}
}

// parseEncodedData décode un champ data sérialisé ; s'il n'est pas un objet JSON
// il est conservé tel quel sous la clé "raw".
func parseEncodedData(encoded string) map[string]string {
	data, err := decodeDataObject([]byte(encoded))
	if err != nil {
		return map[string]string{"raw": encoded}
	}
	return data
}

// decodeDataObject décode un objet JSON en map de chaînes (FCM n'accepte que des valeurs string).
// Les valeurs non string sont ré-encodées en JSON.
func decodeDataObject(raw []byte) (map[string]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var object map[string]interface{}
	if err := decoder.Decode(&object); err != nil {
		return nil, err
	}
	// Rien ne doit suivre l'objet
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, utils.ValidationError{Field: "data", Message: constants.ErrInvalidDataField}
	}
	if object == nil {
		return nil, utils.ValidationError{Field: "data", Message: constants.ErrInvalidDataField}
	}

	data := make(map[string]string, len(object))
	for key, value := range object {
		if s, ok := value.(string); ok {
			data[key] = s
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		data[key] = string(encoded)
	}
	return data, nil
}

func validateNotificationRequest(req *models.NotificationRequest) error {
	if err := utils.ValidateRecipient(req.Token, req.UserID); err != nil {
		return err
	}
	if err := utils.ValidateRequired("title", req.Title); err != nil {
		return err
	}
	return utils.ValidateRequired("body", req.Body)
}
