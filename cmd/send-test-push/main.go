package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"send-push/app"
	"send-push/config"
	"send-push/models"
	"send-push/utils"
)

func main() {
	token := flag.String("token", "", "token FCM de l'appareil (prioritaire sur -user)")
	userID := flag.String("user", "", "identifiant de l'utilisateur")
	title := flag.String("title", "Test", "titre de la notification")
	body := flag.String("body", "Notification de test 🔔", "texte de la notification")
	data := flag.String("data", "", "données JSON associées (objet de chaînes)")
	flag.Parse()

	if err := utils.ValidateRecipient(*token, *userID); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	req := &models.NotificationRequest{
		Token:  *token,
		UserID: *userID,
		Title:  *title,
		Body:   *body,
		Data:   map[string]string{},
	}
	if *data != "" {
		if err := json.Unmarshal([]byte(*data), &req.Data); err != nil {
			log.Fatalf("❌ -data doit être un objet JSON de chaînes: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg, app.Options{SkipStore: req.Token != ""})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer application.Close(ctx)

	log.Printf("📨 Envoi de test à %s...", req.SubjectID())

	tokens, err := application.Resolver.Resolve(ctx, req)
	if err != nil {
		log.Fatalf("❌ %s: %v", utils.ErrorType(err), err)
	}
	if len(tokens) == 0 {
		log.Printf("⚠️  Aucun token pour: %s", req.SubjectID())
		return
	}

	summary, err := application.Dispatcher.Dispatch(ctx, tokens, req.Message())
	if err != nil {
		log.Fatalf("❌ %s: %v", utils.ErrorType(err), err)
	}
	summary.SubjectID = req.SubjectID()
	summary.Timestamp = utils.Timestamp(time.Now())

	if err := writeSummary(os.Stdout, summary); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// writeSummary affiche le résumé en JSON indenté
func writeSummary(w io.Writer, summary *models.DispatchSummary) error {
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("erreur lors de l'encodage du résultat: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return fmt.Errorf("erreur lors de l'écriture du résultat: %w", err)
	}
	return nil
}
