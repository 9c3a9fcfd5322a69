package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chatdash/internal/config"
	"chatdash/internal/db"
	"chatdash/internal/handlers"
	"chatdash/internal/observability"
	"chatdash/internal/repositories"
)

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.StubDBPath)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer database.Close()

	if err := seed(database); err != nil {
		log.Fatalf("failed to seed db: %v", err)
	}

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.Register(router, handlers.Deps{
		Channels:     repositories.NewChannelRepo(database),
		Messages:     repositories.NewMessageRepo(database),
		Requirements: repositories.NewRequirementRepo(database),
		Settings:     repositories.NewSettingsRepo(database),
	})

	if err := router.Run(":" + cfg.StubPort); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// seed inserts a small dataset so a fresh stub has something to show.
func seed(database *sqlx.DB) error {
	var count int64
	if err := database.Get(&count, `SELECT COUNT(*) FROM channels`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := database.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	channels := []struct {
		id     int64
		name   string
		active bool
		pinned bool
	}{
		{101, "Acme Procurement", true, true},
		{102, "Supplier Updates", true, false},
		{103, "Spec Tracker", true, false},
		{104, "Archived Deals", false, false},
	}
	for _, ch := range channels {
		if _, err := tx.Exec(
			`INSERT INTO channels (id, name, active, pinned) VALUES (?, ?, ?, ?)`,
			ch.id, ch.name, ch.active, ch.pinned,
		); err != nil {
			return err
		}
	}

	messages := []struct {
		channelID int64
		sender    string
		senderID  int64
		content   string
		outgoing  bool
		createdAt string
	}{
		{101, "Dana", 300101, "Morning! Do you have the updated quote?", false, "2026-08-28T09:15:00Z"},
		{101, "Me", handlers.StubUserID, "Sending it over in an hour.", true, "2026-08-28T09:20:00Z"},
		{101, "Dana", 300101, "Great, thanks.", false, "2026-08-28T09:21:00Z"},
		{102, "Supplier Bot", 300200, "Price list v12 published.", false, "2026-08-29T14:02:00Z"},
		{103, "Lev", 300300, "channel:103:1 Need 40 units of SKU-118 by Friday", false, "2026-08-30T11:45:00Z"},
	}
	for _, m := range messages {
		if _, err := tx.Exec(
			`INSERT INTO messages (channel_id, sender_name, sender_id, content, is_outgoing, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			m.channelID, m.sender, m.senderID, m.content, m.outgoing, m.createdAt,
		); err != nil {
			return err
		}
	}

	requirements := []struct {
		content   string
		status    string
		source    string
		createdAt string
	}{
		{"Need 40 units of SKU-118 by Friday", "pending", "channel:103:5", "2026-08-30T11:45:10Z"},
		{"Confirm payment terms with Acme", "pending", "manual", "2026-08-27T10:00:00Z"},
		{"Close out Q2 supplier review", "done", "manual", "2026-08-01T09:00:00Z"},
	}
	for _, r := range requirements {
		if _, err := tx.Exec(
			`INSERT INTO requirements (content, status, source, pinned, created_at)
			 VALUES (?, ?, ?, 0, ?)`,
			r.content, r.status, r.source, r.createdAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
