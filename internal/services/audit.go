package services

import (
	"context"
	"log/slog"

	"github.com/baharkarakas/staybook/internal/models"
	repo "github.com/baharkarakas/staybook/internal/repository"
)

// audit is best effort; a failed insert never fails the caller.
func audit(ctx context.Context, l repo.AuditLogs, log *slog.Logger, entityType, entityID, action string, details map[string]any) {
	err := l.Create(ctx, models.AuditLog{
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	})
	if err != nil {
		log.Warn("audit log", "entity_type", entityType, "entity_id", entityID, "action", action, "err", err)
	}
}
