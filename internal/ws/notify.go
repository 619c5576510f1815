package ws

import (
	"encoding/json"
	"log/slog"
	"time"

	"skill-tracker/internal/delivery/http/dto"
	"skill-tracker/internal/domain/skill"
	"skill-tracker/internal/pkg/logger"
)

const EventSkillsUpdated = "skills_updated"

type SkillsUpdatedEvent struct {
	Type      string              `json:"type"`
	Count     int                 `json:"count"`
	Skills    []dto.SkillResponse `json:"skills"`
	Timestamp string              `json:"timestamp"`
}

// Broadcaster is satisfied by *Hub.
type Broadcaster interface {
	Broadcast(message []byte)
}

// Notifier turns store change notifications into skills_updated events.
type Notifier struct {
	out    Broadcaster
	now    func() time.Time
	logger *slog.Logger
}

func NewNotifier(out Broadcaster, now func() time.Time, log *slog.Logger) *Notifier {
	if now == nil {
		now = time.Now
	}
	return &Notifier{out: out, now: now, logger: logger.OrDiscard(log)}
}

// SkillsChanged has the signature of store.Listener.
func (n *Notifier) SkillsChanged(skills []skill.Skill) {
	if n == nil || n.out == nil {
		return
	}
	evt := SkillsUpdatedEvent{
		Type:      EventSkillsUpdated,
		Count:     len(skills),
		Skills:    dto.NewSkillResponses(skills),
		Timestamp: n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		n.logger.Error("encode skills_updated failed", "error", err)
		return
	}
	n.out.Broadcast(b)
}
