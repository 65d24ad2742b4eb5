package snapshot

import (
	"context"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TransitionEvent is the locally kept audit trail of every status change the
// client requested or observed. It is a convenience log, not an authoritative
// copy; the file can be discarded at any time.
type TransitionEvent struct {
	ID        uint `gorm:"primaryKey"`
	EscrowID  string
	DisputeID string
	RequestID string
	Action    string
	OldStatus string
	NewStatus string
	ActorRole string
	Source    string
	Timestamp time.Time
}

type TransitionRecorder interface {
	LogTransition(ctx context.Context, event TransitionEvent) error
}

// MustOpenDB opens the local sqlite snapshot file and migrates the schema.
func MustOpenDB(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("failed to open snapshot db: %v\n", err)
	}

	if err := db.AutoMigrate(&TransitionEvent{}); err != nil {
		log.Fatalf("failed to migrate snapshot db: %v\n", err)
	}

	return db
}

type GormTransitionLog struct {
	db *gorm.DB
}

func NewGormTransitionLog(db *gorm.DB) *GormTransitionLog {
	return &GormTransitionLog{db: db}
}

func (l *GormTransitionLog) LogTransition(ctx context.Context, event TransitionEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return l.db.WithContext(ctx).Create(&event).Error
}

// RecentTransitions returns the newest entries for one escrow, latest first.
func (l *GormTransitionLog) RecentTransitions(ctx context.Context, escrowID string, limit int) ([]TransitionEvent, error) {
	var events []TransitionEvent
	err := l.db.WithContext(ctx).
		Where("escrow_id = ?", escrowID).
		Order("id desc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
