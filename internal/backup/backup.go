package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hotel/internal/config"
	"hotel/internal/models"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

const (
	filePrefix = "backup_"
	fileSuffix = ".db"
)

// Source provides the state to snapshot.
type Source interface {
	Rooms(ctx context.Context) []models.Room
	ListBookings(ctx context.Context) []models.Booking
}

type Service struct {
	source Source
	config config.BackupConfig
	logger *zerolog.Logger
	now    func() time.Time
}

func NewService(source Source, cfg config.BackupConfig, logger *zerolog.Logger) *Service {
	return &Service{
		source: source,
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot writes a backup and prunes expired ones. It is a no-op when
// backups are disabled.
func (s *Service) Snapshot(ctx context.Context) {
	if !s.config.Enabled {
		s.logger.Debug().Msg("Backup service is disabled")
		return
	}

	if _, err := s.PerformBackup(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Backup failed")
	}
	s.CleanupOldBackups()
}

// PerformBackup writes rooms and bookings to a new SQLite file and returns
// its path.
func (s *Service) PerformBackup(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.config.StoragePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := s.now().Format("20060102_150405.000000")
	backupPath := filepath.Join(s.config.StoragePath, filePrefix+timestamp+fileSuffix)

	s.logger.Info().Str("path", backupPath).Msg("Performing hotel state backup")

	db, err := sql.Open("sqlite3", backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to open backup database: %w", err)
	}
	defer db.Close()

	if err := writeSnapshot(ctx, db, s.source.Rooms(ctx), s.source.ListBookings(ctx)); err != nil {
		_ = os.Remove(backupPath)
		return "", err
	}

	s.logger.Info().Msg("Backup completed successfully")
	return backupPath, nil
}

func writeSnapshot(ctx context.Context, db *sql.DB, rooms []models.Room, bookings []models.Booking) error {
	schema := []string{
		`CREATE TABLE rooms (
            position INTEGER PRIMARY KEY,
            number INTEGER NOT NULL,
            category TEXT NOT NULL,
            available BOOLEAN NOT NULL
        )`,
		`CREATE TABLE bookings (
            position INTEGER PRIMARY KEY,
            id TEXT NOT NULL,
            user_name TEXT NOT NULL,
            room_number INTEGER NOT NULL,
            category TEXT NOT NULL,
            price INTEGER NOT NULL
        )`,
	}
	for _, query := range schema {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, r := range rooms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rooms (position, number, category, available) VALUES (?, ?, ?, ?)`,
			i, r.Number, r.Category, r.Available); err != nil {
			return fmt.Errorf("backup room %d: %w", r.Number, err)
		}
	}
	for i, b := range bookings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bookings (position, id, user_name, room_number, category, price) VALUES (?, ?, ?, ?, ?, ?)`,
			i, b.ID, b.UserName, b.RoomNumber, b.Category, b.Price); err != nil {
			return fmt.Errorf("backup booking %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

// Restore reads a snapshot written by PerformBackup.
func Restore(ctx context.Context, path string) ([]models.Room, []models.Booking, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open backup database: %w", err)
	}
	defer db.Close()

	roomRows, err := db.QueryContext(ctx, `SELECT number, category, available FROM rooms ORDER BY position`)
	if err != nil {
		return nil, nil, err
	}
	defer roomRows.Close()

	var rooms []models.Room
	for roomRows.Next() {
		var r models.Room
		if err := roomRows.Scan(&r.Number, &r.Category, &r.Available); err != nil {
			return nil, nil, err
		}
		rooms = append(rooms, r)
	}
	if err := roomRows.Err(); err != nil {
		return nil, nil, err
	}

	bookingRows, err := db.QueryContext(ctx, `SELECT id, user_name, room_number, category, price FROM bookings ORDER BY position`)
	if err != nil {
		return nil, nil, err
	}
	defer bookingRows.Close()

	var bookings []models.Booking
	for bookingRows.Next() {
		var b models.Booking
		if err := bookingRows.Scan(&b.ID, &b.UserName, &b.RoomNumber, &b.Category, &b.Price); err != nil {
			return nil, nil, err
		}
		bookings = append(bookings, b)
	}
	return rooms, bookings, bookingRows.Err()
}

func (s *Service) CleanupOldBackups() {
	if s.config.RetentionDays <= 0 {
		return
	}

	files, err := os.ReadDir(s.config.StoragePath)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read backup directory for cleanup")
		return
	}

	cutoff := s.now().AddDate(0, 0, -s.config.RetentionDays)

	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			s.logger.Info().Str("file", name).Msg("Deleting old backup")
			if err := os.Remove(filepath.Join(s.config.StoragePath, name)); err != nil {
				s.logger.Warn().Err(err).Str("file", name).Msg("Failed to delete old backup")
			}
		}
	}
}
