package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hotel/internal/models"

	"github.com/rs/zerolog"
)

const delimiter = ","

// FileStore keeps rooms and bookings in two line-oriented text files.
// Fields are comma separated and never escaped, so a comma inside a user
// name or category breaks the record on the next load.
type FileStore struct {
	roomsPath    string
	bookingsPath string
	logger       *zerolog.Logger
}

func NewFileStore(roomsPath, bookingsPath string, logger *zerolog.Logger) *FileStore {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &FileStore{
		roomsPath:    roomsPath,
		bookingsPath: bookingsPath,
		logger:       logger,
	}
}

func (s *FileStore) RoomsPath() string    { return s.roomsPath }
func (s *FileStore) BookingsPath() string { return s.bookingsPath }

// CheckExists reports whether both stores are present without creating
// them. A missing store yields an error wrapping fs.ErrNotExist.
func (s *FileStore) CheckExists() error {
	for _, path := range []string{s.roomsPath, s.bookingsPath} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("store %s: %w", path, err)
		}
	}
	return nil
}

// LoadRooms reads the room store. On first run the default inventory is
// written out and returned.
func (s *FileStore) LoadRooms() ([]models.Room, error) {
	lines, err := readLines(s.roomsPath)
	if errors.Is(err, fs.ErrNotExist) {
		rooms := models.DefaultInventory()
		if err := s.SaveRooms(rooms); err != nil {
			return nil, err
		}
		s.logger.Info().Str("path", s.roomsPath).Int("rooms", len(rooms)).Msg("Room store created with default inventory")
		return rooms, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read room store: %w", err)
	}

	rooms := make([]models.Room, 0, len(lines))
	for i, line := range lines {
		room, err := parseRoom(line)
		if err != nil {
			return nil, &ParseError{Path: s.roomsPath, Line: i + 1, Text: line, Err: err}
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *FileStore) SaveRooms(rooms []models.Room) error {
	lines := make([]string, 0, len(rooms))
	for _, r := range rooms {
		lines = append(lines, formatRoom(r))
	}
	if err := writeLines(s.roomsPath, lines); err != nil {
		return fmt.Errorf("write room store: %w", err)
	}
	return nil
}

// LoadBookings reads the booking store. A missing store is created empty.
func (s *FileStore) LoadBookings() ([]models.Booking, error) {
	lines, err := readLines(s.bookingsPath)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.SaveBookings(nil); err != nil {
			return nil, err
		}
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read booking store: %w", err)
	}

	bookings := make([]models.Booking, 0, len(lines))
	for i, line := range lines {
		booking, err := parseBooking(line)
		if err != nil {
			return nil, &ParseError{Path: s.bookingsPath, Line: i + 1, Text: line, Err: err}
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (s *FileStore) SaveBookings(bookings []models.Booking) error {
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		lines = append(lines, formatBooking(b))
	}
	if err := writeLines(s.bookingsPath, lines); err != nil {
		return fmt.Errorf("write booking store: %w", err)
	}
	return nil
}

func formatRoom(r models.Room) string {
	return strings.Join([]string{
		strconv.Itoa(r.Number),
		r.Category,
		strconv.FormatBool(r.Available),
	}, delimiter)
}

func parseRoom(line string) (models.Room, error) {
	parts := strings.Split(line, delimiter)
	if len(parts) != 3 {
		return models.Room{}, fmt.Errorf("%w: want 3, got %d", errFieldCount, len(parts))
	}

	number, err := strconv.Atoi(parts[0])
	if err != nil {
		return models.Room{}, fmt.Errorf("room number: %w", err)
	}

	var available bool
	switch parts[2] {
	case "true":
		available = true
	case "false":
	default:
		return models.Room{}, errBool
	}

	return models.Room{Number: number, Category: parts[1], Available: available}, nil
}

func formatBooking(b models.Booking) string {
	return strings.Join([]string{
		b.ID,
		b.UserName,
		strconv.Itoa(b.RoomNumber),
		b.Category,
		strconv.Itoa(b.Price),
	}, delimiter)
}

func parseBooking(line string) (models.Booking, error) {
	parts := strings.Split(line, delimiter)
	if len(parts) != 5 {
		return models.Booking{}, fmt.Errorf("%w: want 5, got %d", errFieldCount, len(parts))
	}

	roomNumber, err := strconv.Atoi(parts[2])
	if err != nil {
		return models.Booking{}, fmt.Errorf("room number: %w", err)
	}
	price, err := strconv.Atoi(parts[4])
	if err != nil {
		return models.Booking{}, fmt.Errorf("price: %w", err)
	}

	return models.Booking{
		ID:         parts[0],
		UserName:   parts[1],
		RoomNumber: roomNumber,
		Category:   parts[3],
		Price:      price,
	}, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// writeLines truncates path and writes one line per entry. There is no
// temp-file swap: a crash mid-write can leave a partial store.
func writeLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
