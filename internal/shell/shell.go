package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hotel/internal/domain"

	"github.com/rs/zerolog"
)

const menu = `
--- Hotel Booking System ---
1. View Available Rooms
2. Book Room
3. Cancel Booking
4. View All Bookings
5. Exit
Enter choice: `

// maxLineLength bounds a single input line; longer lines are rejected.
const maxLineLength = 64 * 1024

var errLineTooLong = errors.New("input line too long")

const (
	choiceAvailable = iota + 1
	choiceBook
	choiceCancel
	choiceBookings
	choiceExit
)

// Shell is the numbered-menu front end over a HotelService.
type Shell struct {
	hotel  domain.HotelService
	in     *bufio.Reader
	out    io.Writer
	logger *zerolog.Logger
}

func New(hotel domain.HotelService, in io.Reader, out io.Writer, logger *zerolog.Logger) *Shell {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Shell{
		hotel:  hotel,
		in:     bufio.NewReaderSize(in, maxLineLength),
		out:    out,
		logger: logger,
	}
}

// Run serves commands until the user exits, input ends or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.print(menu)
		line, err := s.readLine()
		switch {
		case errors.Is(err, errLineTooLong):
			s.println("❌ Invalid choice.")
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			s.println("❌ Invalid choice.")
			continue
		}

		switch choice {
		case choiceAvailable:
			s.viewAvailable(ctx)
		case choiceBook:
			s.book(ctx)
		case choiceCancel:
			s.cancel(ctx)
		case choiceBookings:
			s.viewBookings(ctx)
		case choiceExit:
			s.println("👋 Exiting. Goodbye!")
			return nil
		default:
			s.println("❌ Invalid choice.")
		}
	}
}

func (s *Shell) viewAvailable(ctx context.Context) {
	category, ok := s.prompt("Enter category (Standard/Deluxe/Suite): ")
	if !ok {
		return
	}

	rooms := s.hotel.ListAvailable(ctx, category)
	if len(rooms) == 0 {
		s.println("❌ No available rooms in " + category)
		return
	}
	for _, r := range rooms {
		s.println(fmt.Sprintf("🛏️ Room: %d", r.Number))
	}
}

func (s *Shell) book(ctx context.Context) {
	name, ok := s.prompt("Enter your name: ")
	if !ok {
		return
	}
	if strings.Contains(name, ",") {
		// Поля хранилища не экранируются
		s.println("⚠️ Names containing commas cannot be read back from the booking store.")
	}
	category, ok := s.prompt("Enter room category (Standard/Deluxe/Suite): ")
	if !ok {
		return
	}

	booking, err := s.hotel.Book(ctx, name, category)
	switch {
	case errors.Is(err, domain.ErrNotAvailable):
		s.println("❌ No rooms available in that category.")
	case err != nil:
		s.fail("book", err)
	default:
		s.println("✅ Booking successful! Booking ID: " + booking.ID)
		s.println(fmt.Sprintf("💳 Payment simulated: ₹%d", booking.Price))
	}
}

func (s *Shell) cancel(ctx context.Context) {
	id, ok := s.prompt("Enter Booking ID to cancel: ")
	if !ok {
		return
	}

	_, err := s.hotel.Cancel(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.println("❌ Booking ID not found.")
	case err != nil:
		s.fail("cancel", err)
	default:
		s.println("✅ Booking canceled.")
	}
}

func (s *Shell) viewBookings(ctx context.Context) {
	bookings := s.hotel.ListBookings(ctx)
	if len(bookings) == 0 {
		s.println("📭 No bookings found.")
		return
	}
	for _, b := range bookings {
		s.println(fmt.Sprintf("📌 ID: %s, Name: %s, Room: %d, Category: %s, ₹%d",
			b.ID, b.UserName, b.RoomNumber, b.Category, b.Price))
	}
}

func (s *Shell) fail(op string, err error) {
	s.logger.Error().Err(err).Str("op", op).Msg("shell command failed")
	s.println("❌ Operation failed: " + err.Error())
}

// prompt reads one field. Over-long input is reported and cancels the
// current command.
func (s *Shell) prompt(text string) (string, bool) {
	s.print(text)
	line, err := s.readLine()
	switch {
	case errors.Is(err, errLineTooLong):
		s.println("❌ Input too long.")
		return "", false
	case errors.Is(err, io.EOF):
		return "", false
	case err != nil:
		s.logger.Error().Err(err).Msg("read input")
		return "", false
	}
	return line, true
}

// readLine returns the next trimmed line. A line longer than maxLineLength
// is consumed in full and reported as errLineTooLong.
func (s *Shell) readLine() (string, error) {
	line, isPrefix, err := s.in.ReadLine()
	if err != nil {
		return "", err
	}
	if !isPrefix {
		return strings.TrimSpace(string(line)), nil
	}

	for isPrefix {
		if _, isPrefix, err = s.in.ReadLine(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
	}
	return "", errLineTooLong
}

func (s *Shell) print(text string) {
	_, _ = io.WriteString(s.out, text)
}

func (s *Shell) println(text string) {
	_, _ = io.WriteString(s.out, text+"\n")
}
