package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
)

var (
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("required column not found in CSV")
	// ErrMalformedRow covers unreadable rows and non-numeric id or ticket cells.
	ErrMalformedRow = errors.New("malformed row")
	// ErrInvalidBool is returned for boolean cells outside the accepted vocabulary.
	ErrInvalidBool = errors.New("invalid boolean value")
	// ErrDuplicateParticipant is returned when an id appears twice.
	ErrDuplicateParticipant = errors.New("duplicate participant id")
)

// Column aliases accepted in the header row, matched case-insensitively.
var (
	idColumns        = []string{"Id", "ID", "Participant Id", "ParticipantId"}
	ticketColumns    = []string{"RaffleTickets", "Raffle Tickets", "Tickets"}
	submittedColumns = []string{"Submitted", "Has Submitted"}
	wonPrizeColumns  = []string{"WonPrize", "Won Prize", "Previously Won"}
)

// ImportResult is what one CSV produced.
type ImportResult struct {
	TotalRows    int
	TotalTickets int
	Participants []models.Participant
}

// ParticipantCSVImporter reads participant rows from CSV. Any bad cell
// aborts the import; there is no partial result.
type ParticipantCSVImporter struct{}

// NewParticipantCSVImporter creates a new ParticipantCSVImporter
func NewParticipantCSVImporter() *ParticipantCSVImporter {
	return &ParticipantCSVImporter{}
}

// ImportFile opens filePath and parses it.
func (i *ParticipantCSVImporter) ImportFile(filePath string) (*ImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return i.Import(file)
}

// Import parses participants from r in row order.
func (i *ParticipantCSVImporter) Import(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := map[string]int{
		"Id":            findColumnIndex(header, idColumns),
		"RaffleTickets": findColumnIndex(header, ticketColumns),
		"Submitted":     findColumnIndex(header, submittedColumns),
		"WonPrize":      findColumnIndex(header, wonPrizeColumns),
	}
	for _, name := range []string{"Id", "RaffleTickets", "Submitted", "WonPrize"} {
		if cols[name] == -1 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	result := &ImportResult{}
	seen := make(map[uint32]int)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		// header is line 1
		line := result.TotalRows + 2
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		result.TotalRows++

		p, err := parseParticipant(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if first, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("line %d: %w %d (first seen on line %d)", line, ErrDuplicateParticipant, p.ID, first)
		}
		seen[p.ID] = line

		result.TotalTickets += int(p.Tickets)
		result.Participants = append(result.Participants, p)
	}

	return result, nil
}

func parseParticipant(row []string, cols map[string]int) (models.Participant, error) {
	var p models.Participant

	id, err := parseUint32(row[cols["Id"]])
	if err != nil {
		return p, fmt.Errorf("%w: Id %q", ErrMalformedRow, row[cols["Id"]])
	}
	tickets, err := parseUint32(row[cols["RaffleTickets"]])
	if err != nil {
		return p, fmt.Errorf("%w: RaffleTickets %q", ErrMalformedRow, row[cols["RaffleTickets"]])
	}
	submitted, err := ParseBool(row[cols["Submitted"]])
	if err != nil {
		return p, fmt.Errorf("column Submitted: %w", err)
	}
	wonPrize, err := ParseBool(row[cols["WonPrize"]])
	if err != nil {
		return p, fmt.Errorf("column WonPrize: %w", err)
	}

	p.ID = id
	p.Tickets = tickets
	p.Submitted = submitted
	p.WonPrize = wonPrize
	return p, nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// ParseBool accepts t/true/1/on/y/yes and f/false/0/off/n/no in any case.
// Surrounding whitespace is not stripped.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "t", "true", "1", "on", "y", "yes":
		return true, nil
	case "f", "false", "0", "off", "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w %q", ErrInvalidBool, s)
}

// findColumnIndex finds the index of a column by possible names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}
