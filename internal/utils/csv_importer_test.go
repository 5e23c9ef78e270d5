package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
)

func TestImportParticipants(t *testing.T) {
	in := "Id,RaffleTickets,Submitted,WonPrize\n" +
		"1,3,yes,no\n" +
		"2,0,F,T\n" +
		"3, 10 ,On,off\n"

	res, err := NewParticipantCSVImporter().Import(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalRows)
	assert.Equal(t, 13, res.TotalTickets)
	assert.Equal(t, []models.Participant{
		{ID: 1, Tickets: 3, Submitted: true, WonPrize: false},
		{ID: 2, Tickets: 0, Submitted: false, WonPrize: true},
		{ID: 3, Tickets: 10, Submitted: true, WonPrize: false},
	}, res.Participants)
}

func TestImportHeaderAliasesAndOrder(t *testing.T) {
	in := "won prize,SUBMITTED,tickets,participant id,notes\n" +
		"n,y,2,42,anything\n"

	res, err := NewParticipantCSVImporter().Import(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, res.Participants, 1)
	assert.Equal(t, models.Participant{ID: 42, Tickets: 2, Submitted: true}, res.Participants[0])
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
		msg  string
	}{
		{
			name: "missing column",
			in:   "Id,RaffleTickets,Submitted\n1,1,yes\n",
			err:  ErrMissingColumn,
			msg:  "WonPrize",
		},
		{
			name: "bad boolean",
			in:   "Id,RaffleTickets,Submitted,WonPrize\n1,1,yes,no\n2,1,maybe,no\n",
			err:  ErrInvalidBool,
			msg:  `line 3: column Submitted: invalid boolean value "maybe"`,
		},
		{
			name: "padded boolean",
			in:   "Id,RaffleTickets,Submitted,WonPrize\n1,1, yes,no\n",
			err:  ErrInvalidBool,
			msg:  `line 2: column Submitted: invalid boolean value " yes"`,
		},
		{
			name: "negative tickets",
			in:   "Id,RaffleTickets,Submitted,WonPrize\n1,-1,yes,no\n",
			err:  ErrMalformedRow,
			msg:  "RaffleTickets",
		},
		{
			name: "non numeric id",
			in:   "Id,RaffleTickets,Submitted,WonPrize\nabc,1,yes,no\n",
			err:  ErrMalformedRow,
			msg:  `"abc"`,
		},
		{
			name: "short row",
			in:   "Id,RaffleTickets,Submitted,WonPrize\n1,1,yes\n",
			err:  ErrMalformedRow,
			msg:  "line 2",
		},
		{
			name: "duplicate id",
			in:   "Id,RaffleTickets,Submitted,WonPrize\n7,1,yes,no\n7,2,no,no\n",
			err:  ErrDuplicateParticipant,
			msg:  "first seen on line 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParticipantCSVImporter().Import(strings.NewReader(tt.in))
			require.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestImportEmptyInput(t *testing.T) {
	_, err := NewParticipantCSVImporter().Import(strings.NewReader(""))
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "participants.csv")
	require.NoError(t, os.WriteFile(path, []byte("Id,RaffleTickets,Submitted,WonPrize\n5,1000,true,false\n"), 0o600))

	res, err := NewParticipantCSVImporter().ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, res.TotalTickets)

	_, err = NewParticipantCSVImporter().ImportFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"t", "TRUE", "1", "On", "y", "Yes"} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"f", "False", "0", "OFF", "n", "NO"} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	for _, s := range []string{"", "2", "yep", "nope", " yes", "no "} {
		_, err := ParseBool(s)
		assert.ErrorIs(t, err, ErrInvalidBool, s)
	}
}
