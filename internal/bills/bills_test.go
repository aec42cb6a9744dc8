package bills

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/store"
)

type fakeRemote struct {
	bills   []domain.Bill
	listErr error
}

func (f *fakeRemote) ListBills(context.Context) ([]domain.Bill, error) {
	return f.bills, f.listErr
}

func (f *fakeRemote) Login(context.Context, store.Credentials) (*store.AuthResponse, error) {
	return nil, nil
}
func (f *fakeRemote) CreateUser(context.Context, store.NewUser) error { return nil }
func (f *fakeRemote) CreateBill(context.Context, store.FileUpload) (*store.CreateBillResponse, error) {
	return nil, nil
}
func (f *fakeRemote) UpdateBill(context.Context, string, domain.Bill) error { return nil }

func TestListSortsAscendingByDate(t *testing.T) {
	remote := &fakeRemote{bills: []domain.Bill{
		{ID: "a", Date: "2023-04-05", Status: "pending"},
		{ID: "b", Date: "2023-03-15", Status: "accepted"},
		{ID: "c", Date: "2023-04-01", Status: "refused"},
	}}

	out, err := NewService(remote).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, []string{"b", "c", "a"}, []string{out[0].ID, out[1].ID, out[2].ID})
	assert.Equal(t, "15 Mars 23", out[0].Date)
	assert.Equal(t, "1 Avr. 23", out[1].Date)
	assert.Equal(t, "5 Avr. 23", out[2].Date)
}

func TestListIsStableOnEqualDates(t *testing.T) {
	remote := &fakeRemote{bills: []domain.Bill{
		{ID: "first", Date: "2023-04-01", Status: "pending"},
		{ID: "second", Date: "2023-04-01", Status: "pending"},
		{ID: "third", Date: "2023-04-01", Status: "pending"},
	}}

	out, err := NewService(remote).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].ID)
	assert.Equal(t, "second", out[1].ID)
	assert.Equal(t, "third", out[2].ID)
}

func TestListNormalizesStatus(t *testing.T) {
	remote := &fakeRemote{bills: []domain.Bill{
		{Date: "2023-01-02", Status: "pending"},
		{Date: "2023-01-03", Status: "accepted"},
		{Date: "2023-01-04", Status: "refused"},
	}}

	out, err := NewService(remote).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "En attente", out[0].Status)
	assert.Equal(t, "Accepté", out[1].Status)
	assert.Equal(t, "Refusé", out[2].Status)
}

func TestListSubstitutesMissingDate(t *testing.T) {
	remote := &fakeRemote{bills: []domain.Bill{
		{ID: "x", Date: "", Status: "pending"},
	}}

	out, err := NewService(remote).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, UnknownDateLabel, out[0].Date)
	assert.Equal(t, "En attente", out[0].Status)
}

func TestListKeepsRawUnparsableDate(t *testing.T) {
	remote := &fakeRemote{bills: []domain.Bill{
		{ID: "x", Date: "not-a-date", Status: "refused"},
		{ID: "y", Date: "2023-02-01", Status: "pending"},
	}}

	out, err := NewService(remote).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2, "a formatting fault never drops a record")

	var corrupted domain.Bill
	for _, b := range out {
		if b.ID == "x" {
			corrupted = b
		}
	}
	assert.Equal(t, "not-a-date", corrupted.Date, "raw date passes through")
	assert.Equal(t, "Refusé", corrupted.Status, "status still normalized")
}

func TestListUnparsableDateBetweenParsedOnesKeepsOrder(t *testing.T) {
	// A record whose date cannot be parsed compares as equal to its
	// neighbors, so the parsed dates around it keep their incoming
	// order rather than being pulled past it.
	remote := &fakeRemote{bills: []domain.Bill{
		{ID: "late", Date: "2023-05-01", Status: "pending"},
		{ID: "bad", Date: "not-a-date", Status: "pending"},
		{ID: "early", Date: "2023-01-01", Status: "pending"},
	}}

	out, err := NewService(remote).List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"late", "bad", "early"},
		[]string{out[0].ID, out[1].ID, out[2].ID})
}

func TestListFailureResolvesToEmptyCollection(t *testing.T) {
	remote := &fakeRemote{listErr: errors.New("server error")}

	out, err := NewService(remote).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestListWithoutRemote(t *testing.T) {
	out, err := NewService(nil).List(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out, "nothing to render without a remote store")
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2004-04-04", "4 Avr. 04"},
		{"2023-09-01", "1 Sept. 23"},
		{"2022-12-25", "25 Déc. 22"},
		{"2021-08-10", "10 Août 21"},
	}
	for _, tt := range tests {
		got, err := FormatDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatDate("04/04/2004")
	assert.Error(t, err)
}

func TestFormatStatusUnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "archived", FormatStatus("archived"))
}
