package database

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zickles/tanzanite/internal/cases"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestCreateCase_SequentialIDs(t *testing.T) {
	d := openTestDB(t)

	for want := int64(1); want <= 3; want++ {
		record, err := d.CreateCase("g1", "u1", "m1", cases.TypeBan, "spam", cases.SourceBot)
		require.NoError(t, err)
		require.Equal(t, want, record.CaseID)
	}
}

func TestCreateCase_PerGuildSequences(t *testing.T) {
	d := openTestDB(t)

	a, err := d.CreateCase("g1", "u1", "m1", cases.TypeBan, "", cases.SourceBot)
	require.NoError(t, err)
	b, err := d.CreateCase("g2", "u1", "m1", cases.TypeBan, "", cases.SourceBot)
	require.NoError(t, err)

	require.Equal(t, int64(1), a.CaseID)
	require.Equal(t, int64(1), b.CaseID)
}

func TestCreateCase_ConcurrentNoGapsNoDuplicates(t *testing.T) {
	d := openTestDB(t)

	const n = 25
	ids := make(chan int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record, err := d.CreateCase("g1", "u1", "m1", cases.TypeWarn, "", cases.SourceBot)
			if err != nil {
				t.Errorf("CreateCase: %v", err)
				return
			}
			ids <- record.CaseID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate case id %d", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
	for want := int64(1); want <= n; want++ {
		require.True(t, seen[want], "missing case id %d", want)
	}
}

func TestCreateCase_DefaultReasonSentinel(t *testing.T) {
	d := openTestDB(t)

	record, err := d.CreateCase("g1", "u1", "m1", cases.TypeKick, "", cases.SourceBot)
	require.NoError(t, err)
	require.Equal(t, "No reason given", record.Reason)

	stored, err := d.GetCase("g1", record.CaseID)
	require.NoError(t, err)
	require.Equal(t, "No reason given", stored.Reason)
}

func TestCreateCase_RoundTrip(t *testing.T) {
	d := openTestDB(t)

	record, err := d.CreateCase("g1", "u1", "m1", cases.TypeMute, "being loud", cases.SourceManual)
	require.NoError(t, err)

	stored, err := d.GetCase("g1", record.CaseID)
	require.NoError(t, err)
	require.Equal(t, record, stored)
	require.Equal(t, cases.TypeMute, stored.Kind)
	require.Equal(t, cases.SourceManual, stored.Source)
}

func TestFindCasesByUser_OrderedAndFiltered(t *testing.T) {
	d := openTestDB(t)

	_, err := d.CreateCase("g1", "u1", "m1", cases.TypeWarn, "first", cases.SourceBot)
	require.NoError(t, err)
	_, err = d.CreateCase("g1", "u2", "m1", cases.TypeWarn, "other user", cases.SourceBot)
	require.NoError(t, err)
	_, err = d.CreateCase("g1", "u1", "m1", cases.TypeBan, "second", cases.SourceBot)
	require.NoError(t, err)

	var got []*CaseRecord
	err = d.FindCasesByUser("g1", "u1", func(r *CaseRecord) bool {
		got = append(got, r)
		return true
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.Equal(t, "first", got[0].Reason)
	require.Equal(t, "second", got[1].Reason)
	require.Less(t, got[0].CaseID, got[1].CaseID)
}

func TestFindCasesByUser_StopsEarlyAndRestarts(t *testing.T) {
	d := openTestDB(t)

	for i := 0; i < 5; i++ {
		_, err := d.CreateCase("g1", "u1", "m1", cases.TypeWarn, "", cases.SourceBot)
		require.NoError(t, err)
	}

	count := 0
	err := d.FindCasesByUser("g1", "u1", func(r *CaseRecord) bool {
		count++
		return count < 2
	})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// The walk is restartable: a fresh call sees everything again.
	count = 0
	err = d.FindCasesByUser("g1", "u1", func(r *CaseRecord) bool {
		count++
		return true
	})
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestAmendReason(t *testing.T) {
	d := openTestDB(t)

	record, err := d.CreateCase("g1", "u1", "m1", cases.TypeBan, "old", cases.SourceBot)
	require.NoError(t, err)

	require.NoError(t, d.AmendReason("g1", record.CaseID, "new"))

	stored, err := d.GetCase("g1", record.CaseID)
	require.NoError(t, err)
	require.Equal(t, "new", stored.Reason)
	// Everything else is untouched.
	require.Equal(t, record.UserID, stored.UserID)
	require.Equal(t, record.Kind, stored.Kind)
	require.Equal(t, record.CreatedAt, stored.CreatedAt)
}

func TestAmendReason_MissingCase(t *testing.T) {
	d := openTestDB(t)
	require.Error(t, d.AmendReason("g1", 42, "whatever"))
}

func TestGetCase_Missing(t *testing.T) {
	d := openTestDB(t)
	_, err := d.GetCase("g1", 1)
	require.Error(t, err)
}
