package archive

import (
	"context"
	"testing"
	"time"

	"branchscan/internal/location"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	store, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	{
		runs, err := store.ListRuns(ctx, "", 10)
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, runs, 0)
	}

	at := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	kfcRows := []location.Record{
		{"name": "KFC Gənclik Mall", "city.name": "Bakı", "source_url": "https://kfc.az/az/branches"},
		{"name": "KFC 28 Mall", "phone": ""},
	}
	kfcID, err := store.SaveRun(ctx, Run{
		Source:     "kfc",
		SourceURL:  "https://kfc.az/az/branches",
		ScrapedAt:  at,
		OutputPath: "data/kfc.csv",
	}, kfcRows)
	if err != nil {
		t.Fatal(err)
	}

	shaurmaID, err := store.SaveRun(ctx, Run{
		Source:     "shaurma",
		SourceURL:  "branches.html",
		ScrapedAt:  at.Add(time.Minute),
		OutputPath: "data/shaurma.csv",
	}, []location.Record{{"name": "Shaurma N1 Nizami"}})
	if err != nil {
		t.Fatal(err)
	}
	require.Greater(t, shaurmaID, kfcID)

	{
		runs, err := store.ListRuns(ctx, "", 10)
		if err != nil {
			t.Fatal(err)
		}
		expected := []Run{
			{
				ID:         shaurmaID,
				Source:     "shaurma",
				SourceURL:  "branches.html",
				ScrapedAt:  at.Add(time.Minute),
				OutputPath: "data/shaurma.csv",
				RowCount:   1,
			},
			{
				ID:         kfcID,
				Source:     "kfc",
				SourceURL:  "https://kfc.az/az/branches",
				ScrapedAt:  at,
				OutputPath: "data/kfc.csv",
				RowCount:   2,
			},
		}
		diff := cmp.Diff(expected, runs)
		if diff != "" {
			t.Fatal(diff)
		}
	}
	{
		runs, err := store.ListRuns(ctx, "kfc", 10)
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, runs, 1)
		require.Equal(t, kfcID, runs[0].ID)

		runs, err = store.ListRuns(ctx, "", 1)
		if err != nil {
			t.Fatal(err)
		}
		require.Len(t, runs, 1)
		require.Equal(t, shaurmaID, runs[0].ID)
	}
	{
		rows, err := store.Rows(ctx, kfcID)
		if err != nil {
			t.Fatal(err)
		}
		diff := cmp.Diff(kfcRows, rows)
		if diff != "" {
			t.Fatal(diff)
		}

		rows, err = store.Rows(ctx, 999)
		if err != nil {
			t.Fatal(err)
		}
		require.Empty(t, rows)
	}
}
