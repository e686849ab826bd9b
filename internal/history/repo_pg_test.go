package history

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	entry := Entry{
		SessionID:    "session-1",
		MatchScore:   72,
		Summary:      "Solid Go background.",
		MissingCount: 2,
		PresentCount: 5,
		Model:        "gemini-2.5-pro",
		CreatedAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO analysis_history").
		WithArgs(entry.SessionID, entry.MatchScore, entry.Summary, entry.MissingCount, entry.PresentCount, entry.Model, entry.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Record(context.Background(), entry); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListRecentClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"session_id", "match_score", "summary", "missing_count", "present_count", "model", "created_at"}).
		AddRow("session-2", 88.5, "Strong match.", 1, 9, "gemini-2.5-pro", created).
		AddRow("session-1", 40.0, "Weak match.", 7, 2, "gemini-2.5-pro", created.Add(-time.Hour))

	mock.ExpectQuery("SELECT session_id, match_score").
		WithArgs(MaxListLimit).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	got, err := repo.ListRecent(context.Background(), 5000)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].SessionID != "session-2" || got[0].MatchScore != 88.5 || got[0].PresentCount != 9 {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoWithoutDB(t *testing.T) {
	var repo *PGRepo
	if err := repo.Record(context.Background(), Entry{}); err == nil {
		t.Fatalf("expected error without db")
	}
}
